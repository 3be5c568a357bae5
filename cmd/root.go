package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/eikafleet/devnamer/config"
	"github.com/eikafleet/devnamer/internal/logging"
	"github.com/eikafleet/devnamer/internal/params"
	"github.com/eikafleet/devnamer/internal/pipeline"
	"github.com/eikafleet/devnamer/internal/profile"
	"github.com/eikafleet/devnamer/internal/system"
)

// ErrUsage marks invocations that only displayed usage. Usage display is a
// failure for automation, so main maps it to a non-zero exit.
var ErrUsage = errors.New("usage")

// RootOptions holds the manual-invocation flags.
type RootOptions struct {
	DryRun   bool
	Prefix   string
	Customer string
	MaxLen   int
	Verbose  bool
	Help     bool
}

// newSystem is swapped by tests to keep runs off the real machine.
var newSystem = func() system.System { return system.Platform{} }

// NewRootCommand creates the root devnamer command.
//
// Flag parsing is done inside RunE rather than by cobra: agent invocations
// pass raw positional parameters that must not be treated as flags, and the
// usage display (including -h) has to exit non-zero, which cobra's built-in
// help short-circuit does not allow.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	flags := pflag.NewFlagSet("devnamer", pflag.ContinueOnError)
	flags.BoolVarP(&opts.DryRun, "dry-run", "d", false, "Compute and log the name without changing any setting")
	flags.StringVarP(&opts.Prefix, "prefix", "p", "", "Device name prefix (default from config)")
	flags.StringVarP(&opts.Customer, "customer", "c", "", "Customer name (default from config)")
	flags.IntVarP(&opts.MaxLen, "max-length", "m", 0, "Maximum device name length (default from config)")
	flags.BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")
	flags.BoolVarP(&opts.Help, "help", "h", false, "Show usage")
	flags.SetOutput(io.Discard)

	cmd := &cobra.Command{
		Use:   "devnamer",
		Short: "Assign a standardized device name from the hardware serial number",
		Long: `devnamer derives a device name from the hardware serial number and the
organization's prefix and length policy, then applies it to the host's
naming settings. It runs either manually with flags or non-interactively
from the management agent, which passes its policy positionally.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, flags, opts, args)
		},
		Example: `  # Preview the name this device would get
  devnamer -d

  # Name this device with a site-specific prefix
  sudo devnamer -p EikaMac -c "Eika Nord"`,
	}

	// Registered for usage rendering only; parsing happens in runRoot.
	cmd.Flags().AddFlagSet(flags)

	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// runRoot resolves the configuration and runs the naming pipeline.
func runRoot(cmd *cobra.Command, flags *pflag.FlagSet, opts *RootOptions, args []string) error {
	cfg := params.Config{
		Customer:      config.GetCustomer(),
		Prefix:        config.GetPrefix(),
		MaxNameLength: config.GetMaxNameLength(),
	}

	prof, err := profile.Load(config.GetProfilePath())
	if err != nil {
		return err
	}
	cfg = cfg.WithProfile(prof)

	agentMode := params.InvokedByAgent(os.Args[0], config.GetAgentScriptDir(), args)
	if agentMode {
		cfg = params.FromAgentArgs(args, cfg)
	} else {
		if err := flags.Parse(args); err != nil {
			cmd.Usage()
			return errors.Wrapf(ErrUsage, "%v", err)
		}
		if opts.Help {
			cmd.Usage()
			return ErrUsage
		}
		if opts.Prefix != "" {
			cfg.Prefix = opts.Prefix
		}
		if opts.Customer != "" {
			cfg.Customer = opts.Customer
		}
		if opts.MaxLen > 0 {
			cfg.MaxNameLength = opts.MaxLen
		}
		cfg.DryRun = opts.DryRun
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrapf(ErrUsage, "%v", err)
	}

	log, closeLog, err := logging.New(config.GetLogPath(), opts.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Debugf("agent mode: %t", agentMode)
	log.Debugf("backup file reserved at %s", config.GetBackupPath())

	name, err := pipeline.Run(cfg, newSystem(), log)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	if cfg.DryRun {
		fmt.Printf("Dry run complete. Would name this device %s\n", color.CyanString(name))
	} else {
		fmt.Printf("Device named %s\n", color.GreenString(name))
	}
	return nil
}
