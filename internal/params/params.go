// Package params resolves the run configuration from defaults, the site
// profile and the invocation (management agent or manual flags).
package params

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/eikafleet/devnamer/internal/profile"
)

// Agent-supplied positional layout. The agent always passes the boot volume
// mount point, the current computer name and the logged-in user before any
// policy parameters.
const (
	agentPosPrefix   = 4
	agentPosCustomer = 5
	agentPosDryRun   = 6
)

// Config is the immutable per-run configuration. It is constructed once by
// the resolver and handed to the pipeline; nothing mutates it afterwards.
type Config struct {
	Customer      string
	Prefix        string
	MaxNameLength int
	DryRun        bool
}

// Validate checks the Config invariants.
func (c Config) Validate() error {
	if c.Prefix == "" {
		return errors.New("prefix must not be empty")
	}
	if c.MaxNameLength <= 0 {
		return errors.Errorf("max name length must be positive, got %d", c.MaxNameLength)
	}
	return nil
}

// WithProfile layers the site naming profile over c. Unset profile fields
// keep the current value.
func (c Config) WithProfile(p profile.Profile) Config {
	if p.Prefix != "" {
		c.Prefix = p.Prefix
	}
	if p.Customer != "" {
		c.Customer = p.Customer
	}
	if p.MaxNameLength > 0 {
		c.MaxNameLength = p.MaxNameLength
	}
	return c
}

// FromAgentArgs applies the agent's positional parameters over base.
// args is the argument vector without the program name; positions are
// 1-indexed as the agent documents them. Empty or missing positions keep
// the base value, so a sparsely-filled policy is fine.
func FromAgentArgs(args []string, base Config) Config {
	cfg := base

	if v := positional(args, agentPosPrefix); v != "" {
		cfg.Prefix = v
	}
	if v := positional(args, agentPosCustomer); v != "" {
		cfg.Customer = v
	}
	if positional(args, agentPosDryRun) == "true" {
		cfg.DryRun = true
	}
	return cfg
}

func positional(args []string, pos int) string {
	if pos > len(args) {
		return ""
	}
	return args[pos-1]
}

// InvokedByAgent reports whether this run was launched by the management
// agent rather than an operator. Two independent signals count: argv[0]
// resolving under the agent's script directory, or the mount-point convention
// of "/" as the first positional argument.
func InvokedByAgent(argv0, scriptDir string, args []string) bool {
	if scriptDir != "" {
		dir := filepath.Clean(scriptDir) + string(filepath.Separator)
		if strings.HasPrefix(filepath.Clean(argv0), dir) {
			return true
		}
	}
	return len(args) > 0 && args[0] == "/"
}
