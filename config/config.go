package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

var v *viper.Viper

func init() {
	v = viper.New()

	// Naming policy defaults
	v.SetDefault("naming.customer", "Eika")
	v.SetDefault("naming.prefix", "Mac")
	v.SetDefault("naming.max_length", 15)

	// Fixed file locations
	v.SetDefault("log.path", "/var/log/devnamer/devnamer.log")
	// Reserved for a future "restore previous name" feature; declared but
	// never written by the current pipeline.
	v.SetDefault("backup.path", "/var/log/devnamer/devnamer-backup.log")

	// Directory the management agent executes its scripts from; argv[0]
	// under this directory means we were launched by the agent.
	v.SetDefault("agent.script_dir", "/Library/Application Support/FleetAgent")

	// Environment variables
	v.AutomaticEnv()
	v.BindEnv("naming.customer", "DEVNAMER_CUSTOMER")
	v.BindEnv("naming.prefix", "DEVNAMER_PREFIX")
	v.BindEnv("naming.max_length", "DEVNAMER_MAX_LENGTH")
	v.BindEnv("log.path", "DEVNAMER_LOG_PATH")
	v.BindEnv("backup.path", "DEVNAMER_BACKUP_PATH")
	v.BindEnv("agent.script_dir", "DEVNAMER_AGENT_SCRIPT_DIR")
	v.BindEnv("profile.path", "DEVNAMER_PROFILE_PATH")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configPaths := []string{
		".",
		filepath.Join(xdg.ConfigHome, "devnamer"),
		"/etc/devnamer",
	}

	for _, path := range configPaths {
		expandedPath := os.ExpandEnv(path)
		v.AddConfigPath(expandedPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Sprintf("Fatal error reading config file: %s", err))
		}
		// Config file not found; use defaults
	}
}

// GetCustomer returns the default customer name.
func GetCustomer() string {
	return v.GetString("naming.customer")
}

// GetPrefix returns the default device-name prefix.
func GetPrefix() string {
	return v.GetString("naming.prefix")
}

// GetMaxNameLength returns the default maximum device-name length.
func GetMaxNameLength() int {
	return v.GetInt("naming.max_length")
}

// GetLogPath returns the log file path.
func GetLogPath() string {
	return v.GetString("log.path")
}

// GetBackupPath returns the backup file path (reserved, not currently written).
func GetBackupPath() string {
	return v.GetString("backup.path")
}

// GetAgentScriptDir returns the management agent script directory used to
// recognize agent-driven invocations.
func GetAgentScriptDir() string {
	return v.GetString("agent.script_dir")
}

// GetProfilePath returns the site naming profile path.
func GetProfilePath() string {
	if profilePath := v.GetString("profile.path"); profilePath != "" {
		return profilePath
	}
	return filepath.Join(xdg.ConfigHome, "devnamer", "naming.toml")
}
