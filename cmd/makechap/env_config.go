package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-makechap/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides build-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string // MAKECHAP_CONFIG: config file name or path
	BackupSuffix string // MAKECHAP_BACKUP_SUFFIX: backup file suffix
	NoBackup     *bool  // MAKECHAP_NO_BACKUP: true disables backups
	IndexClass   string // MAKECHAP_INDEX_CLASS: index container class
	Workers      int    // MAKECHAP_WORKERS: parallel workers
}

// envPrefix is shared by every variable read by makechap.
const envPrefix = "MAKECHAP_"

// knownEnvVars lists valid MAKECHAP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MAKECHAP_CONFIG":        true,
	"MAKECHAP_BACKUP_SUFFIX": true,
	"MAKECHAP_NO_BACKUP":     true,
	"MAKECHAP_INDEX_CLASS":   true,
	"MAKECHAP_WORKERS":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable values are ignored with a warning.
func loadEnvConfig(logger zerolog.Logger) *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("MAKECHAP_CONFIG"),
		BackupSuffix: os.Getenv("MAKECHAP_BACKUP_SUFFIX"),
		IndexClass:   os.Getenv("MAKECHAP_INDEX_CLASS"),
	}

	if raw := os.Getenv("MAKECHAP_NO_BACKUP"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.NoBackup = &v
		} else {
			logger.Warn().Str("var", "MAKECHAP_NO_BACKUP").Str("value", raw).Msg("ignoring invalid boolean")
		}
	}

	if raw := os.Getenv("MAKECHAP_WORKERS"); raw != "" {
		if w, err := strconv.Atoi(raw); err == nil && w > 0 && w <= config.MaxWorkers {
			cfg.Workers = w
		} else {
			logger.Warn().Str("var", "MAKECHAP_WORKERS").Str("value", raw).Msg("ignoring invalid worker count")
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MAKECHAP_* variables.
// Helps catch typos like MAKECHAP_NOBACKUP instead of MAKECHAP_NO_BACKUP.
func warnUnknownEnvVars(logger zerolog.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn().Str("var", name).Msg("unknown environment variable (typo?)")
		}
	}
}

// applyEnvConfig overrides config values with the environment variables that are set.
// CLI flags are applied afterwards, giving: flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.BackupSuffix != "" {
		cfg.Backup.Suffix = env.BackupSuffix
	}
	if env.NoBackup != nil {
		cfg.Backup.Disabled = *env.NoBackup
	}
	if env.IndexClass != "" {
		cfg.Index.Class = env.IndexClass
	}
	if env.Workers > 0 {
		cfg.Contents.Workers = env.Workers
	}
}
