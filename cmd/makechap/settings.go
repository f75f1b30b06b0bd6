package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-makechap"
	"github.com/alnah/go-makechap/internal/config"
	"github.com/alnah/go-makechap/internal/hints"
)

// Sentinel errors for argument handling.
var (
	ErrUsage              = errors.New("invalid arguments")
	ErrInvalidNumber      = errors.New("chapter number must be a non-negative integer")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// loadConfig resolves the configuration file and environment overrides.
// The --config flag wins over MAKECHAP_CONFIG; without either, defaults apply.
func loadConfig(common *commonFlags, logger zerolog.Logger) (*config.Config, error) {
	envCfg := loadEnvConfig(logger)
	warnUnknownEnvVars(logger)

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(searchPathsFor(name)))
			}
			return nil, err
		}
		cfg = loaded
		logger.Debug().Str("config", name).Msg("config loaded")
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// searchPathsFor returns the locations tried for a config name, or none for a path.
func searchPathsFor(name string) []string {
	if strings.ContainsAny(name, "/\\") {
		return nil
	}
	return config.SearchPaths(name)
}

// mergeRewriteFlags applies explicitly set rewrite flags over cfg.
func mergeRewriteFlags(f *rewriteFlags, cfg *config.Config) {
	if f.noBackup {
		cfg.Backup.Disabled = true
	}
	if f.backupSuffix != "" {
		cfg.Backup.Suffix = f.backupSuffix
	}
	if f.indexClass != "" {
		cfg.Index.Class = f.indexClass
	}
}

// rewriteOptions is the resolved rewrite policy shared by every chapter.
type rewriteOptions struct {
	dryRun     bool
	backup     bool
	suffix     string
	renumberer *makechap.Renumberer
}

// newRewriteOptions validates cfg and builds the renumberer.
func newRewriteOptions(f *rewriteFlags, cfg *config.Config, logger zerolog.Logger) (*rewriteOptions, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := makechap.ValidateIndexClass(cfg.Index.Class); err != nil {
		return nil, err
	}

	return &rewriteOptions{
		dryRun: f.dryRun,
		backup: !cfg.Backup.Disabled,
		suffix: cfg.Backup.Suffix,
		renumberer: makechap.New(
			makechap.WithLogger(logger),
			makechap.WithIndexClass(cfg.Index.Class),
		),
	}, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
