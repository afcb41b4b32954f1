// Package setup wires the adapters shared by the stickies binaries.
package setup

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"stickies/internal/adapters/filesystem"
	"stickies/internal/adapters/memory"
	"stickies/internal/adapters/sqlite"
	"stickies/internal/application"
	"stickies/internal/config"
	"stickies/internal/logging"
	"stickies/internal/ports"
)

// Options selects how the environment is built
type Options struct {
	ConfigPath string
	Vault      string // Overrides the configured vault when set
	Folder     string // Overrides the configured notes folder when set
	Ephemeral  bool   // Keep board state in memory only
}

// Env holds the wired adapters and an open board
type Env struct {
	Config config.Config
	Repo   *filesystem.Repository
	Board  *application.Board

	closers []func() error
}

// Load reads the configuration and applies option overrides
func Load(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.Vault != "" {
		cfg.Vault = opts.Vault
	}
	if opts.Folder != "" {
		cfg.NotesFolder = opts.Folder
	}
	return cfg, nil
}

// InitLogging configures the global logger. An empty output discards logs.
func InitLogging(cfg config.Config, output string) error {
	if output == "" {
		logging.InitNop()
		return nil
	}
	return logging.Init(logging.Config{Level: cfg.LogLevel, OutputPath: output})
}

// Open builds the board over cfg's notes folder and loads every note into it
func Open(ctx context.Context, cfg config.Config, ephemeral bool) (*Env, error) {
	env := &Env{
		Config: cfg,
		Repo:   filesystem.NewRepository(cfg.ResolvedVault(), cfg.NotesFolder),
	}

	var kv ports.KeyValueStore
	if ephemeral {
		kv = memory.NewStore()
	} else {
		store, err := sqlite.Open(cfg.ResolvedDBPath())
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, store.Close)
		kv = store
		logging.Debug("opened state database", zap.String("path", store.Path()))
	}

	env.Board = application.NewBoard(kv, BoardConfig(cfg), nil)

	items, err := env.Repo.ListNotes(ctx)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	env.Board.Open(items)
	return env, nil
}

// BoardConfig maps the configuration onto the board's tunables
func BoardConfig(cfg config.Config) application.BoardConfig {
	return application.BoardConfig{
		PageSize: cfg.PageSize,
		AutoScroll: application.AutoScrollConfig{
			EdgeThreshold: cfg.EdgeThreshold,
			MaxVelocity:   cfg.MaxScrollVelocity,
		},
	}
}

// Close ends the board session and releases the adapters
func (e *Env) Close() error {
	if e.Board != nil {
		e.Board.Close()
	}
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	e.closers = nil
	return errors.Join(errs...)
}
