package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"stickies/internal/adapters/editor"
	"stickies/internal/adapters/obsidian"
	"stickies/internal/adapters/tui"
	"stickies/internal/adapters/tui/views"
	"stickies/internal/adapters/watcher"
	"stickies/internal/logging"
	"stickies/internal/setup"
)

func main() {
	var opts setup.Options
	flag.StringVar(&opts.ConfigPath, "config", "", "path to a config file")
	flag.StringVar(&opts.Vault, "vault", "", "path to the vault")
	flag.StringVar(&opts.Folder, "folder", "", "notes folder inside the vault")
	flag.BoolVar(&opts.Ephemeral, "ephemeral", false, "keep order, colors and sort mode in memory only")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts setup.Options) error {
	cfg, err := setup.Load(opts)
	if err != nil {
		return err
	}
	// The terminal belongs to the TUI; logs only go to a file.
	if err := setup.InitLogging(cfg, cfg.LogFile); err != nil {
		return err
	}
	defer logging.Sync()

	env, err := setup.Open(context.Background(), cfg, opts.Ephemeral)
	if err != nil {
		return err
	}
	defer env.Close()

	w, err := watcher.New(env.Repo, watcher.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to watch notes folder: %w", err)
	}
	defer w.Close()

	app := tui.NewApp(views.BoardDeps{
		Board:           env.Board,
		Notes:           env.Repo,
		Obsidian:        obsidian.NewOpener(env.Repo.VaultPath()),
		Changes:         w.Changes(),
		FrameInterval:   cfg.FrameInterval(),
		NearBottomRows:  cfg.NearBottomRows,
		WriteBackColors: cfg.WriteBackColors,
	}, editor.NewOpener())
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
