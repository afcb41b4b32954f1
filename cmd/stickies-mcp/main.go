package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "stickies/internal/adapters/mcp"
	"stickies/internal/adapters/watcher"
	"stickies/internal/logging"
	"stickies/internal/setup"
)

func main() {
	var opts setup.Options
	flag.StringVar(&opts.ConfigPath, "config", "", "path to a config file")
	flag.StringVar(&opts.Vault, "vault", "", "path to the vault")
	flag.StringVar(&opts.Folder, "folder", "", "notes folder inside the vault")
	flag.Parse()

	cfg, err := setup.Load(opts)
	if err != nil {
		log.Fatalf("stickies-mcp: %v", err)
	}
	// Stdout carries the protocol.
	logOutput := cfg.LogFile
	if logOutput == "" {
		logOutput = "stderr"
	}
	if err := setup.InitLogging(cfg, logOutput); err != nil {
		log.Fatalf("stickies-mcp: %v", err)
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := setup.Open(ctx, cfg, false)
	if err != nil {
		log.Fatalf("stickies-mcp: %v", err)
	}
	defer env.Close()

	sess := mcpadapter.NewSession(env.Board, env.Repo, cfg.WriteBackColors)

	w, err := watcher.New(env.Repo, watcher.DefaultDebounce)
	if err != nil {
		log.Fatalf("stickies-mcp: %v", err)
	}
	defer w.Close()
	// Runs before env.Close, so the board is never closed under a pending Apply.
	sess.Start(ctx, w.Changes())
	defer sess.Close()

	mcpServer := server.NewMCPServer(
		"stickies-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, sess)
	mcpadapter.RegisterWriteTools(mcpServer, sess)

	if err := server.ServeStdio(mcpServer); err != nil {
		logging.Error("server stopped", zap.Error(err))
	}
}
