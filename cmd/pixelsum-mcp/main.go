package main

import (
	"fmt"
	"os"

	"github.com/ChrisShia/jsonlog"

	"github.com/ironsheep/pixelsum-mcp/internal/config"
	"github.com/ironsheep/pixelsum-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("pixelsum-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("pixelsum-mcp - MCP server for constant-time pixel region queries")
			fmt.Println()
			fmt.Println("Usage: pixelsum-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Printf("  %s=debug            Enable debug logging\n", config.EnvLogLevel)
			fmt.Printf("  %s=N              Max stored indexes (default %d)\n", config.EnvMaxIndexes, config.DefaultMaxIndexes)
			fmt.Printf("  %s=N         Max request line size (default %d); longer lines get a parse error\n", config.EnvMaxRequestBytes, config.DefaultMaxRequestBytes)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Logs go to stderr; stdout is for MCP protocol
	logger := jsonlog.New(os.Stderr, jsonlog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		logger.PrintError(err, nil)
		os.Exit(1)
	}

	if cfg.Debug {
		logger.PrintInfo("starting pixelsum-mcp", map[string]string{
			"version":     Version,
			"build_time":  BuildTime,
			"git_commit":  GitCommit,
			"max_indexes": fmt.Sprint(cfg.MaxIndexes),
		})
	}

	if Version != "dev" {
		server.Version = Version
	}

	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.PrintError(err, map[string]string{"stage": "serve"})
		os.Exit(1)
	}
}
