// Taskporter: local project/task tracker MCP server
//
// A file-backed tracker for programmatic (agent) callers: projects
// with embedded PRDs, tasks with dependencies and decomposition, and
// live rollup reports, all served over MCP stdio.
//
// Usage:
//
//	taskporter serve             # Start MCP server (stdio transport)
//	taskporter serve -config f   # Use an explicit config file
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/taskporter/taskporter/internal/config"
	"github.com/taskporter/taskporter/internal/logging"
	tpserver "github.com/taskporter/taskporter/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("taskporter v%s\n", tpserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to taskporter.yaml")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// All logging goes to stderr; stdout is the MCP transport.
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	s, cleanup, err := tpserver.New(cfg, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `taskporter v%s - local project/task tracker MCP server

Usage:
  taskporter serve [-config path]   Start the MCP server (stdio transport)
  taskporter version                Print the version

Configuration (taskporter.yaml, all optional):
  storage_root: .taskporter    # where records live
  backend: file                # file | sqlite
  log_level: info              # zap level name

Environment overrides: TASKPORTER_ROOT, TASKPORTER_BACKEND,
TASKPORTER_LOG_LEVEL.

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "taskporter": {
        "command": "taskporter",
        "args": ["serve"]
      }
    }
  }
`, tpserver.Version)
}
