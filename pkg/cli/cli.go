// Package cli provides the command-line interface for the game tester.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config.yaml (defaults to ./config.yaml when present)",
		EnvVars: []string{"GAME_TESTER_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "server-url",
		Aliases: []string{"s"},
		Usage:   "Backend URL the workflow client talks to",
		EnvVars: []string{"GAME_TESTER_SERVER_URL"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Write logs to this file instead of stderr",
		EnvVars: []string{"GAME_TESTER_LOG_FILE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "game-tester",
		Usage:   "Multi-stage game tester: plan, rank, execute, analyze, report",
		Version: Version,
		Description: `Game Tester drives a four-stage QA workflow against an online
puzzle/gaming site: plan candidate tests, rank them, execute the
best ones in parallel and analyze the results into a report.

Examples:
  game-tester serve
  game-tester run --target-url https://play.ezygamers.com
  game-tester run --stages plan,rank
  game-tester run --stages plan,rank,execute,analyze,report -s http://127.0.0.1:8000`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			serveCommand,
			runCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
