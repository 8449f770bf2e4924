package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ezyqa/game-tester/pkg/config"
	"github.com/ezyqa/game-tester/pkg/logger"
	"github.com/ezyqa/game-tester/pkg/server"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Run the game tester backend API",
	Description: `Start the HTTP backend that serves the workflow stages.

Examples:
  game-tester serve
  game-tester serve --addr :9000
  game-tester serve --reports-dir ./my-reports`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Usage: "Listen address (overrides config)",
		},
		&cli.StringFlag{
			Name:  "reports-dir",
			Usage: "Directory for reports and artifacts (overrides config)",
		},
		&cli.StringFlag{
			Name:  "target-url",
			Usage: "Default site under test (overrides config)",
		},
	},
	Action: runServe,
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if addr := c.String("addr"); addr != "" {
		cfg.ListenAddr = addr
	}
	if dir := c.String("reports-dir"); dir != "" {
		cfg.ReportsDir = dir
	}
	if target := c.String("target-url"); target != "" {
		cfg.TargetURL = target
	}

	if err := logger.Init(c.String("log-file")); err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg).ListenAndServe(ctx)
}

// loadConfig resolves configuration from --config or the working directory.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadFromDir(".")
}
