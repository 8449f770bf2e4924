package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ezyqa/game-tester/pkg/client"
	"github.com/ezyqa/game-tester/pkg/core"
	"github.com/ezyqa/game-tester/pkg/logger"
)

var allStages = []string{"plan", "rank", "execute", "analyze", "report"}

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "Drive the workflow client through the selected stages",
	Description: `Invoke workflow stages against the backend, in order, printing each
raw JSON response. Stages are explicit: every stage checks that the
state produced by its predecessor exists before contacting the
backend, and a violated precondition stops the run with a warning.

Examples:
  game-tester run
  game-tester run --target-url https://play.ezygamers.com
  game-tester run --stages plan,rank
  game-tester run --stages report   # warns: no run yet`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "target-url",
			Aliases: []string{"t"},
			Usage:   "Site under test (empty uses the backend client default)",
		},
		&cli.StringFlag{
			Name:  "stages",
			Usage: "Comma-separated stages to run, in order",
			Value: strings.Join(allStages, ","),
		},
	},
	Action: runWorkflow,
}

func runWorkflow(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	serverURL := c.String("server-url")
	if serverURL == "" {
		serverURL = cfg.ServerURL
	}

	if err := logger.Init(c.String("log-file")); err != nil {
		return err
	}
	defer logger.Close()

	stages, err := parseStages(c.String("stages"))
	if err != nil {
		return err
	}

	session := client.NewSession(serverURL)
	ctx := c.Context

	for _, stage := range stages {
		raw, err := invokeStage(ctx, session, stage, c.String("target-url"))

		var werr *core.WorkflowError
		if errors.As(err, &werr) {
			// Precondition violation or missing report: warn and stop,
			// nothing after this stage could succeed either.
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", stage, werr.Message)
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s failed: %w", stage, err)
		}

		fmt.Printf("== %s ==\n%s\n", stage, indentJSON(raw))
	}

	return nil
}

func invokeStage(ctx context.Context, s *client.Session, stage, targetURL string) (json.RawMessage, error) {
	switch stage {
	case "plan":
		return s.Plan(ctx, targetURL)
	case "rank":
		return s.Rank(ctx)
	case "execute":
		return s.Execute(ctx)
	case "analyze":
		return s.Analyze(ctx)
	case "report":
		return s.FetchReport(ctx)
	default:
		return nil, fmt.Errorf("unknown stage %q", stage)
	}
}

func parseStages(spec string) ([]string, error) {
	var stages []string
	for _, stage := range strings.Split(spec, ",") {
		stage = strings.TrimSpace(stage)
		if stage == "" {
			continue
		}
		if !isKnownStage(stage) {
			return nil, fmt.Errorf("unknown stage %q (valid: %s)", stage, strings.Join(allStages, ", "))
		}
		stages = append(stages, stage)
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("no stages selected")
	}
	return stages, nil
}

func isKnownStage(stage string) bool {
	for _, s := range allStages {
		if s == stage {
			return true
		}
	}
	return false
}

func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
