// Command replay feeds recorded kernel output traces through the result
// collector and prints the assembled executions, or checks them against a
// behaviour file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	codeinterpreter "github.com/FellowTraveler/code-interpreter"
	"github.com/FellowTraveler/code-interpreter/collect"
	"github.com/FellowTraveler/code-interpreter/internal/environment"
	"github.com/FellowTraveler/code-interpreter/scenario"
	"github.com/FellowTraveler/code-interpreter/termfmt"
	"github.com/FellowTraveler/code-interpreter/trace"
)

func main() {
	cmd := &cli.Command{
		Name:  "replay",
		Usage: "replay recorded kernel output traces through the result collector",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "trace",
				Aliases: []string{"t"},
				Usage:   "trace file (.jsonl, .jsonl.zst); repeatable",
			},
			&cli.StringFlag{
				Name:    "scenarios",
				Aliases: []string{"s"},
				Usage:   "behaviour TOML file to check traces against",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "suppress per-event output, print only summaries",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	env := environment.ReadEnvConfig()

	level := env.LogLevel
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	noColor := env.NoColor || cmd.Bool("no-color")
	color.NoColor = color.NoColor || noColor

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))

	if path := cmd.String("scenarios"); path != "" {
		return runScenarios(path, logger)
	}

	paths := cmd.StringSlice("trace")
	if len(paths) == 0 {
		return fmt.Errorf("no trace files given, see --trace")
	}
	return replayTraces(ctx, paths, logger, cmd.Bool("quiet"))
}

func runScenarios(path string, logger *slog.Logger) error {
	cases, err := scenario.Parse(path)
	if err != nil {
		return err
	}
	failed := 0
	for _, c := range cases {
		exec, err := replayOne(c.Trace, logger, nil)
		if err == nil {
			err = scenario.Check(c, exec)
		}
		if err != nil {
			failed++
			color.Red("FAIL %s: %v", c.Name, err)
			continue
		}
		color.Green("ok   %s", c.Name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(cases))
	}
	logger.Info("all scenarios passed", "count", len(cases))
	return nil
}

func replayTraces(ctx context.Context, paths []string, logger *slog.Logger, quiet bool) error {
	// printing per event from several goroutines would interleave, so only
	// a single non-quiet trace streams to the terminal
	var printer collect.Sink
	if len(paths) == 1 && !quiet {
		printer = termfmt.New(os.Stdout)
	}

	execs := make([]*codeinterpreter.Execution, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			exec, err := replayOne(path, logger, printer)
			if err != nil {
				return err
			}
			execs[i] = exec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, exec := range execs {
		if len(paths) > 1 {
			fmt.Printf("--- %s ---\n", paths[i])
		}
		termfmt.Summary(os.Stdout, exec)
	}
	return nil
}

func replayOne(path string, logger *slog.Logger, printer collect.Sink) (*codeinterpreter.Execution, error) {
	events, err := trace.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded trace", "path", path, "events", len(events))

	builder := collect.NewBuilder(collect.WithLogger(logger))
	var sink collect.Sink = builder
	if printer != nil {
		sink = collect.NewFanout(builder, printer)
	}
	if err := trace.Apply(events, sink); err != nil {
		return nil, fmt.Errorf("replay %s: %w", path, err)
	}
	return builder.Execution(), nil
}
