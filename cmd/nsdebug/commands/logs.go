package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/fieldpay/nsdebug/internal/logwatch"
	"github.com/fieldpay/nsdebug/internal/simctl"
)

func logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "tail the simulator log filtered to OAuth flow activity",
		Flags: append(simulatorFlags(),
			&cli.StringSliceFlag{
				Name:  "keyword",
				Usage: "extra keyword to match (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "no-default-keywords",
				Usage: "match only the --keyword values, not the built-in OAuth set",
			},
		),
		Action: logsAction,
	}
}

func logsAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	sim, err := simctl.New(cfg.Simulator.Device)
	if err != nil {
		return err
	}

	// Preflight: a missing device or app produces an empty stream, which
	// looks exactly like a silent OAuth flow. Fail loudly instead.
	listed, listing, err := sim.DeviceListed(ctx)
	if err != nil {
		return fmt.Errorf("checking simulator: %w", err)
	}
	if !listed {
		fmt.Println("Available devices:")
		fmt.Println(listing)
		return fmt.Errorf("simulator %q not found", cfg.Simulator.Device)
	}

	installed, err := sim.AppInstalled(ctx, cfg.Simulator.BundleID)
	if err != nil {
		return fmt.Errorf("checking app installation: %w", err)
	}
	if !installed {
		return fmt.Errorf("app %s not installed on %q - install and launch it first", cfg.Simulator.BundleID, cfg.Simulator.Device)
	}

	keywords := cmd.StringSlice("keyword")
	if !cmd.Bool("no-default-keywords") {
		keywords = append(keywords, logwatch.DefaultKeywords...)
	}
	if len(keywords) == 0 {
		return fmt.Errorf("no keywords to match; drop --no-default-keywords or pass --keyword")
	}
	matcher := logwatch.NewMatcher(keywords...)

	stream, err := sim.StreamLogs(ctx, cfg.Simulator.Process)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "log stream started",
		"device", cfg.Simulator.Device, "process", cfg.Simulator.Process)
	fmt.Printf("Monitoring %q logs for process %q - press Ctrl+C to stop\n",
		cfg.Simulator.Device, cfg.Simulator.Process)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(watchCtx)
	g.Go(func() error {
		defer cancel()
		return logwatch.Watch(gctx, stream, matcher, printEntry)
	})
	g.Go(func() error {
		// Closing the stream terminates the simctl subprocess, which ends
		// the Watch goroutine's scan loop.
		<-gctx.Done()
		return stream.Close()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("log stream failed: %w", err)
	}

	fmt.Println("\nMonitoring stopped")
	return nil
}

func printEntry(entry logwatch.Entry) {
	fmt.Printf("[%s] %s\n", entry.Time.Format("15:04:05.000"), entry.Line)
	if annotation := entry.Event.Annotation(); annotation != "" {
		fmt.Println(annotation)
	}
}
