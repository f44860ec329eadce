package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/pokerlog/handreplay/internal/runner"
	"github.com/pokerlog/handreplay/internal/scenario"
)

// BatchCmd replays every fixture in a directory and summarizes the outcomes,
// optionally writing the full report as JSON.
type BatchCmd struct {
	Dir     string `arg:"" help:"Directory of .hcl hand fixtures"`
	Report  string `help:"Write a JSON report to this path"`
	Workers int    `help:"Replay workers (0 = one per CPU)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func (c *BatchCmd) Run() error {
	logger := newLogger(c.Verbose)

	hands, err := scenario.LoadDir(c.Dir)
	if err != nil {
		return err
	}

	ctx := signalContext(logger)
	summary, err := runner.New(logger, quartz.NewReal(), c.Workers).Run(ctx, hands)
	if err != nil {
		return err
	}

	fmt.Printf("replayed %d hands in %s: %d failures, %d warnings, hero net %+d\n",
		summary.Hands, summary.Duration.Round(time.Millisecond),
		summary.Failures, summary.Warnings, summary.HeroNet)
	for _, grade := range []string{"exact", "evaluated", "heuristic"} {
		if n := summary.Confidence[grade]; n > 0 {
			fmt.Printf("  %s: %d\n", grade, n)
		}
	}

	if c.Report != "" {
		if err := summary.WriteReport(c.Report, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("report written", "path", c.Report)
	}

	if summary.Failures > 0 {
		return fmt.Errorf("%d of %d hands failed to replay", summary.Failures, summary.Hands)
	}
	return nil
}

// signalContext returns a context cancelled by the first interrupt, so a
// long batch can stop cleanly mid-run.
func signalContext(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("received signal, stopping", "signal", sig.String())
		cancel()
	}()

	return ctx
}
