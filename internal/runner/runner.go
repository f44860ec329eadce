// Package runner replays batches of recorded hands concurrently and
// aggregates the outcomes into a report.
package runner

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/pokerlog/handreplay/poker"
	"github.com/pokerlog/handreplay/replay"
)

// maxReplaySteps bounds a single replay; any legal hand finishes in far
// fewer steps, so hitting it means the engine is stuck.
const maxReplaySteps = 10000

const progressInterval = 5 * time.Second

// Runner replays many hands concurrently. Each worker drives its own
// replay.State over its own hand, so workers share nothing and need no
// locks.
type Runner struct {
	logger   *log.Logger
	clock    quartz.Clock
	workers  int
	progress time.Duration
}

// New creates a runner with the given worker count; workers <= 0 means one
// per CPU.
func New(logger *log.Logger, clock quartz.Clock, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		logger:   logger.WithPrefix("runner"),
		clock:    clock,
		workers:  workers,
		progress: progressInterval,
	}
}

// Run replays every hand and aggregates the results. A hand that cannot be
// replayed is recorded as a failure in the summary rather than stopping the
// batch; Run itself fails only when the context is cancelled.
func (r *Runner) Run(ctx context.Context, hands []*replay.Hand) (*Summary, error) {
	start := r.clock.Now()
	r.logger.Info("replaying batch", "hands", len(hands), "workers", r.workers)

	var done atomic.Int64
	progress := r.startProgress(&done, len(hands))
	defer progress.stop()

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan *replay.Hand)
	results := make(chan Result, r.workers)

	g.Go(func() error {
		defer close(jobs)
		for _, hand := range hands {
			select {
			case jobs <- hand:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < r.workers; w++ {
		g.Go(func() error {
			for hand := range jobs {
				select {
				case results <- replayOne(hand):
					done.Add(1)
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		defer close(results)
		g.Wait()
	}()

	summary := newSummary()
	for result := range results {
		summary.add(result)
		if result.Err != "" {
			r.logger.Warn("replay failed", "hand", result.HandID, "error", result.Err)
		} else {
			r.logger.Debug("hand replayed",
				"hand", result.HandID,
				"steps", result.Steps,
				"confidence", result.Confidence)
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Workers finish out of order; keep the report stable.
	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].HandID < summary.Results[j].HandID
	})
	summary.Duration = r.clock.Since(start)

	r.logger.Info("batch complete",
		"hands", summary.Hands,
		"failures", summary.Failures,
		"steps", summary.Steps,
		"hero_net", summary.HeroNet,
		"duration", summary.Duration)
	return summary, nil
}

// replayOne drives a single hand from start to settlement.
func replayOne(hand *replay.Hand) Result {
	result := Result{HandID: hand.ID, HeroCategory: heroCategory(hand)}

	s, err := replay.Start(hand)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	for !s.HandComplete() {
		if _, err := s.Advance(hand); err != nil {
			result.Err = err.Error()
			return result
		}
		result.Steps++
		if result.Steps > maxReplaySteps {
			result.Err = fmt.Sprintf("replay did not settle within %d steps", maxReplaySteps)
			return result
		}
	}
	if err := s.CheckBalance(); err != nil {
		result.Err = err.Error()
		return result
	}

	result.Confidence = s.Confidence().String()
	for _, share := range s.Winners() {
		result.Winners = append(result.Winners, Share{
			Player: share.PlayerName,
			Amount: share.Amount,
			Hand:   share.HandDesc,
		})
	}
	for _, warning := range s.Warnings() {
		result.Warnings = append(result.Warnings, warning.String())
	}
	if hero := hand.Hero(); hero != nil {
		result.HeroNet = s.NetResults(hand)[hero.Name]
	}
	return result
}

// heroCategory buckets the hero's starting hand for the report, empty when
// the record has no hero or no hero cards.
func heroCategory(hand *replay.Hand) string {
	hero := hand.Hero()
	if hero == nil || !hero.HoleCards.Known() {
		return ""
	}
	cards := hero.HoleCards.Cards()
	if len(cards) != 2 {
		return ""
	}
	return string(poker.CategorizeHoleCards(cards[0], cards[1]))
}
