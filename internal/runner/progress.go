package runner

import (
	"sync"
	"sync/atomic"

	"github.com/coder/quartz"
)

// progressLogger periodically reports how far a batch has progressed. Long
// regression runs otherwise sit silent for minutes.
type progressLogger struct {
	runner *Runner
	done   *atomic.Int64
	total  int

	mu      sync.Mutex
	timer   *quartz.Timer
	stopped bool
}

func (r *Runner) startProgress(done *atomic.Int64, total int) *progressLogger {
	p := &progressLogger{runner: r, done: done, total: total}
	p.timer = r.clock.AfterFunc(r.progress, p.tick)
	return p
}

func (p *progressLogger) tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.runner.logger.Info("replay progress", "done", p.done.Load(), "total", p.total)
	p.timer.Reset(p.runner.progress)
}

func (p *progressLogger) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.timer.Stop()
}
