package runner

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

func TestProgressLogging(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	clock := quartz.NewMock(t)
	r := New(logger, clock, 1)

	var done atomic.Int64
	p := r.startProgress(&done, 10)

	done.Store(3)
	clock.Advance(r.progress).MustWait(ctx)
	out := buf.String()
	require.Contains(t, out, "replay progress")
	require.Contains(t, out, "done=3")
	require.Contains(t, out, "total=10")

	// The tick rearms itself for the next interval.
	done.Store(7)
	clock.Advance(r.progress).MustWait(ctx)
	require.Contains(t, buf.String(), "done=7")

	p.stop()
	before := buf.Len()
	clock.Advance(r.progress).MustWait(ctx)
	require.Equal(t, before, buf.Len())
}

func TestProgressStopBeforeFirstTick(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	clock := quartz.NewMock(t)
	r := New(logger, clock, 1)

	var done atomic.Int64
	p := r.startProgress(&done, 5)
	p.stop()

	clock.Advance(r.progress).MustWait(context.Background())
	require.Zero(t, buf.Len())
}
