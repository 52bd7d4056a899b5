package taskgroup

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestGoRunsTask(t *testing.T) {
	g := New(quietLogger())
	done := make(chan struct{})

	g.Go("task", func(ctx context.Context) {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	g.Shutdown()
}

func TestPanicDoesNotAffectSiblings(t *testing.T) {
	g := New(quietLogger())
	var ran atomic.Bool
	done := make(chan struct{})

	g.Go("bad", func(ctx context.Context) {
		panic("boom")
	})
	g.Go("good", func(ctx context.Context) {
		ran.Store(true)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sibling task never ran")
	}
	assert.True(t, ran.Load())
	g.Shutdown()
}

func TestShutdownCancelsContext(t *testing.T) {
	g := New(quietLogger())
	cancelled := make(chan struct{})

	g.Go("waiter", func(ctx context.Context) {
		<-ctx.Done()
		close(cancelled)
	})

	g.Shutdown()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled")
	}
}

func TestRefusesTasksAfterShutdown(t *testing.T) {
	g := New(quietLogger())
	g.Shutdown()

	var ran atomic.Bool
	g.Go("late", func(ctx context.Context) {
		ran.Store(true)
	})

	time.Sleep(20 * time.Millisecond)
	assert.False(t, ran.Load())
	assert.EqualValues(t, 0, g.Pending())
}
