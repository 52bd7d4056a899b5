// Package taskgroup runs fire-and-forget background tasks with per-task
// panic isolation. Callers hand off work and return immediately; a failing
// task is logged and never takes the process or its siblings down.
package taskgroup

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Spawner is the capability handed to code that launches background work.
type Spawner interface {
	Go(name string, fn func(ctx context.Context))
}

type Group struct {
	log     *logrus.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending atomic.Int64
	stopped atomic.Bool
}

func New(log *logrus.Logger) *Group {
	ctx, cancel := context.WithCancel(context.Background())
	return &Group{
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Go launches fn on its own goroutine. After Shutdown new tasks are refused.
func (g *Group) Go(name string, fn func(ctx context.Context)) {
	if g.stopped.Load() {
		g.log.Warnf("Task group stopped, refusing task %s", name)
		return
	}

	g.wg.Add(1)
	g.pending.Add(1)
	go func() {
		defer g.wg.Done()
		defer g.pending.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				g.log.Errorf("Task %s panicked: %v", name, r)
			}
		}()

		fn(g.ctx)
	}()
}

// Pending reports how many tasks have not finished yet.
func (g *Group) Pending() int64 {
	return g.pending.Load()
}

// Shutdown cancels the group context and waits for running tasks to notice.
// Tasks still waiting on their scheduled time are abandoned; their calls are
// lost, which is the accepted restart behavior. Safe to call multiple times.
func (g *Group) Shutdown() {
	if !g.stopped.CompareAndSwap(false, true) {
		return
	}

	if n := g.pending.Load(); n > 0 {
		g.log.Warnf("Shutting down with %d scheduled call(s) still pending; they will not fire", n)
	}
	g.cancel()
	g.wg.Wait()
}
