// Package worker runs fan-out work on a bounded goroutine pool.
//
// Handlers never start naked goroutines; parallel reads go through Pool.Run.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/TheReasonWePlay/FTVN-sub001/logger"
)

// ErrPoolClosed is returned when submitting to a released pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is one branch of a fan-out. It must only write state it owns.
type Task func(ctx context.Context) error

// Pool wraps ants.Pool with context-aware fan-out.
type Pool struct {
	pool *ants.Pool
	name string
}

// New creates a blocking pool of the given size.
func New(name string, size int) (*Pool, error) {
	p, err := ants.NewPool(size,
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
		ants.WithPanicHandler(func(r any) {
			logger.Error("worker panic recovered", zap.String("pool", name), zap.Any("panic", r), zap.Stack("stack"))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s pool: %w", name, err)
	}
	return &Pool{pool: p, name: name}, nil
}

// Run executes every task on the pool and waits for all of them.
// The first failing task cancels the context handed to the others;
// its error is returned.
func (p *Pool) Run(ctx context.Context, tasks ...Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for _, task := range tasks {
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Error("task panicked", zap.String("pool", p.name), zap.Any("panic", r), zap.Stack("stack"))
					fail(fmt.Errorf("task panicked: %v", r))
				}
			}()
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			if err := task(ctx); err != nil {
				fail(err)
			}
		})
		if err != nil {
			wg.Done()
			if errors.Is(err, ants.ErrPoolClosed) {
				err = ErrPoolClosed
			}
			fail(err)
			break
		}
	}

	wg.Wait()
	return firstErr
}

// Release waits up to timeout for running tasks and frees the workers.
func (p *Pool) Release(timeout time.Duration) {
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		logger.Warn("worker pool release timeout", zap.String("pool", p.name), zap.Error(err))
	}
}

// Metrics reports pool occupancy.
func (p *Pool) Metrics() map[string]int {
	return map[string]int{
		"running": p.pool.Running(),
		"free":    p.pool.Free(),
		"cap":     p.pool.Cap(),
	}
}
