// Package parallel provides the fork-join helper used for the data-parallel
// steps of the commitment scheme: inner-product partial sums, power
// fills, vector folds and MSM fallbacks.
//
// Work over an index range [0, n) is split into contiguous chunks, one per
// worker. Each chunk is handed its own index so callers can write into a
// private slot and combine the slots sequentially once Execute returns.
// No shared mutable state is needed while the workers run.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest range a single worker is given. Ranges shorter
// than two chunks run on the calling goroutine.
const minChunk = 16

// Pool is a fixed-size set of workers. The zero value is not usable;
// construct one with New.
type Pool struct {
	workers int
}

// New returns a Pool with the given number of workers. A non-positive
// count selects runtime.NumCPU().
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

var defaultPool = New(0)

// Default returns a process-wide pool sized to the number of CPUs.
func Default() *Pool {
	return defaultPool
}

// Workers returns the pool size.
func (p *Pool) Workers() int {
	return p.workers
}

// Chunks returns how many chunks Execute splits a range of length n into.
// Callers use it to size their per-chunk result slots.
func (p *Pool) Chunks(n int) int {
	if n <= 0 {
		return 0
	}
	c := n / minChunk
	if c < 2 {
		return 1
	}
	if c > p.workers {
		c = p.workers
	}
	return c
}

// Execute runs work over [0, n) in Chunks(n) contiguous pieces and waits
// for all of them. chunk is the zero-based piece index.
func (p *Pool) Execute(n int, work func(start, end, chunk int)) {
	_ = p.ExecuteErr(n, func(start, end, chunk int) error {
		work(start, end, chunk)
		return nil
	})
}

// ExecuteErr is Execute for work that can fail. It returns the first
// non-nil error; the remaining chunks still run to completion.
func (p *Pool) ExecuteErr(n int, work func(start, end, chunk int) error) error {
	chunks := p.Chunks(n)
	if chunks == 0 {
		return nil
	}
	if chunks == 1 {
		return work(0, n, 0)
	}

	var g errgroup.Group
	for c := 0; c < chunks; c++ {
		c := c
		start := c * n / chunks
		end := (c + 1) * n / chunks
		g.Go(func() error {
			return work(start, end, c)
		})
	}
	return g.Wait()
}

// Execute runs work on the default pool.
func Execute(n int, work func(start, end, chunk int)) {
	defaultPool.Execute(n, work)
}
