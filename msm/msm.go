// Package msm provides the multi-scalar multiplication runtime used by the
// commitment keys.
//
// A [Runtime] is created once, sized for the largest MSM a proof or
// verification will request, and then shared read-only. It dispatches to
// the group's native [group.MultiScalarMultiplier] when there is one, and
// otherwise splits the sum across a worker pool and adds the per-worker
// partial results.
package msm

import (
	"errors"
	"fmt"

	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/internal/parallel"
)

var (
	// ErrLengthMismatch is returned when scalars and points differ in length.
	ErrLengthMismatch = errors.New("msm: scalars and points differ in length")
	// ErrCapacityExceeded is returned when an input is larger than the
	// runtime was sized for.
	ErrCapacityExceeded = errors.New("msm: input exceeds runtime capacity")
)

// Runtime is the MSM state shared by a commitment key. It is safe for
// concurrent use.
type Runtime struct {
	group    group.Group
	capacity int
	pool     *parallel.Pool
	native   group.MultiScalarMultiplier
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithWorkers sets the size of the pool used by the generic backend.
func WithWorkers(n int) Option {
	return func(r *Runtime) {
		r.pool = parallel.New(n)
	}
}

// WithGenericBackend disables the group's native MSM, if any.
func WithGenericBackend() Option {
	return func(r *Runtime) {
		r.native = nil
	}
}

// NewRuntime returns a runtime for g that accepts inputs of up to capacity
// pairs.
func NewRuntime(g group.Group, capacity int, opts ...Option) (*Runtime, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("msm: negative capacity %d", capacity)
	}
	r := &Runtime{
		group:    g,
		capacity: capacity,
		pool:     parallel.Default(),
	}
	if native, ok := g.(group.MultiScalarMultiplier); ok {
		r.native = native
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Capacity returns the largest input length Run accepts.
func (r *Runtime) Capacity() int {
	return r.capacity
}

// Native reports whether Run uses the group's own MSM.
func (r *Runtime) Native() bool {
	return r.native != nil
}

// Run returns sum(scalars[i] * points[i]).
func (r *Runtime) Run(scalars []group.Scalar, points []group.Point) (group.Point, error) {
	if len(scalars) != len(points) {
		return nil, fmt.Errorf("%w: %d scalars, %d points", ErrLengthMismatch, len(scalars), len(points))
	}
	if len(scalars) > r.capacity {
		return nil, fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, len(scalars), r.capacity)
	}
	if len(scalars) == 0 {
		return r.group.NewPoint(), nil
	}
	if r.native != nil {
		return r.native.MultiScalarMult(scalars, points)
	}
	return r.generic(scalars, points), nil
}

func (r *Runtime) generic(scalars []group.Scalar, points []group.Point) group.Point {
	n := len(scalars)
	partial := make([]group.Point, r.pool.Chunks(n))
	r.pool.Execute(n, func(start, end, chunk int) {
		acc := r.group.NewPoint()
		term := r.group.NewPoint()
		for i := start; i < end; i++ {
			term.ScalarMult(scalars[i], points[i])
			acc.Add(acc, term)
		}
		partial[chunk] = acc
	})

	sum := r.group.NewPoint()
	for _, p := range partial {
		sum.Add(sum, p)
	}
	return sum
}
