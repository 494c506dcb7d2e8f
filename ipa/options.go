package ipa

import (
	"github.com/rs/zerolog"

	"github.com/f3rmion/ipa/internal/parallel"
)

// Option configures an IPA.
type Option func(*IPA)

// WithWorkers sets the number of goroutines used for the vector
// arithmetic inside a round. n <= 0 means runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(p *IPA) {
		p.pool = parallel.New(n)
	}
}

// WithLogger replaces the process-wide logger for this instance.
func WithLogger(l zerolog.Logger) Option {
	return func(p *IPA) {
		p.log = &l
	}
}

// WithEvaluationCheck makes the prover evaluate the polynomial at the
// opening point and refuse to prove a wrong evaluation.
func WithEvaluationCheck(enabled bool) Option {
	return func(p *IPA) {
		p.checkEvaluation = enabled
	}
}
