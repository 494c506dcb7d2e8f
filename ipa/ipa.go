package ipa

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/internal/logger"
	"github.com/f3rmion/ipa/internal/parallel"
)

// Transcript labels. Prover and verifier must use them in this order.
const (
	labelDegree    = "IPA:poly_degree_plus_1"
	labelGenerator = "IPA:generator_challenge"
	labelA0        = "IPA:a_0"
)

func labelL(i int) string { return "IPA:L_" + strconv.Itoa(i) }
func labelR(i int) string { return "IPA:R_" + strconv.Itoa(i) }
func labelChallenge(i int) string { return "IPA:round_challenge_" + strconv.Itoa(i) }

// IPA opens and verifies polynomial commitments over a group.
// An IPA holds no per-proof state and may be used concurrently.
type IPA struct {
	group           group.Group
	pool            *parallel.Pool
	log             *zerolog.Logger
	checkEvaluation bool
}

// New returns an IPA over g.
func New(g group.Group, opts ...Option) *IPA {
	p := &IPA{
		group: g,
		pool:  parallel.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Group returns the group the IPA works over.
func (p *IPA) Group() group.Group {
	return p.group
}

func (p *IPA) logger() zerolog.Logger {
	if p.log != nil {
		return *p.log
	}
	return logger.Logger()
}

// Rounds returns the number of folding rounds for a polynomial of
// length d, which must be a power of two.
func Rounds(d int) int {
	k := 0
	for d > 1 {
		d >>= 1
		k++
	}
	return k
}

func isPowerOfTwo(d int) bool {
	return d > 0 && d&(d-1) == 0
}
