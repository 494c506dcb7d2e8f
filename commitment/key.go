package commitment

import (
	"errors"
	"fmt"

	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/internal/parallel"
	"github.com/f3rmion/ipa/msm"
	"github.com/f3rmion/ipa/polynomial"
	"github.com/f3rmion/ipa/srs"
)

// ErrSRSTooShort is returned when a polynomial has more coefficients than
// the key has base points.
var ErrSRSTooShort = errors.New("commitment: SRS shorter than polynomial")

// key is the state shared by prover and verifier keys: a reference
// string and an MSM runtime sized to it.
type key struct {
	group   group.Group
	srs     *srs.SRS
	runtime *msm.Runtime
}

func newKey(g group.Group, s *srs.SRS, opts []msm.Option) (key, error) {
	if s == nil || len(s.Points) == 0 {
		return key{}, errors.New("commitment: empty SRS")
	}
	if err := s.Validate(); err != nil {
		return key{}, err
	}
	rt, err := msm.NewRuntime(g, s.Len(), opts...)
	if err != nil {
		return key{}, err
	}
	return key{group: g, srs: s, runtime: rt}, nil
}

// Group returns the group the key is defined over.
func (k *key) Group() group.Group {
	return k.group
}

// MonomialPoints returns the raw SRS entries. With an endomorphism-paired
// layout only the even indices are base points.
func (k *key) MonomialPoints() []group.Point {
	return k.srs.Points
}

// Layout returns the layout of the underlying SRS.
func (k *key) Layout() srs.Layout {
	return k.srs.Layout
}

// Size returns the number of base points, which bounds the length of any
// polynomial the key can handle.
func (k *key) Size() int {
	return k.srs.Len()
}

// MSM returns the key's MSM runtime.
func (k *key) MSM() *msm.Runtime {
	return k.runtime
}

// BasePoints returns fresh copies of the first n base points, skipping
// endomorphism images. Callers may modify the returned points.
func (k *key) BasePoints(n int) ([]group.Point, error) {
	if n > k.srs.Len() {
		return nil, fmt.Errorf("%w: need %d points, have %d", ErrSRSTooShort, n, k.srs.Len())
	}
	out := make([]group.Point, n)
	parallel.Execute(n, func(start, end, _ int) {
		for i := start; i < end; i++ {
			out[i] = k.group.NewPoint().Set(k.srs.Base(i))
		}
	})
	return out, nil
}

// CommitmentKey is the prover's key. It is read-only after construction
// and may be shared by concurrent proofs.
type CommitmentKey struct {
	key
}

// NewCommitmentKey builds a prover key over s.
func NewCommitmentKey(g group.Group, s *srs.SRS, opts ...msm.Option) (*CommitmentKey, error) {
	k, err := newKey(g, s, opts)
	if err != nil {
		return nil, err
	}
	return &CommitmentKey{key: k}, nil
}

// Commit returns the commitment <p, G[0..len(p))> to p.
func (ck *CommitmentKey) Commit(p polynomial.Polynomial) (group.Point, error) {
	bases, err := ck.BasePoints(p.Len())
	if err != nil {
		return nil, err
	}
	return ck.runtime.Run(p, bases)
}

// VerifierKey is the verifier's key. It is read-only after construction
// and may be shared by concurrent verifications.
type VerifierKey struct {
	key
}

// NewVerifierKey builds a verifier key over s.
func NewVerifierKey(g group.Group, s *srs.SRS, opts ...msm.Option) (*VerifierKey, error) {
	k, err := newKey(g, s, opts)
	if err != nil {
		return nil, err
	}
	return &VerifierKey{key: k}, nil
}
