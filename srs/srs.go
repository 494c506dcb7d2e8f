package srs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/internal/logger"
	"github.com/f3rmion/ipa/internal/parallel"
)

// Layout describes how base points are stored in an SRS.
type Layout uint8

const (
	// Plain stores only the base points G_0, G_1, ...
	Plain Layout = iota
	// EndomorphismPaired stores G_0, φ(G_0), G_1, φ(G_1), ... Only even
	// indices are base points.
	EndomorphismPaired
)

func (l Layout) String() string {
	switch l {
	case Plain:
		return "plain"
	case EndomorphismPaired:
		return "endomorphism-paired"
	default:
		return fmt.Sprintf("layout(%d)", uint8(l))
	}
}

var (
	// ErrNoEndomorphism is returned when pairing is requested for a group
	// that does not implement group.Endomorphism.
	ErrNoEndomorphism = errors.New("srs: group has no endomorphism")
	// ErrOddLength is returned for a paired SRS with an odd number of points.
	ErrOddLength = errors.New("srs: paired layout needs an even number of points")
	// ErrUnknownLayout is returned for layouts other than Plain and EndomorphismPaired.
	ErrUnknownLayout = errors.New("srs: unknown layout")
)

// SRS is an ordered list of group elements used as a commitment basis.
// An SRS is immutable once built and may be shared freely.
type SRS struct {
	Points []group.Point
	Layout Layout
}

// Validate checks the layout invariants.
func (s *SRS) Validate() error {
	switch s.Layout {
	case Plain:
		return nil
	case EndomorphismPaired:
		if len(s.Points)%2 != 0 {
			return ErrOddLength
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownLayout, s.Layout)
	}
}

// Len returns the number of base points.
func (s *SRS) Len() int {
	if s.Layout == EndomorphismPaired {
		return len(s.Points) / 2
	}
	return len(s.Points)
}

// Base returns base point i. It skips the endomorphism images of a paired
// layout.
func (s *SRS) Base(i int) group.Point {
	if s.Layout == EndomorphismPaired {
		return s.Points[2*i]
	}
	return s.Points[i]
}

// Generate derives n base points from domain.
//
// If g implements group.PointHasher, G_i = HashToPoint(be64(i), domain)
// and nobody knows a discrete log relation between the points. Otherwise
// G_i = HashToScalar(domain, be64(i)) * G, which is fine for tests but
// must not be used for real commitments.
//
// progress, if non-nil, is called once per generated point and may be
// called from several goroutines at once.
func Generate(g group.Group, n int, domain []byte, progress func(int)) (*SRS, error) {
	if n <= 0 {
		return nil, fmt.Errorf("srs: size must be positive, got %d", n)
	}
	hasher, transparent := g.(group.PointHasher)
	if !transparent {
		l := logger.Logger()
		l.Warn().Str("curve", g.Name()).Msg("group has no hash-to-curve; SRS discrete logs are known")
	}

	points := make([]group.Point, n)
	var done atomic.Int64
	err := parallel.Default().ExecuteErr(n, func(start, end, _ int) error {
		var idx [8]byte
		for i := start; i < end; i++ {
			binary.BigEndian.PutUint64(idx[:], uint64(i))
			if transparent {
				p, err := hasher.HashToPoint(idx[:], domain)
				if err != nil {
					return fmt.Errorf("srs: hash point %d: %w", i, err)
				}
				points[i] = p
			} else {
				k, err := g.HashToScalar(domain, idx[:])
				if err != nil {
					return fmt.Errorf("srs: hash scalar %d: %w", i, err)
				}
				points[i] = g.NewPoint().ScalarMult(k, g.Generator())
			}
			if progress != nil {
				progress(int(done.Add(1)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SRS{Points: points, Layout: Plain}, nil
}

// PairWithEndomorphism returns a copy of s in the EndomorphismPaired layout.
// An already paired SRS is returned unchanged.
func PairWithEndomorphism(g group.Group, s *SRS) (*SRS, error) {
	if s.Layout == EndomorphismPaired {
		return s, nil
	}
	endo, ok := g.(group.Endomorphism)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoEndomorphism, g.Name())
	}

	paired := make([]group.Point, 2*len(s.Points))
	parallel.Execute(len(s.Points), func(start, end, _ int) {
		for i := start; i < end; i++ {
			paired[2*i] = s.Points[i]
			paired[2*i+1] = endo.Endomorphism(s.Points[i])
		}
	})
	return &SRS{Points: paired, Layout: EndomorphismPaired}, nil
}
