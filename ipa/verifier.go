package ipa

import (
	"fmt"

	"github.com/f3rmion/ipa/commitment"
	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/transcript"
)

// Verify replays tr and reports whether it proves claim.
//
// A proof that replays cleanly but fails the final check returns
// (false, nil). A proof whose labels, kinds or payloads do not match the
// protocol returns (false, err) with errors.Is(err, transcript.ErrDesync).
// A proof announcing a degree the key cannot handle returns (false, err)
// with errors.Is(err, ErrMalformedProof).
func (p *IPA) Verify(vk *commitment.VerifierKey, claim commitment.OpeningClaim, tr *transcript.Transcript) (bool, error) {
	g := p.group
	if claim.Commitment == nil || claim.Pair.Challenge == nil || claim.Pair.Evaluation == nil {
		return false, ErrIncompleteClaim
	}

	n, err := tr.ReceiveFromProverUint32(labelDegree)
	if err != nil {
		return false, err
	}
	d := int(n)
	if !isPowerOfTwo(d) || d > vk.Size() {
		return false, fmt.Errorf("%w: degree %d with key size %d", ErrMalformedProof, d, vk.Size())
	}
	k := Rounds(d)

	u := g.NewPoint().ScalarMult(tr.GetChallenge(labelGenerator), g.Generator())

	scalars := make([]group.Scalar, 0, 2*k)
	points := make([]group.Point, 0, 2*k)
	inv := make([]group.Scalar, k)
	for i := 0; i < k; i++ {
		l, err := tr.ReceiveFromProverPoint(labelL(i))
		if err != nil {
			return false, err
		}
		r, err := tr.ReceiveFromProverPoint(labelR(i))
		if err != nil {
			return false, err
		}
		x := tr.GetChallenge(labelChallenge(i))
		if inv[i], err = g.NewScalar().Invert(x); err != nil {
			return false, fmt.Errorf("ipa: round %d: %w", i, err)
		}
		scalars = append(scalars, inv[i], x)
		points = append(points, l, r)
	}

	a0, err := tr.ReceiveFromProverScalar(labelA0)
	if err != nil {
		return false, err
	}
	if err := tr.Finish(); err != nil {
		return false, err
	}

	// C_0 = C + v*U + sum(x_i^-1 * L_i + x_i * R_i)
	c0, err := vk.MSM().Run(scalars, points)
	if err != nil {
		return false, err
	}
	c0.Add(c0, claim.Commitment)
	c0.Add(c0, g.NewPoint().ScalarMult(claim.Pair.Evaluation, u))

	bZero := p.foldedEvaluationVector(claim.Pair.Challenge, inv)
	gVec, err := vk.BasePoints(d)
	if err != nil {
		return false, err
	}
	gZero, err := vk.MSM().Run(p.foldingWeights(inv), gVec)
	if err != nil {
		return false, err
	}

	// a_0 * G_0 + a_0 * b_0 * U
	rhs := g.NewPoint().ScalarMult(a0, gZero)
	rhs.Add(rhs, g.NewPoint().ScalarMult(g.NewScalar().Mul(a0, bZero), u))

	if !c0.Equal(rhs) {
		l := p.logger()
		l.Debug().
			Str("curve", g.Name()).
			Int("degree", d).
			Msg("opening proof rejected: folded commitment mismatch")
		return false, nil
	}
	return true, nil
}
