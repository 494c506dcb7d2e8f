package ipa

import (
	"fmt"
	"time"

	"github.com/f3rmion/ipa/commitment"
	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/polynomial"
	"github.com/f3rmion/ipa/transcript"
)

// ComputeOpeningProof writes to tr a proof that poly evaluates to
// pair.Evaluation at pair.Challenge.
//
// The opening challenge must be nonzero and len(poly) a power of two no
// larger than the key. These conditions are checked before anything is
// written to tr. poly is not modified.
func (p *IPA) ComputeOpeningProof(ck *commitment.CommitmentKey, pair commitment.OpeningPair, poly polynomial.Polynomial, tr *transcript.Transcript) error {
	g := p.group
	d := poly.Len()

	if pair.Challenge.IsZero() {
		return ErrZeroChallenge
	}
	if !isPowerOfTwo(d) {
		return fmt.Errorf("%w: got %d", ErrDegreeNotPowerOfTwo, d)
	}
	gVec, err := ck.BasePoints(d)
	if err != nil {
		return err
	}
	if p.checkEvaluation && !poly.Evaluate(g, pair.Challenge).Equal(pair.Evaluation) {
		return ErrEvaluationMismatch
	}

	start := time.Now()
	k := Rounds(d)

	if err := tr.SendToVerifierUint32(labelDegree, uint32(d)); err != nil {
		return err
	}
	u := g.NewPoint().ScalarMult(tr.GetChallenge(labelGenerator), g.Generator())

	a := poly.Clone(g)
	b := p.powers(pair.Challenge, d)

	for i := 0; i < k; i++ {
		half := d >> (i + 1)
		aLo, aHi := a[:half], a[half:2*half]
		bLo, bHi := b[:half], b[half:2*half]
		gLo, gHi := gVec[:half], gVec[half:2*half]

		l, err := p.roundCommitment(ck, aLo, gHi, p.innerProduct(aLo, bHi), u)
		if err != nil {
			return fmt.Errorf("ipa: round %d: L: %w", i, err)
		}
		r, err := p.roundCommitment(ck, aHi, gLo, p.innerProduct(aHi, bLo), u)
		if err != nil {
			return fmt.Errorf("ipa: round %d: R: %w", i, err)
		}

		if err := tr.SendToVerifierPoint(labelL(i), l); err != nil {
			return err
		}
		if err := tr.SendToVerifierPoint(labelR(i), r); err != nil {
			return err
		}
		x := tr.GetChallenge(labelChallenge(i))
		xInv, err := g.NewScalar().Invert(x)
		if err != nil {
			return fmt.Errorf("ipa: round %d: %w", i, err)
		}

		p.foldScalars(aLo, aHi, x)
		p.foldScalars(bLo, bHi, xInv)
		p.foldPoints(gLo, gHi, xInv)
	}

	if err := tr.SendToVerifierScalar(labelA0, a[0]); err != nil {
		return err
	}

	l := p.logger()
	l.Debug().
		Str("curve", g.Name()).
		Int("degree", d).
		Int("rounds", k).
		Dur("took", time.Since(start)).
		Msg("computed opening proof")
	return nil
}

// roundCommitment returns <scalars, points> + ip*u.
func (p *IPA) roundCommitment(ck *commitment.CommitmentKey, scalars []group.Scalar, points []group.Point, ip group.Scalar, u group.Point) (group.Point, error) {
	c, err := ck.MSM().Run(scalars, points)
	if err != nil {
		return nil, err
	}
	return c.Add(c, p.group.NewPoint().ScalarMult(ip, u)), nil
}
