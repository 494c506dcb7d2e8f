package ipa

import (
	"github.com/f3rmion/ipa/group"
)

// pow returns x^e by square-and-multiply.
func pow(g group.Group, x group.Scalar, e uint64) group.Scalar {
	res := g.NewScalar().SetUint64(1)
	base := g.NewScalar().Set(x)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			res.Mul(res, base)
		}
		base.Mul(base, base)
	}
	return res
}

// powers returns (1, x, x^2, ..., x^{n-1}). Each chunk seeds itself with
// x^start and then multiplies forward.
func (p *IPA) powers(x group.Scalar, n int) []group.Scalar {
	out := make([]group.Scalar, n)
	p.pool.Execute(n, func(start, end, _ int) {
		cur := pow(p.group, x, uint64(start))
		for i := start; i < end; i++ {
			out[i] = p.group.NewScalar().Set(cur)
			cur.Mul(cur, x)
		}
	})
	return out
}

// innerProduct returns <a, b>. Each chunk sums into its own slot and the
// slots are added at the end.
func (p *IPA) innerProduct(a, b []group.Scalar) group.Scalar {
	n := len(a)
	partial := make([]group.Scalar, p.pool.Chunks(n))
	p.pool.Execute(n, func(start, end, chunk int) {
		acc := p.group.NewScalar()
		term := p.group.NewScalar()
		for i := start; i < end; i++ {
			acc.Add(acc, term.Mul(a[i], b[i]))
		}
		partial[chunk] = acc
	})

	sum := p.group.NewScalar()
	for _, s := range partial {
		sum.Add(sum, s)
	}
	return sum
}

// foldScalars sets lo[j] = lo[j] + x*hi[j].
func (p *IPA) foldScalars(lo, hi []group.Scalar, x group.Scalar) {
	p.pool.Execute(len(lo), func(start, end, _ int) {
		term := p.group.NewScalar()
		for j := start; j < end; j++ {
			lo[j].Add(lo[j], term.Mul(x, hi[j]))
		}
	})
}

// foldPoints sets lo[j] = lo[j] + x*hi[j]. Groups with a batch scalar
// multiplication compute all x*hi[j] in one call first.
func (p *IPA) foldPoints(lo, hi []group.Point, x group.Scalar) {
	if bsm, ok := p.group.(group.BatchScalarMultiplier); ok {
		scaled := bsm.BatchScalarMult(x, hi)
		p.pool.Execute(len(lo), func(start, end, _ int) {
			for j := start; j < end; j++ {
				lo[j].Add(lo[j], scaled[j])
			}
		})
		return
	}
	p.pool.Execute(len(lo), func(start, end, _ int) {
		term := p.group.NewPoint()
		for j := start; j < end; j++ {
			lo[j].Add(lo[j], term.ScalarMult(x, hi[j]))
		}
	})
}

// foldingWeights returns s with s[j] the product of inv[k-1-b] over the
// set bits b of j, for j in [0, 2^k). It doubles the filled prefix once
// per bit, so it costs one multiplication per entry.
func (p *IPA) foldingWeights(inv []group.Scalar) []group.Scalar {
	k := len(inv)
	s := make([]group.Scalar, 1<<k)
	s[0] = p.group.NewScalar().SetUint64(1)
	for b := 0; b < k; b++ {
		width := 1 << b
		x := inv[k-1-b]
		p.pool.Execute(width, func(start, end, _ int) {
			for j := start; j < end; j++ {
				s[j+width] = p.group.NewScalar().Mul(s[j], x)
			}
		})
	}
	return s
}

// foldingWeightsByBits computes the same vector as foldingWeights one
// entry at a time from the bit decomposition of the index.
func (p *IPA) foldingWeightsByBits(inv []group.Scalar) []group.Scalar {
	k := len(inv)
	s := make([]group.Scalar, 1<<k)
	for j := range s {
		acc := p.group.NewScalar().SetUint64(1)
		for b := 0; b < k; b++ {
			if j>>b&1 == 1 {
				acc.Mul(acc, inv[k-1-b])
			}
		}
		s[j] = acc
	}
	return s
}

// foldedEvaluationVector returns the single entry b_vec folds down to:
// prod_i (1 + inv[k-1-i] * x^{2^i}).
func (p *IPA) foldedEvaluationVector(x group.Scalar, inv []group.Scalar) group.Scalar {
	k := len(inv)
	res := p.group.NewScalar().SetUint64(1)
	one := p.group.NewScalar().SetUint64(1)
	xPow := p.group.NewScalar().Set(x)
	term := p.group.NewScalar()
	for i := 0; i < k; i++ {
		term.Mul(inv[k-1-i], xPow)
		term.Add(term, one)
		res.Mul(res, term)
		xPow.Mul(xPow, xPow)
	}
	return res
}
