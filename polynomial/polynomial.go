// Package polynomial implements univariate polynomials in monomial form
// over the scalar field of a [group.Group].
package polynomial

import (
	"io"

	"github.com/f3rmion/ipa/group"
)

// Polynomial holds coefficients a_0, a_1, ..., a_{n-1} of
// p(X) = sum a_i X^i. Its length n is the degree plus one.
type Polynomial []group.Scalar

// FromUint64 builds a polynomial with small integer coefficients.
func FromUint64(g group.Group, coeffs ...uint64) Polynomial {
	p := make(Polynomial, len(coeffs))
	for i, c := range coeffs {
		p[i] = g.NewScalar().SetUint64(c)
	}
	return p
}

// Random returns a polynomial of length n with uniformly random
// coefficients read from r.
func Random(g group.Group, n int, r io.Reader) (Polynomial, error) {
	p := make(Polynomial, n)
	for i := range p {
		c, err := g.RandomScalar(r)
		if err != nil {
			return nil, err
		}
		p[i] = c
	}
	return p, nil
}

// Len returns the number of coefficients.
func (p Polynomial) Len() int {
	return len(p)
}

// At returns coefficient i.
func (p Polynomial) At(i int) group.Scalar {
	return p[i]
}

// Clone returns a deep copy of p, so the copy can be folded in place.
func (p Polynomial) Clone(g group.Group) Polynomial {
	c := make(Polynomial, len(p))
	for i, a := range p {
		c[i] = g.NewScalar().Set(a)
	}
	return c
}

// Halves splits p at its midpoint into the low and high coefficient
// halves. The halves share storage with p.
func (p Polynomial) Halves() (lo, hi Polynomial) {
	mid := len(p) / 2
	return p[:mid], p[mid:]
}

// Evaluate returns p(x) using Horner's rule.
func (p Polynomial) Evaluate(g group.Group, x group.Scalar) group.Scalar {
	res := g.NewScalar()
	for i := len(p) - 1; i >= 0; i-- {
		res.Mul(res, x)
		res.Add(res, p[i])
	}
	return res
}
