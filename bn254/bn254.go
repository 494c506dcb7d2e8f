package bn254

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/internal/parallel"
)

// g1Gen is the canonical affine generator of G1.
var g1Gen curve.G1Affine

func init() {
	_, _, g1Gen, _ = curve.Generators()
}

// Scalar is an element of the BN254 scalar field Fr.
// It implements [group.Scalar] on top of gnark-crypto's fr.Element, which
// keeps values in Montgomery form with constant-size limbs.
type Scalar struct {
	inner fr.Element
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Sub(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Neg(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
// Returns an error if a is zero.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	x := a.(*Scalar)
	if x.inner.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.Inverse(&x.inner)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// SetUint64 sets s to v and returns s.
func (s *Scalar) SetUint64(v uint64) group.Scalar {
	s.inner.SetUint64(v)
	return s
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// SetBytes interprets data as a big-endian integer, reduces it modulo r
// and stores it in s.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	var v big.Int
	v.SetBytes(data)
	s.inner.SetBigInt(&v)
	return s, nil
}

// Equal reports whether s and b hold the same field element.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equal(&b.(*Scalar).inner)
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

func (s *Scalar) bigInt() *big.Int {
	var v big.Int
	s.inner.BigInt(&v)
	return &v
}

// Point is an element of the BN254 G1 group in affine form. The identity
// is encoded by gnark-crypto as (0, 0).
type Point struct {
	inner curve.G1Affine
}

// Add sets p to a + b and returns p.
// The sum is accumulated in Jacobian form, which handles the identity and
// doubling cases.
func (p *Point) Add(a, b group.Point) group.Point {
	var acc curve.G1Jac
	acc.FromAffine(&a.(*Point).inner)
	acc.AddMixed(&b.(*Point).inner)
	p.inner.FromJacobian(&acc)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var neg curve.G1Affine
	neg.Neg(&b.(*Point).inner)
	var acc curve.G1Jac
	acc.FromAffine(&a.(*Point).inner)
	acc.AddMixed(&neg)
	p.inner.FromJacobian(&acc)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p. gnark-crypto applies the GLV
// decomposition internally.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMultiplication(&q.(*Point).inner, s.(*Scalar).bigInt())
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes returns the 32-byte compressed encoding of p.
func (p *Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

// SetBytes decodes a compressed point into p. The point must be on the
// curve and the whole slice must be consumed.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	var q curve.G1Affine
	n, err := q.SetBytes(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("bn254: %d trailing bytes after point encoding", len(data)-n)
	}
	p.inner = q
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	return p.inner.Equal(&b.(*Point).inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.inner.IsInfinity()
}

// Affine returns the underlying gnark-crypto point.
func (p *Point) Affine() curve.G1Affine {
	return p.inner
}

// G1 implements [group.Group] for the BN254 G1 subgroup, together with
// [group.MultiScalarMultiplier], [group.BatchScalarMultiplier],
// [group.PointHasher] and [group.Endomorphism].
//
// G1 is a zero-sized type. Create an instance with &G1{} or new(G1).
type G1 struct{}

// Name returns "bn254".
func (g *G1) Name() string {
	return "bn254"
}

// NewScalar returns a new zero scalar.
func (g *G1) NewScalar() group.Scalar {
	return new(Scalar)
}

// NewPoint returns the identity point.
func (g *G1) NewPoint() group.Point {
	return new(Point)
}

// Generator returns the canonical G1 generator (1, 2).
func (g *G1) Generator() group.Point {
	return &Point{inner: g1Gen}
}

// RandomScalar reads 48 bytes from r and reduces them modulo r, which keeps
// the bias below 2^-128.
func (g *G1) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [48]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	return new(Scalar).SetBytes(buf[:])
}

// HashToScalar hashes the concatenation of data with SHA-256 and reduces
// the digest modulo r.
func (g *G1) HashToScalar(data ...[]byte) (group.Scalar, error) {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	return new(Scalar).SetBytes(h.Sum(nil))
}

// Order returns the order of G1 (the Fr modulus) as big-endian bytes.
func (g *G1) Order() []byte {
	return fr.Modulus().Bytes()
}

// MultiScalarMult computes sum(scalars[i] * points[i]) with gnark-crypto's
// bucket-method MultiExp.
func (g *G1) MultiScalarMult(scalars []group.Scalar, points []group.Point) (group.Point, error) {
	if len(scalars) != len(points) {
		return nil, fmt.Errorf("bn254: %d scalars for %d points", len(scalars), len(points))
	}
	res := new(Point)
	if len(points) == 0 {
		return res, nil
	}

	frs := make([]fr.Element, len(scalars))
	affs := make([]curve.G1Affine, len(points))
	for i := range scalars {
		frs[i] = scalars[i].(*Scalar).inner
		affs[i] = points[i].(*Point).inner
	}
	if _, err := res.inner.MultiExp(affs, frs, ecc.MultiExpConfig{}); err != nil {
		return nil, fmt.Errorf("bn254: multiexp: %w", err)
	}
	return res, nil
}

// BatchScalarMult multiplies every point by s. The products are kept in
// Jacobian form and normalised together with a single batched inversion.
func (g *G1) BatchScalarMult(s group.Scalar, points []group.Point) []group.Point {
	k := s.(*Scalar).bigInt()
	jacs := make([]curve.G1Jac, len(points))
	parallel.Execute(len(points), func(start, end, _ int) {
		var sk big.Int
		sk.Set(k)
		for i := start; i < end; i++ {
			jacs[i].FromAffine(&points[i].(*Point).inner)
			jacs[i].ScalarMultiplication(&jacs[i], &sk)
		}
	})

	affs := curve.BatchJacobianToAffineG1(jacs)
	out := make([]group.Point, len(affs))
	for i := range affs {
		out[i] = &Point{inner: affs[i]}
	}
	return out
}

// HashToPoint maps msg to G1 with the RFC 9380 simplified SWU map.
func (g *G1) HashToPoint(msg, dst []byte) (group.Point, error) {
	q, err := curve.HashToG1(msg, dst)
	if err != nil {
		return nil, err
	}
	return &Point{inner: q}, nil
}

// Endomorphism returns φ(p) = (ωx, y), where ω is a primitive cube root of
// unity in Fp.
func (g *G1) Endomorphism(p group.Point) group.Point {
	q := &Point{inner: p.(*Point).inner}
	if !q.inner.IsInfinity() {
		q.inner.X.Mul(&q.inner.X, &omega)
	}
	return q
}
