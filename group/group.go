package group

import (
	"io"
)

// Scalar represents an element of the scalar field associated with a
// cryptographic group. Scalars are the coefficients of committed
// polynomials, the opening points, and the Fiat-Shamir challenges.
//
// All arithmetic methods use a mutable receiver pattern: they modify
// the receiver, store the result in it, and return it. Aliasing is
// allowed, so s.Add(s, t) is valid.
//
// Implementations must ensure all operations produce results in the
// valid range [0, order).
type Scalar interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a and returns it.
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^{-1} and returns it.
	// Returns an error if a is zero.
	Invert(a Scalar) (Scalar, error)
	// Set sets the receiver to a and returns it.
	Set(a Scalar) Scalar
	// SetUint64 sets the receiver to v (mod order) and returns it.
	SetUint64(v uint64) Scalar
	// Bytes returns the canonical big-endian byte representation of the scalar.
	Bytes() []byte
	// SetBytes sets the receiver from a big-endian byte slice of any
	// length, reducing modulo the group order, and returns it.
	SetBytes(data []byte) (Scalar, error)
	// Equal reports whether the receiver equals b.
	Equal(b Scalar) bool
	// IsZero reports whether the receiver is zero.
	IsZero() bool
}

// Point represents an element of a cryptographic group, typically a point
// on an elliptic curve. Commitments, SRS entries and the IPA round
// messages L and R are all points.
//
// Like [Scalar], all arithmetic methods use a mutable receiver pattern
// and tolerate aliasing.
//
// The identity element (zero point, point at infinity) is the additive
// identity: P + Identity = P for all points P.
type Point interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Negate sets the receiver to -a and returns it.
	Negate(a Point) Point
	// ScalarMult sets the receiver to s*p and returns it.
	ScalarMult(s Scalar, p Point) Point
	// Set sets the receiver to a and returns it.
	Set(a Point) Point
	// Bytes returns the canonical compressed encoding of the point.
	Bytes() []byte
	// SetBytes sets the receiver from a compressed encoding and returns it.
	// Returns an error if the data is not a valid group element.
	SetBytes(data []byte) (Point, error)
	// Equal reports whether the receiver equals b.
	Equal(b Point) bool
	// IsIdentity reports whether the receiver is the identity element.
	IsIdentity() bool
}

// Group provides factory methods for scalars and points, the canonical
// generator, and hashing helpers.
//
// A Group implementation encapsulates all curve-specific details, so the
// commitment scheme can be generic over different elliptic curves.
//
// Example usage:
//
//	g := &bn254.G1{}  // or any other Group implementation
//	scalar, _ := g.RandomScalar(rand.Reader)
//	point := g.NewPoint().ScalarMult(scalar, g.Generator())
type Group interface {
	// Name returns a short identifier for the curve, e.g. "bn254".
	Name() string
	// NewScalar returns a new zero scalar.
	NewScalar() Scalar
	// NewPoint returns a new identity point.
	NewPoint() Point
	// Generator returns the group's base point.
	Generator() Point
	// RandomScalar returns a uniformly random scalar read from r.
	RandomScalar(r io.Reader) (Scalar, error)
	// HashToScalar hashes the input data to a scalar.
	HashToScalar(data ...[]byte) (Scalar, error)
	// Order returns the group order as a big-endian byte slice.
	Order() []byte
}

// MultiScalarMultiplier is implemented by groups that ship a native
// multi-scalar multiplication (for instance Pippenger's bucket method).
// The msm package uses it when available and otherwise falls back to a
// parallel sum of scalar multiplications.
type MultiScalarMultiplier interface {
	// MultiScalarMult returns sum(scalars[i] * points[i]).
	// The slices must have equal length.
	MultiScalarMult(scalars []Scalar, points []Point) (Point, error)
}

// BatchScalarMultiplier is implemented by groups that can multiply many
// points by the same scalar faster than one at a time, typically by
// using an endomorphism split and a single batched normalisation.
type BatchScalarMultiplier interface {
	// BatchScalarMult returns s*points[i] for every i. The input points
	// are not modified.
	BatchScalarMult(s Scalar, points []Point) []Point
}

// PointHasher is implemented by groups with a hash-to-curve map whose
// output has no known discrete logarithm relative to the generator.
type PointHasher interface {
	// HashToPoint maps msg to a group element under domain separation tag dst.
	HashToPoint(msg, dst []byte) (Point, error)
}

// Endomorphism is implemented by groups with an efficiently computable
// endomorphism (the GLV map on curves with j-invariant 0). Structured
// reference strings may store φ(P) next to each P to speed up scalar
// multiplication.
type Endomorphism interface {
	// Endomorphism returns φ(p).
	Endomorphism(p Point) Point
}
