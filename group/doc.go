// Package group is the curve abstraction the commitment code is written
// against.
//
// Three interfaces carry the arithmetic. [Scalar] is an element of the
// scalar field: polynomial coefficients, opening points and challenges.
// [Point] is a group element: SRS entries, commitments and round
// messages. [Group] creates both and exposes the generator.
//
// # Capabilities
//
// A Group may also implement any of the following; consumers detect them
// with a type assertion and fall back to generic code otherwise.
//
//   - [MultiScalarMultiplier] is picked up by the msm runtime.
//   - [BatchScalarMultiplier] speeds up the prover's base point fold.
//   - [PointHasher] allows an SRS without known discrete logs.
//   - [Endomorphism] enables the paired SRS layout.
//
// # Receivers
//
// Arithmetic methods write into their receiver and return it, and
// arguments may alias the receiver:
//
//	acc := g.NewScalar()
//	acc.Add(acc, g.NewScalar().Mul(a, b)) // acc += a*b
//
// Methods that can fail return an error instead of panicking.
//
// # Adding a curve
//
// Wrap the curve's field element in a [Scalar], its point type in a
// [Point], and provide a factory implementing [Group]. SetBytes must
// reject points outside the prime-order subgroup and scalars must always
// be reduced. bn254 shows a full implementation with every capability;
// bjj shows the minimal one.
package group
