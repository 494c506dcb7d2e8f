// Package bn254 provides the BN254 (alt_bn128) G1 implementation of the
// [group.Group] interface.
//
// The scalar field is BN254's Fr and points are G1 elements in affine
// form. All arithmetic is delegated to gnark-crypto.
//
// Besides the core interfaces, [G1] advertises every optional capability
// defined in the group package:
//
//   - [group.MultiScalarMultiplier] via gnark-crypto's MultiExp (Pippenger)
//   - [group.BatchScalarMultiplier] via GLV scalar multiplication in
//     Jacobian coordinates followed by one batched normalisation
//   - [group.PointHasher] via the RFC 9380 hash-to-curve map, so
//     reference strings can be derived with no trapdoor
//   - [group.Endomorphism] via the cube-root-of-unity map (x, y) -> (ωx, y)
//
// # Usage
//
//	g := &bn254.G1{}
//	s, _ := g.RandomScalar(rand.Reader)
//	P := g.NewPoint().ScalarMult(s, g.Generator())
package bn254
