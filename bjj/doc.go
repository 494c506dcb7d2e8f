// Package bjj implements [group.Group] on Baby Jubjub, the twisted
// Edwards curve a*x^2 + y^2 = 1 + d*x^2*y^2 with a = 168700 and
// d = 168696, whose base field is the BN254 scalar field.
//
// Points and arithmetic come from gnark-crypto's twistededwards package.
// Scalars are big.Int values reduced modulo the subgroup order
//
//	2736030358979909402780800718157159386076813972158567259200215660948447373041
//
// # Generic code paths
//
// BJJ has no native MSM, no batch multiplication, no hash-to-curve and no
// endomorphism. Every consumer therefore takes its fallback route with
// it, which is why the test suites run on both curves:
//
//	g := &bjj.BJJ{}
//	p := ipa.New(g)
//
// # Subgroup checks
//
// The cofactor is 8. SetBytes rejects encodings that are off the curve
// or outside the prime-order subgroup. An SRS generated for BJJ has
// known discrete logarithms and is for testing only.
package bjj
