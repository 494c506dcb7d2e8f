// Package ipa implements the inner product argument polynomial
// commitment opening.
//
// A prover holding a polynomial a of length d = 2^k, committed as
// C = <a, G>, convinces a verifier that a(β) = v. Both sides work
// through a [transcript.Transcript]; the proof is the list of values
// the prover sends:
//
//	IPA:poly_degree_plus_1   d
//	IPA:generator_challenge  (derived) u, with U = u*G
//	IPA:L_i, IPA:R_i         round commitments, i = 0..k-1
//	IPA:round_challenge_i    (derived) x_i
//	IPA:a_0                  the fully folded coefficient
//
// Each round halves a with x_i and halves the evaluation vector
// b = (1, β, β^2, ...) and the base points G with x_i^-1. The verifier
// never folds anything: it recomputes the folded b and G from the round
// challenges alone and checks a single group equation.
//
// Inside a round, vector arithmetic is spread across a worker pool.
// Rounds themselves are sequential because every challenge depends on
// the previous round's commitments.
package ipa
