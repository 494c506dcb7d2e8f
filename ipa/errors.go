package ipa

import "errors"

var (
	// ErrZeroChallenge is returned when asked to open at zero.
	ErrZeroChallenge = errors.New("ipa: opening challenge is zero")
	// ErrDegreeNotPowerOfTwo is returned for polynomials whose length is
	// not a positive power of two.
	ErrDegreeNotPowerOfTwo = errors.New("ipa: polynomial length is not a power of two")
	// ErrEvaluationMismatch is returned by a prover with the evaluation
	// check enabled when the claimed evaluation is wrong.
	ErrEvaluationMismatch = errors.New("ipa: claimed evaluation does not match polynomial")
	// ErrMalformedProof is returned by Verify when a proof is structurally
	// invalid, for instance when it announces a degree the key cannot
	// handle.
	ErrMalformedProof = errors.New("ipa: malformed proof")
	// ErrIncompleteClaim is returned by Verify when the opening claim has
	// nil fields.
	ErrIncompleteClaim = errors.New("ipa: incomplete opening claim")
)
