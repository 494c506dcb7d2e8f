// Package transcript implements the Fiat-Shamir transcript shared by the
// IPA prover and verifier.
//
// Every value is recorded as a labeled, typed [Entry]. A challenge is the
// hash of the running state, the entries recorded since the previous
// challenge and the challenge label:
//
//	state' = H(state || entries || len(label) || label)
//
// where each entry contributes len(label) || label || kind || len(data) ||
// data, and lengths are 4-byte big-endian. The digest is reduced modulo
// the group order; a zero result is replaced by one. The initial state is
// H(domain).
//
// The prover side uses the SendToVerifier methods and [Transcript.Proof].
// The verifier side is built with [NewVerifier] and consumes the proof
// through the ReceiveFromProver methods. Any difference in label, kind or
// order is reported as a [*DesyncError], which matches [ErrDesync].
package transcript
