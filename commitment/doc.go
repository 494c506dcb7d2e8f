// Package commitment holds the keys a polynomial commitment is computed
// and checked against, together with the opening pair and claim types.
//
// A [CommitmentKey] or [VerifierKey] wraps an [srs.SRS] and an
// [msm.Runtime] sized to the number of SRS base points. Both are built
// once and then shared read-only by every proof or verification.
//
// When the SRS uses the endomorphism-paired layout, only even entries are
// base points. [CommitmentKey.BasePoints] and [VerifierKey.BasePoints]
// skip the odd entries, so callers never see them.
package commitment
