package commitment

import "github.com/f3rmion/ipa/group"

// OpeningPair is the point a polynomial is opened at and the value it is
// claimed to take there.
type OpeningPair struct {
	Challenge  group.Scalar
	Evaluation group.Scalar
}

// OpeningClaim is what a verifier is asked to accept: a commitment opens
// to Pair.Evaluation at Pair.Challenge.
type OpeningClaim struct {
	Commitment group.Point
	Pair       OpeningPair
}
