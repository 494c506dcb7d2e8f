package main

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/f3rmion/ipa/commitment"
	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/transcript"
)

// bundle is what prove writes and verify reads: an opening claim, the
// proof for it and the parameters needed to replay the transcript.
type bundle struct {
	Curve      string            `cbor:"1,keyasint"`
	Hash       string            `cbor:"2,keyasint"`
	Commitment []byte            `cbor:"3,keyasint"`
	Challenge  []byte            `cbor:"4,keyasint"`
	Evaluation []byte            `cbor:"5,keyasint"`
	Proof      *transcript.Proof `cbor:"6,keyasint"`
}

func newBundle(g group.Group, h transcript.Hasher, claim commitment.OpeningClaim, proof *transcript.Proof) *bundle {
	return &bundle{
		Curve:      g.Name(),
		Hash:       h.Name(),
		Commitment: claim.Commitment.Bytes(),
		Challenge:  claim.Pair.Challenge.Bytes(),
		Evaluation: claim.Pair.Evaluation.Bytes(),
		Proof:      proof,
	}
}

func (b *bundle) claim(g group.Group) (commitment.OpeningClaim, error) {
	var claim commitment.OpeningClaim
	var err error
	if claim.Commitment, err = g.NewPoint().SetBytes(b.Commitment); err != nil {
		return claim, fmt.Errorf("bundle commitment: %w", err)
	}
	if claim.Pair.Challenge, err = g.NewScalar().SetBytes(b.Challenge); err != nil {
		return claim, fmt.Errorf("bundle challenge: %w", err)
	}
	if claim.Pair.Evaluation, err = g.NewScalar().SetBytes(b.Evaluation); err != nil {
		return claim, fmt.Errorf("bundle evaluation: %w", err)
	}
	return claim, nil
}

func (b *bundle) writeFile(path string) error {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return err
	}
	data, err := em.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func readBundle(path string) (*bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	var b bundle
	if err := cbor.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	if b.Proof == nil {
		return nil, fmt.Errorf("bundle %s has no proof", path)
	}
	return &b, nil
}
