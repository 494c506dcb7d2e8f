package transcript

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Proof is the ordered list of entries a prover sent. Challenges are not
// part of a proof; the verifier derives them again.
type Proof struct {
	Entries []Entry `cbor:"1,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Encode serializes p with deterministic CBOR. Equal proofs encode to
// equal bytes.
func (p *Proof) Encode() ([]byte, error) {
	return encMode.Marshal(p)
}

// DecodeProof parses a proof produced by Encode.
func DecodeProof(data []byte) (*Proof, error) {
	var p Proof
	if err := decMode.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("transcript: decode proof: %w", err)
	}
	return &p, nil
}

// Len returns the number of entries.
func (p *Proof) Len() int {
	return len(p.Entries)
}

// Index returns the position of the first entry labeled label, or -1.
func (p *Proof) Index(label string) int {
	for i, e := range p.Entries {
		if e.Label == label {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of p.
func (p *Proof) Clone() *Proof {
	c := &Proof{Entries: make([]Entry, len(p.Entries))}
	for i, e := range p.Entries {
		c.Entries[i] = Entry{Label: e.Label, Kind: e.Kind, Data: bytes.Clone(e.Data)}
	}
	return c
}
