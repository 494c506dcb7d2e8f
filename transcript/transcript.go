package transcript

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/f3rmion/ipa/group"
)

// Kind tags the type of a transcript entry.
type Kind uint8

const (
	// KindUint32 is a small integer, encoded as a 32-byte big-endian
	// field element.
	KindUint32 Kind = iota + 1
	// KindScalar is a group.Scalar in its canonical encoding.
	KindScalar
	// KindPoint is a group.Point in its compressed encoding.
	KindPoint
	// KindChallenge marks a derived challenge. It only appears in
	// manifests, never in proofs.
	KindChallenge
)

func (k Kind) String() string {
	switch k {
	case KindUint32:
		return "uint32"
	case KindScalar:
		return "scalar"
	case KindPoint:
		return "point"
	case KindChallenge:
		return "challenge"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Entry is one labeled value of a transcript.
type Entry struct {
	Label string `cbor:"1,keyasint"`
	Kind  Kind   `cbor:"2,keyasint"`
	Data  []byte `cbor:"3,keyasint"`
}

// uint32Size is the width a uint32 is padded to.
const uint32Size = 32

type side uint8

const (
	proverSide side = iota
	verifierSide
)

// Transcript is a Fiat-Shamir transcript. A prover transcript records
// values sent to the verifier and derives challenges from them. A
// verifier transcript replays a [Proof] entry by entry and derives the
// same challenges, provided it asks for the same labels in the same
// order.
//
// A Transcript belongs to one proof or verification and is not safe for
// concurrent use.
type Transcript struct {
	group  group.Group
	hasher Hasher
	domain string
	side   side

	state    []byte
	pending  []byte
	manifest []Entry

	// entries holds what the prover sent, or the proof being replayed.
	entries []Entry
	next    int
}

// Option configures a Transcript.
type Option func(*Transcript)

// WithHasher sets the hash function. The default is SHA256Hasher.
func WithHasher(h Hasher) Option {
	return func(t *Transcript) {
		t.hasher = h
	}
}

// WithDomain sets the domain separation label the state is seeded
// with. The default is "IPA".
func WithDomain(domain string) Option {
	return func(t *Transcript) {
		t.domain = domain
	}
}

func newTranscript(g group.Group, s side, opts []Option) *Transcript {
	t := &Transcript{
		group:  g,
		hasher: SHA256Hasher{},
		domain: "IPA",
		side:   s,
	}
	for _, opt := range opts {
		opt(t)
	}
	h := t.hasher.New()
	h.Write([]byte(t.domain))
	t.state = h.Sum(nil)
	return t
}

// New returns an empty prover transcript.
func New(g group.Group, opts ...Option) *Transcript {
	return newTranscript(g, proverSide, opts)
}

// NewVerifier returns a transcript that replays proof.
func NewVerifier(g group.Group, proof *Proof, opts ...Option) *Transcript {
	t := newTranscript(g, verifierSide, opts)
	if proof != nil {
		t.entries = proof.Clone().Entries
	}
	return t
}

// ToVerifier returns a verifier transcript over the proof recorded so
// far, using the same hasher and domain.
func (t *Transcript) ToVerifier() *Transcript {
	return NewVerifier(t.group, t.Proof(), WithHasher(t.hasher), WithDomain(t.domain))
}

// Hasher returns the transcript's hash function.
func (t *Transcript) Hasher() Hasher {
	return t.hasher
}

// SendToVerifierUint32 records v under label.
func (t *Transcript) SendToVerifierUint32(label string, v uint32) error {
	return t.send(label, KindUint32, encodeUint32(v))
}

// SendToVerifierScalar records s under label.
func (t *Transcript) SendToVerifierScalar(label string, s group.Scalar) error {
	return t.send(label, KindScalar, s.Bytes())
}

// SendToVerifierPoint records p under label.
func (t *Transcript) SendToVerifierPoint(label string, p group.Point) error {
	return t.send(label, KindPoint, p.Bytes())
}

func (t *Transcript) send(label string, kind Kind, data []byte) error {
	if t.side != proverSide {
		return fmt.Errorf("%w: send %q", ErrWrongSide, label)
	}
	e := Entry{Label: label, Kind: kind, Data: bytes.Clone(data)}
	t.entries = append(t.entries, e)
	t.absorb(e)
	return nil
}

// ReceiveFromProverUint32 consumes the next entry, which must be a uint32
// labeled label.
func (t *Transcript) ReceiveFromProverUint32(label string) (uint32, error) {
	var v uint32
	err := t.receive(label, KindUint32, func(data []byte) error {
		var err error
		v, err = decodeUint32(data)
		return err
	})
	return v, err
}

// ReceiveFromProverScalar consumes the next entry, which must be a scalar
// labeled label.
func (t *Transcript) ReceiveFromProverScalar(label string) (group.Scalar, error) {
	var s group.Scalar
	err := t.receive(label, KindScalar, func(data []byte) error {
		decoded, err := t.group.NewScalar().SetBytes(data)
		if err != nil {
			return err
		}
		if !bytes.Equal(decoded.Bytes(), data) {
			return errors.New("non-canonical scalar encoding")
		}
		s = decoded
		return nil
	})
	return s, err
}

// ReceiveFromProverPoint consumes the next entry, which must be a point
// labeled label.
func (t *Transcript) ReceiveFromProverPoint(label string) (group.Point, error) {
	var p group.Point
	err := t.receive(label, KindPoint, func(data []byte) error {
		decoded, err := t.group.NewPoint().SetBytes(data)
		if err != nil {
			return err
		}
		if !bytes.Equal(decoded.Bytes(), data) {
			return errors.New("non-canonical point encoding")
		}
		p = decoded
		return nil
	})
	return p, err
}

func (t *Transcript) receive(label string, kind Kind, decode func([]byte) error) error {
	if t.side != verifierSide {
		return fmt.Errorf("%w: receive %q", ErrWrongSide, label)
	}
	desync := &DesyncError{Index: t.next, WantLabel: label, WantKind: kind}
	if t.next >= len(t.entries) {
		desync.Reason = ReasonExhausted
		return desync
	}
	e := t.entries[t.next]
	desync.GotLabel, desync.GotKind = e.Label, e.Kind
	switch {
	case e.Label != label:
		desync.Reason = ReasonLabel
		return desync
	case e.Kind != kind:
		desync.Reason = ReasonKind
		return desync
	}
	if err := decode(e.Data); err != nil {
		desync.Reason = ReasonMalformed
		desync.Err = err
		return desync
	}
	t.next++
	t.absorb(e)
	return nil
}

// Finish checks that a verifier consumed the whole proof. It is a no-op
// on the prover side.
func (t *Transcript) Finish() error {
	if t.side != verifierSide || t.next == len(t.entries) {
		return nil
	}
	e := t.entries[t.next]
	return &DesyncError{
		Reason:   ReasonTrailing,
		Index:    t.next,
		GotLabel: e.Label,
		GotKind:  e.Kind,
	}
}

// GetChallenge derives a nonzero scalar from everything recorded so far
// and the label, then records the derivation.
func (t *Transcript) GetChallenge(label string) group.Scalar {
	h := t.hasher.New()
	h.Write(t.state)
	h.Write(t.pending)
	h.Write(encodeLength(len(label)))
	h.Write([]byte(label))
	t.state = h.Sum(nil)
	t.pending = t.pending[:0]

	c, err := t.group.NewScalar().SetBytes(t.state)
	if err != nil || c.IsZero() {
		c = t.group.NewScalar().SetUint64(1)
	}
	t.manifest = append(t.manifest, Entry{Label: label, Kind: KindChallenge, Data: c.Bytes()})
	return c
}

func (t *Transcript) absorb(e Entry) {
	t.pending = append(t.pending, encodeLength(len(e.Label))...)
	t.pending = append(t.pending, e.Label...)
	t.pending = append(t.pending, byte(e.Kind))
	t.pending = append(t.pending, encodeLength(len(e.Data))...)
	t.pending = append(t.pending, e.Data...)
	t.manifest = append(t.manifest, e)
}

// Proof returns the prover-sent entries. On a verifier transcript it
// returns the proof being replayed.
func (t *Transcript) Proof() *Proof {
	p := &Proof{Entries: t.entries}
	return p.Clone()
}

// Manifest returns every entry processed so far in order, including
// derived challenges.
func (t *Transcript) Manifest() []Entry {
	return (&Proof{Entries: t.manifest}).Clone().Entries
}

func encodeLength(n int) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(n))
	return buf[:]
}

func encodeUint32(v uint32) []byte {
	buf := make([]byte, uint32Size)
	binary.BigEndian.PutUint32(buf[uint32Size-4:], v)
	return buf
}

func decodeUint32(data []byte) (uint32, error) {
	if len(data) != uint32Size {
		return 0, fmt.Errorf("uint32 entry has %d bytes, want %d", len(data), uint32Size)
	}
	for _, b := range data[:uint32Size-4] {
		if b != 0 {
			return 0, errors.New("uint32 entry overflows 32 bits")
		}
	}
	return binary.BigEndian.Uint32(data[uint32Size-4:]), nil
}
