package transcript

import (
	"errors"
	"fmt"
)

var (
	// ErrDesync is matched by every *DesyncError. Use errors.Is.
	ErrDesync = errors.New("transcript: protocol desync")
	// ErrWrongSide is returned when a prover method is called on a
	// verifier transcript or the other way round.
	ErrWrongSide = errors.New("transcript: operation not available on this side")
)

// Reason classifies a desync.
type Reason uint8

const (
	// ReasonLabel means the next entry has a different label.
	ReasonLabel Reason = iota + 1
	// ReasonKind means the next entry has the expected label but a
	// different value type.
	ReasonKind
	// ReasonExhausted means the proof has no entries left.
	ReasonExhausted
	// ReasonMalformed means the entry's payload does not decode.
	ReasonMalformed
	// ReasonTrailing means entries remain after the protocol finished.
	ReasonTrailing
)

func (r Reason) String() string {
	switch r {
	case ReasonLabel:
		return "label mismatch"
	case ReasonKind:
		return "kind mismatch"
	case ReasonExhausted:
		return "proof exhausted"
	case ReasonMalformed:
		return "malformed payload"
	case ReasonTrailing:
		return "trailing entries"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// DesyncError reports that a verifier's replay diverged from the proof it
// was given.
type DesyncError struct {
	Reason    Reason
	Index     int
	WantLabel string
	WantKind  Kind
	GotLabel  string
	GotKind   Kind
	Err       error
}

func (e *DesyncError) Error() string {
	msg := fmt.Sprintf("transcript: protocol desync at entry %d: %s", e.Index, e.Reason)
	switch e.Reason {
	case ReasonLabel, ReasonKind:
		msg += fmt.Sprintf(" (want %s %q, got %s %q)", e.WantKind, e.WantLabel, e.GotKind, e.GotLabel)
	case ReasonExhausted:
		msg += fmt.Sprintf(" (want %s %q)", e.WantKind, e.WantLabel)
	case ReasonMalformed:
		msg += fmt.Sprintf(" (%s %q)", e.WantKind, e.WantLabel)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrDesync.
func (e *DesyncError) Is(target error) bool {
	return target == ErrDesync
}

// Unwrap returns the decoding error behind a ReasonMalformed desync.
func (e *DesyncError) Unwrap() error {
	return e.Err
}
