package srs

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/internal/parallel"
)

// File layout, all integers big-endian:
//
//	magic[8] | layout u8 | count u32 | pointSize u16 | points | sha256[32]
//
// The checksum covers everything before it.
var magic = [8]byte{'I', 'P', 'A', 'S', 'R', 'S', 0x00, 0x01}

const headerLen = len(magic) + 1 + 4 + 2

var (
	// ErrBadMagic is returned when the input is not an SRS file.
	ErrBadMagic = errors.New("srs: bad magic")
	// ErrChecksum is returned when the trailing digest does not match.
	ErrChecksum = errors.New("srs: checksum mismatch")
)

// Write serialises s to w.
func Write(w io.Writer, s *SRS) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if len(s.Points) == 0 {
		return errors.New("srs: empty")
	}
	pointSize := len(s.Points[0].Bytes())

	var buf bytes.Buffer
	buf.Grow(headerLen + len(s.Points)*pointSize + sha256.Size)
	buf.Write(magic[:])
	buf.WriteByte(byte(s.Layout))
	binary.Write(&buf, binary.BigEndian, uint32(len(s.Points)))
	binary.Write(&buf, binary.BigEndian, uint16(pointSize))
	for i, p := range s.Points {
		enc := p.Bytes()
		if len(enc) != pointSize {
			return fmt.Errorf("srs: point %d encodes to %d bytes, want %d", i, len(enc), pointSize)
		}
		buf.Write(enc)
	}
	sum := sha256.Sum256(buf.Bytes())
	buf.Write(sum[:])

	_, err := w.Write(buf.Bytes())
	return err
}

// Read parses an SRS written by Write, decoding points as elements of g.
func Read(r io.Reader, g group.Group) (*SRS, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < headerLen+sha256.Size {
		return nil, fmt.Errorf("srs: truncated input (%d bytes)", len(data))
	}
	if !bytes.Equal(data[:len(magic)], magic[:]) {
		return nil, ErrBadMagic
	}

	body, digest := data[:len(data)-sha256.Size], data[len(data)-sha256.Size:]
	if sum := sha256.Sum256(body); !bytes.Equal(sum[:], digest) {
		return nil, ErrChecksum
	}

	off := len(magic)
	layout := Layout(body[off])
	count := int(binary.BigEndian.Uint32(body[off+1:]))
	pointSize := int(binary.BigEndian.Uint16(body[off+5:]))
	payload := body[headerLen:]
	if pointSize == 0 || len(payload) != count*pointSize {
		return nil, fmt.Errorf("srs: %d payload bytes for %d points of %d bytes", len(payload), count, pointSize)
	}

	points := make([]group.Point, count)
	err = parallel.Default().ExecuteErr(count, func(start, end, _ int) error {
		for i := start; i < end; i++ {
			p, err := g.NewPoint().SetBytes(payload[i*pointSize : (i+1)*pointSize])
			if err != nil {
				return fmt.Errorf("srs: point %d: %w", i, err)
			}
			points[i] = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s := &SRS{Points: points, Layout: layout}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
