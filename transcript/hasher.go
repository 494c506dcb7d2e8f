package transcript

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Hasher supplies the hash function a transcript chains its state with.
// Prover and verifier must use the same Hasher.
type Hasher interface {
	// Name identifies the hash function in proof bundles and CLI flags.
	Name() string
	// New returns a fresh hash.Hash.
	New() hash.Hash
}

// SHA256Hasher implements Hasher using SHA-256.
// This is the default hasher.
type SHA256Hasher struct{}

// Name implements Hasher.Name.
func (SHA256Hasher) Name() string { return "sha256" }

// New implements Hasher.New.
func (SHA256Hasher) New() hash.Hash { return sha256.New() }

// Blake2bHasher implements Hasher using Blake2b-512. Every hash is
// prefixed with Prefix for domain separation.
type Blake2bHasher struct {
	// Prefix is the domain separation prefix.
	// Default: "IPA-BLAKE512-v1"
	Prefix string
}

// NewBlake2bHasher creates a Blake2bHasher with the default prefix.
func NewBlake2bHasher() *Blake2bHasher {
	return &Blake2bHasher{
		Prefix: "IPA-BLAKE512-v1",
	}
}

// Name implements Hasher.Name.
func (h *Blake2bHasher) Name() string { return "blake2b" }

// New implements Hasher.New.
func (h *Blake2bHasher) New() hash.Hash {
	hasher, _ := blake2b.New512(nil)
	hasher.Write([]byte(h.Prefix))
	return hasher
}

// Keccak256Hasher implements Hasher using legacy Keccak-256, the variant
// Ethereum tooling uses.
type Keccak256Hasher struct{}

// Name implements Hasher.Name.
func (Keccak256Hasher) Name() string { return "keccak256" }

// New implements Hasher.New.
func (Keccak256Hasher) New() hash.Hash { return sha3.NewLegacyKeccak256() }

// HasherByName returns the hasher registered under name.
func HasherByName(name string) (Hasher, error) {
	switch name {
	case "", "sha256":
		return SHA256Hasher{}, nil
	case "blake2b":
		return NewBlake2bHasher(), nil
	case "keccak256":
		return Keccak256Hasher{}, nil
	default:
		return nil, fmt.Errorf("transcript: unknown hasher %q", name)
	}
}
