package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash is a hex-encoded SHA-256 digest. Run manifests use hashes to
// pin down exactly which configuration and data produced a result, so
// two runs with equal fingerprints are guaranteed to be comparable.
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	// ConfigHash identifies a pipeline configuration by its canonical
	// JSON encoding.
	ConfigHash Hash
	// DataHash fingerprints the full numeric content of a dataset or
	// mask.
	DataHash Hash
)

// Constructors
func NewConfigHash(data []byte) ConfigHash { return ConfigHash(NewHash(data)) }
func NewDataHash(data []byte) DataHash     { return DataHash(NewHash(data)) }

// String conversions
func (h ConfigHash) String() string { return Hash(h).String() }
func (h DataHash) String() string   { return Hash(h).String() }

// DeriveSeed maps a base seed and a stream name to a new deterministic
// seed, so independent random draws (data, mask) never share a stream
// while staying reproducible from one configured seed.
func DeriveSeed(base int64, name string) int64 {
	return base + int64(hashString(name))
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
