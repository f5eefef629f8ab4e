package herhash

import (
	"crypto/sha256"
	"hash"
)

// Size is the size of a herhash checksum in bytes.
const Size = sha256.Size

// TruncatedSize is the size of a truncated checksum, used where a short
// identifier is enough (block height index keys).
const TruncatedSize = 20

// New returns a new hash.Hash computing the herhash checksum.
func New() hash.Hash {
	return sha256.New()
}

// Sum returns the checksum of bz.
func Sum(bz []byte) []byte {
	h := sha256.Sum256(bz)
	return h[:]
}

// NewTruncated returns a new hash.Hash whose Sum is truncated to TruncatedSize.
func NewTruncated() hash.Hash {
	return truncated{sha256.New()}
}

// SumTruncated returns the first TruncatedSize bytes of the checksum of bz.
func SumTruncated(bz []byte) []byte {
	h := sha256.Sum256(bz)
	return h[:TruncatedSize]
}

type truncated struct {
	hash.Hash
}

func (h truncated) Size() int {
	return TruncatedSize
}

func (h truncated) Sum(b []byte) []byte {
	s := h.Hash.Sum(b)
	return s[:len(b)+TruncatedSize]
}
