package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// xxh64DigestWidth is the width of an xxHash64 sum.
const xxh64DigestWidth = 8

// XXH64Hasher computes an 8-byte xxHash64 digest per block. It trades
// cryptographic strength for speed: useful when the store's integrity check
// only needs to catch accidental corruption (truncated writes, bit rot) and
// not adversarial tampering. Its zero value is ready to use.
type XXH64Hasher struct{}

var _ Hasher = XXH64Hasher{}

// Digest returns the 8-byte little-endian encoding of xxhash.Sum64(input).
func (XXH64Hasher) Digest(input []byte) []byte {
	var buf [xxh64DigestWidth]byte
	binary.LittleEndian.PutUint64(buf[:], xxhash.Sum64(input))
	return buf[:]
}

// DigestWidth always returns 8.
func (XXH64Hasher) DigestWidth() int {
	return xxh64DigestWidth
}
