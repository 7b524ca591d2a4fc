package hash

import "lukechampine.com/blake3"

// blake3DigestWidth is the standard BLAKE3 digest size: 256 bits.
const blake3DigestWidth = 32

// Blake3Hasher computes a 256-bit BLAKE3 digest per block. It is
// blockstore's default Hasher: a cryptographic 256-bit hash, one of the two
// implementations every deployment needs alongside NullHasher. Its zero
// value is ready to use.
type Blake3Hasher struct{}

var _ Hasher = Blake3Hasher{}

// Digest returns the 32-byte BLAKE3 digest of input.
func (Blake3Hasher) Digest(input []byte) []byte {
	sum := blake3.Sum256(input)
	return sum[:]
}

// DigestWidth always returns 32.
func (Blake3Hasher) DigestWidth() int {
	return blake3DigestWidth
}
