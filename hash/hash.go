// Package hash defines the pluggable content-hash contract blockstore uses
// to compute per-block digests, plus the two implementations every
// blockstore deployment needs: a cryptographic hash for integrity
// verification and a null hash for tests that don't care about it. A third,
// XXH64Hasher, offers a fast non-cryptographic 8-byte digest.
package hash

// Hasher computes a fixed-width digest of a byte slice.
//
// Digest must be a pure, deterministic function of input: the same bytes
// always produce the same digest, and Digest never fails. DigestWidth
// reports the digest length in bytes and must be constant for the lifetime
// of a Hasher value; block.Header relies on it to compute the on-disk
// header size (format.BaseHeaderSize + DigestWidth).
type Hasher interface {
	// Digest returns the digest of input. The returned slice has length
	// DigestWidth() and is safe for the caller to retain.
	Digest(input []byte) []byte

	// DigestWidth returns D, the fixed digest width in bytes.
	DigestWidth() int
}
