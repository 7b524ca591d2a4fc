package hash

// NullHasher is the degenerate zero-size Hasher: Digest always returns an
// empty slice. Its zero value is ready to use.
//
// It produces files with no per-block integrity check (D=0), the intended
// escape hatch for tests that want to exercise the Store/Header wire
// format without paying for or caring about hashing.
type NullHasher struct{}

var _ Hasher = NullHasher{}

// Digest always returns an empty, non-nil slice.
func (NullHasher) Digest(input []byte) []byte {
	return []byte{}
}

// DigestWidth always returns 0.
func (NullHasher) DigestWidth() int {
	return 0
}
