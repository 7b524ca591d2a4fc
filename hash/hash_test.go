package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNullHasher(t *testing.T) {
	h := NullHasher{}
	require.Equal(t, 0, h.DigestWidth())

	digest := h.Digest([]byte("anything"))
	require.Len(t, digest, 0)
}

func TestBlake3Hasher(t *testing.T) {
	h := Blake3Hasher{}
	require.Equal(t, 32, h.DigestWidth())

	digest := h.Digest([]byte("hello"))
	require.Len(t, digest, 32)

	// deterministic
	require.Equal(t, digest, h.Digest([]byte("hello")))

	// different input, different digest
	require.NotEqual(t, digest, h.Digest([]byte("world")))
}

func TestXXH64Hasher(t *testing.T) {
	h := XXH64Hasher{}
	require.Equal(t, 8, h.DigestWidth())

	digest := h.Digest([]byte("hello"))
	require.Len(t, digest, 8)
	require.Equal(t, digest, h.Digest([]byte("hello")))
	require.NotEqual(t, digest, h.Digest([]byte("world")))
}

func TestHashers_EmptyInput(t *testing.T) {
	for _, h := range []Hasher{NullHasher{}, Blake3Hasher{}, XXH64Hasher{}} {
		digest := h.Digest([]byte{})
		require.Len(t, digest, h.DigestWidth())
	}
}
