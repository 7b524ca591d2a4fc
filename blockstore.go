// Package blockstore provides an append-oriented single-file block store: a
// library that writes opaque byte payloads into a flat file, each prefixed
// by a fixed-size header recording payload length, a delete flag, a
// forward-chaining address, and a content hash.
//
// It supports sequential append, indexed random read by logical block
// index, in-place logical deletion (tombstoning), and integrity
// verification on payload-aware reads.
//
// # Basic usage
//
//	s, _ := blockstore.Create("data.bin")
//	_ = s.Append([]byte("first block"))
//	_ = s.Append([]byte("second block"))
//	_ = s.Close()
//
//	s, _ = blockstore.Open("data.bin")
//	defer s.Close()
//
//	var hdr block.Header
//	_, _ = s.SeekTo(0)
//	_ = s.ReadHeader(&hdr)
//	payload := make([]byte, hdr.SizeData)
//	_ = s.ReadPayload(payload)
//
// # Package structure
//
// Create and Open here are thin wrappers around store.Create/store.Open
// defaulting to hash.Blake3Hasher. Callers that need a different Hasher, a
// non-default buffer size, or unsynced appends should use the store package
// directly.
package blockstore

import (
	"github.com/arloliu/blockstore/hash"
	"github.com/arloliu/blockstore/store"
)

// Create opens path for read+write, truncating it if it exists (or
// creating it new), and writes the file descriptor preamble. It always uses
// hash.Blake3Hasher (D=32); use CreateWithHasher for another Hasher.
func Create(path string, opts ...store.Option) (*store.Store, error) {
	return store.Create(path, hash.Blake3Hasher{}, opts...)
}

// Open opens path for read+write, validates its file descriptor preamble,
// and indexes its blocks. It always uses hash.Blake3Hasher (D=32); use
// OpenWithHasher for another Hasher. The Hasher must match the one the file was created with (see
// hash.Hasher and the blockstore/hash package for alternatives).
func Open(path string, opts ...store.Option) (*store.Store, error) {
	return store.Open(path, hash.Blake3Hasher{}, opts...)
}

// CreateWithHasher is Create with an explicit Hasher, for callers that need
// hash.NullHasher (no per-block integrity check) or a custom implementation
// of the hash.Hasher contract.
func CreateWithHasher(path string, hasher hash.Hasher, opts ...store.Option) (*store.Store, error) {
	return store.Create(path, hasher, opts...)
}

// OpenWithHasher is Open with an explicit Hasher. It must match the Hasher
// the file was created with; digest width disagreements surface as an
// error during indexing or the first payload-aware read.
func OpenWithHasher(path string, hasher hash.Hasher, opts ...store.Option) (*store.Store, error) {
	return store.Open(path, hasher, opts...)
}
