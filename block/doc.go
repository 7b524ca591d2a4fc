// Package block implements the bit-exact per-block header used by the
// store package: serialization, deserialization, read-ahead arithmetic for
// open-time indexing, and the delete-flag bit operations.
//
// A Header's serialized size depends on the digest width D of the Hasher it
// is paired with (format.BaseHeaderSize + D). Headers carry D as a runtime
// field rather than a type parameter, trading one extra field and one
// indirect call per hash for avoiding generics on the hot path.
package block
