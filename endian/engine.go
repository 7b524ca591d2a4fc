// Package endian provides the byte-order engine used to (de)serialize
// blockstore's on-disk integers.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces into
// a single EndianEngine so callers can both decode into an existing buffer
// and append-encode into a growing one without juggling two types.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.LittleEndian and binary.BigEndian both
// satisfy it already.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the engine used for all blockstore on-disk
// integers. The on-disk format is little-endian only; this indirection
// exists so block and store code read the same way the rest of this
// codebase's encoding/binary-based packages do, not because the format
// itself is configurable.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
