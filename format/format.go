// Package format holds the wire-format constants shared by the block and
// store packages. It exists to avoid an import cycle between them, the same
// role a format/types.go package plays for other binary layouts in this
// codebase's style.
package format

const (
	// Version is the only descriptor version this module writes or accepts.
	// A breaking change to the on-disk layout must bump this value.
	Version uint32 = 1

	// Tag is the stable format-identification string written into every
	// file descriptor preamble, immediately after version and tag_len.
	Tag = "FSTOREV.01BINARYR01"

	// TagLen is len(Tag), stored explicitly in the preamble as a u64 so a
	// reader can validate it without assuming the tag's length in advance.
	TagLen = uint64(len(Tag))
)

// Preamble field widths, in bytes.
const (
	VersionWidth = 4
	TagLenWidth  = 8
)

// PreambleSize returns the total byte size of the file descriptor preamble
// for the given tag length: version (4) + tag_len (8) + tag bytes.
func PreambleSize(tagLen int) int64 {
	return int64(VersionWidth+TagLenWidth) + int64(tagLen)
}

// Block header field widths, in bytes. A block header is
// SizeDataWidth + StateFlagWidth + AddressNextWidth + D, where D is the
// configured Hasher's digest width.
const (
	SizeDataWidth    = 8
	StateFlagWidth   = 4
	AddressNextWidth = 8

	// BaseHeaderSize is the header size with a zero-width digest (D=0),
	// i.e. 20 bytes: size_data(8) + state_flag(4) + address_next(8).
	BaseHeaderSize = SizeDataWidth + StateFlagWidth + AddressNextWidth

	// ReadAheadSize is the number of leading header bytes that determine
	// the byte distance to the next block: just size_data.
	ReadAheadSize = SizeDataWidth

	// DeleteFlagOffset is the byte offset of state_flag within a header.
	DeleteFlagOffset = SizeDataWidth

	// DeleteFlagBit is the bit of state_flag that marks a block tombstoned.
	DeleteFlagBit uint32 = 1
)
