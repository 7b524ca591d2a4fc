package block

import (
	"fmt"

	"github.com/arloliu/blockstore/endian"
	"github.com/arloliu/blockstore/errs"
	"github.com/arloliu/blockstore/format"
	"github.com/arloliu/blockstore/hash"
)

// Header is the fixed-size metadata that precedes every block's payload on
// disk.
//
//	size_data    u64   byte offset 0-7
//	state_flag   u32   byte offset 8-11
//	address_next u64   byte offset 12-19
//	digest       D     byte offset 20-(20+D-1)
type Header struct {
	// SizeData is the payload length in bytes that follows the header.
	SizeData uint64
	// StateFlag's bit 0 is the delete/tombstone flag; remaining bits are
	// reserved and always written as zero.
	StateFlag uint32
	// AddressNext is reserved for forward-chaining continuation blocks.
	// No operation in this module interprets it on read; it is preserved
	// on round-trip and written as zero on initial append.
	AddressNext uint64
	// Digest is the content hash of the payload, exactly DigestWidth bytes.
	Digest []byte

	digestWidth int
}

// New constructs a zero-valued Header sized for the given digest width.
// Payload-derived fields (SizeData, Digest) are left zero; Serialize builds
// its own fully populated Header instead.
func New(digestWidth int) *Header {
	return &Header{digestWidth: digestWidth}
}

// Size returns the total serialized header size in bytes: 20 + D.
func (h *Header) Size() int {
	return format.BaseHeaderSize + h.digestWidth
}

// ReadAheadSize returns the number of leading header bytes needed to
// determine the byte distance to the next block header: 8 (size_data).
func (h *Header) ReadAheadSize() int {
	return format.ReadAheadSize
}

// DeleteOffset returns the byte offset of state_flag within a serialized
// header, for callers that want to toggle the delete flag without
// rewriting the whole header.
func (h *Header) DeleteOffset() int {
	return format.DeleteFlagOffset
}

// DeleteFlagValue returns the bit pattern written into state_flag to mark a
// block deleted.
func (h *Header) DeleteFlagValue() uint32 {
	return format.DeleteFlagBit
}

// SetDeleteFlag returns flags with bit 0 set to 1 if deleted is true, and
// cleared otherwise. Bits other than bit 0 are left untouched.
func SetDeleteFlag(flags uint32, deleted bool) uint32 {
	if deleted {
		return flags | format.DeleteFlagBit
	}

	return flags &^ format.DeleteFlagBit
}

// IsDeleted reports whether state_flag's bit 0 is set.
func (h *Header) IsDeleted() bool {
	return h.StateFlag&format.DeleteFlagBit != 0
}

// Serialize builds a new Header for payload (computing SizeData from
// len(payload) and the digest via hasher) and returns its on-wire bytes:
// exactly Size() = 20 + hasher.DigestWidth() bytes.
func Serialize(payload []byte, hasher hash.Hasher) ([]byte, *Header) {
	h := &Header{
		SizeData:    uint64(len(payload)),
		StateFlag:   0,
		AddressNext: 0,
		Digest:      hasher.Digest(payload),
		digestWidth: hasher.DigestWidth(),
	}

	return h.bytes(), h
}

// bytes encodes h's current fields into a freshly-allocated Size()-byte
// buffer, in the field order fixed by the format.
func (h *Header) bytes() []byte {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, h.Size())

	engine.PutUint64(buf[0:8], h.SizeData)
	engine.PutUint32(buf[8:12], h.StateFlag)
	engine.PutUint64(buf[12:20], h.AddressNext)
	copy(buf[20:20+h.digestWidth], h.Digest)

	return buf
}

// Deserialize parses a Size()-byte header from buf into a new Header,
// without verifying the digest against any payload: size_data, state_flag,
// and address_next are decoded, and digest is populated as stored. This is
// the header-only mode store.Store.ReadHeader uses, where the payload is not
// (yet) read.
//
// Returns errs.ErrTruncatedHeader if len(buf) < digestWidth+20.
func Deserialize(buf []byte, digestWidth int) (*Header, error) {
	size := format.BaseHeaderSize + digestWidth
	if len(buf) < size {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", errs.ErrTruncatedHeader, size, len(buf))
	}

	engine := endian.GetLittleEndianEngine()
	h := &Header{
		SizeData:    engine.Uint64(buf[0:8]),
		StateFlag:   engine.Uint32(buf[8:12]),
		AddressNext: engine.Uint64(buf[12:20]),
		Digest:      append([]byte(nil), buf[20:20+digestWidth]...),
		digestWidth: digestWidth,
	}

	return h, nil
}

// DeserializeWithPayload parses a header from buf exactly as Deserialize
// does, then verifies the stored digest against hasher.Digest(payload).
//
// Returns errs.ErrIntegrityMismatch if the digests disagree. With a
// zero-width Hasher (hash.NullHasher), the stored digest is empty and the
// comparison is a tautology by design.
func DeserializeWithPayload(buf []byte, payload []byte, hasher hash.Hasher) (*Header, error) {
	h, err := Deserialize(buf, hasher.DigestWidth())
	if err != nil {
		return nil, err
	}

	want := hasher.Digest(payload)
	if !bytesEqual(h.Digest, want) {
		return nil, fmt.Errorf("%w: stored digest %x, computed %x", errs.ErrIntegrityMismatch, h.Digest, want)
	}

	return h, nil
}

// ReadAhead decodes the first 8 bytes of prefix as a little-endian u64
// size_data and returns the byte distance from the end of prefix to the
// start of the next block header: size_data + 12 + D.
//
// prefix must be at least ReadAheadSize() (8) bytes long.
func (h *Header) ReadAhead(prefix []byte) (int64, error) {
	if len(prefix) < format.ReadAheadSize {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", errs.ErrTruncatedHeader, format.ReadAheadSize, len(prefix))
	}

	engine := endian.GetLittleEndianEngine()
	sizeData := engine.Uint64(prefix[:format.ReadAheadSize])

	return int64(sizeData) + int64(h.Size()-h.ReadAheadSize()), nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
