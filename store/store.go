package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/blockstore/block"
	"github.com/arloliu/blockstore/endian"
	"github.com/arloliu/blockstore/errs"
	"github.com/arloliu/blockstore/format"
	"github.com/arloliu/blockstore/hash"
	"github.com/arloliu/blockstore/internal/options"
	"github.com/arloliu/blockstore/internal/pool"
)

// Store owns the on-disk file for an append-oriented block store, from the
// file descriptor preamble through the address index built at open time and
// the append / read / tombstone operations layered over it.
type Store struct {
	file   *os.File
	path   string
	hasher hash.Hasher
	header *block.Header

	dataStartAddress int64

	// addresses holds n+1 entries for n indexed blocks: addresses[i] is the
	// start offset of block i, and the trailing entry is the EOF sentinel
	// equal to the current file length. Len() reports n, not n+1.
	addresses []int64

	bufPool      *pool.ByteBufferPool
	syncOnAppend bool
	closed       bool
}

// Stats summarizes a Store's on-disk usage, computed from the address index
// plus one header scan.
type Stats struct {
	BlockCount     int
	LiveCount      int
	TombstoneCount int
	DataBytes      uint64
	FileBytes      int64
}

func newBufferPool(size int) *pool.ByteBufferPool {
	return pool.NewByteBufferPool(size, size*4)
}

func newStore(file *os.File, path string, hasher hash.Hasher) *Store {
	return &Store{
		file:         file,
		path:         path,
		hasher:       hasher,
		header:       block.New(hasher.DigestWidth()),
		bufPool:      newBufferPool(pool.DefaultBufferSize),
		syncOnAppend: true,
	}
}

// Create opens path for read+write, truncating it if it exists (or creating
// it new), writes the file descriptor preamble, and returns a Store with an
// empty address index positioned at end-of-preamble.
func Create(path string, hasher hash.Hasher, opts ...Option) (*Store, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	s := newStore(file, path, hasher)
	if err := options.Apply(s, opts...); err != nil {
		_ = file.Close()
		return nil, err
	}

	if err := s.writePreamble(); err != nil {
		_ = file.Close()
		return nil, err
	}

	s.addresses = []int64{s.dataStartAddress}

	return s, nil
}

// Open opens path for read+write, validates its file descriptor preamble,
// and indexes every block it contains by forward-scanning header metadata
// only (no payload reads).
func Open(path string, hasher hash.Hasher, opts ...Option) (*Store, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	s := newStore(file, path, hasher)
	if err := options.Apply(s, opts...); err != nil {
		_ = file.Close()
		return nil, err
	}

	if err := s.readPreamble(); err != nil {
		_ = file.Close()
		return nil, err
	}

	if err := s.indexBlocks(); err != nil {
		_ = file.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) writePreamble() error {
	engine := endian.GetLittleEndianEngine()

	buf := make([]byte, 0, format.PreambleSize(len(format.Tag)))
	buf = engine.AppendUint32(buf, format.Version)
	buf = engine.AppendUint64(buf, format.TagLen)
	buf = append(buf, format.Tag...)

	if _, err := s.file.WriteAt(buf, 0); err != nil {
		return err
	}

	s.dataStartAddress = int64(len(buf))

	_, err := s.file.Seek(s.dataStartAddress, io.SeekStart)
	return err
}

func (s *Store) readPreamble() error {
	prefix := make([]byte, format.VersionWidth+format.TagLenWidth)
	if _, err := io.ReadFull(io.NewSectionReader(s.file, 0, int64(len(prefix))), prefix); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidDescriptor, err)
	}

	engine := endian.GetLittleEndianEngine()
	version := engine.Uint32(prefix[0:4])
	tagLen := engine.Uint64(prefix[4:12])

	tag := make([]byte, tagLen)
	if _, err := io.ReadFull(io.NewSectionReader(s.file, int64(len(prefix)), int64(tagLen)), tag); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidDescriptor, err)
	}

	if version != format.Version || string(tag) != format.Tag {
		return fmt.Errorf("%w: version=%d tag=%q", errs.ErrInvalidDescriptor, version, tag)
	}

	s.dataStartAddress = int64(len(prefix)) + int64(tagLen)

	return nil
}

// indexBlocks implements the open-time forward-scan: it peeks
// ReadAheadSize bytes per header, computes the byte distance to the next
// block via block.Header.ReadAhead, and repeats until the computed cursor
// reaches end-of-file. It never reads a payload.
func (s *Store) indexBlocks() error {
	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	fileLen := info.Size()

	addresses := make([]int64, 0, 16)
	addresses = append(addresses, s.dataStartAddress)

	cur := s.dataStartAddress
	prefix := make([]byte, format.ReadAheadSize)

	for cur < fileLen {
		if _, err := s.file.ReadAt(prefix, cur); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrTruncatedHeader, err)
		}

		distance, err := s.header.ReadAhead(prefix)
		if err != nil {
			return err
		}

		next := cur + int64(format.ReadAheadSize) + distance

		if next > fileLen {
			if len(addresses) == 1 {
				// The very first block already overruns the file. This is
				// indistinguishable, from header bytes alone, between a
				// genuinely truncated first block and a Hasher whose
				// digest width disagrees with the one the file was
				// created with: either way there is no known good block
				// to fall back to, so the ambiguity is surfaced instead
				// of silently discarding the candidate.
				return fmt.Errorf("%w: first block declares %d bytes past end of file", errs.ErrHasherMismatch, next-fileLen)
			}

			slog.Warn("truncated trailing block discarded",
				"path", s.path, "offset", cur, "overrun", next-fileLen)

			if err := s.file.Truncate(cur); err != nil {
				return err
			}
			fileLen = cur

			break
		}

		addresses = append(addresses, next)
		cur = next
	}

	s.addresses = addresses

	_, err = s.file.Seek(s.dataStartAddress, io.SeekStart)
	return err
}

// Append constructs a block.Header for payload (via the Store's Hasher),
// assembles header+payload into a single pooled buffer, writes it in one
// call at the current end-of-file offset, and records that pre-write offset
// as the new block's start address.
func (s *Store) Append(payload []byte) error {
	if s.closed {
		return errs.ErrClosed
	}

	headerBytes, _ := block.Serialize(payload, s.hasher)

	buf := s.bufPool.Get()
	defer s.bufPool.Put(buf)

	_, _ = buf.Write(headerBytes)
	_, _ = buf.Write(payload)

	start := s.addresses[len(s.addresses)-1]
	if _, err := s.file.WriteAt(buf.Bytes(), start); err != nil {
		return err
	}

	end := start + int64(buf.Len())
	s.addresses = append(s.addresses, end)

	if _, err := s.file.Seek(end, io.SeekStart); err != nil {
		return err
	}

	if s.syncOnAppend {
		return s.file.Sync()
	}

	return nil
}

// Len returns the number of indexed live-or-tombstoned blocks (the EOF
// sentinel entry in the address index is not counted).
func (s *Store) Len() int {
	if len(s.addresses) == 0 {
		return 0
	}
	return len(s.addresses) - 1
}

// BlockAddress returns the stored start offset of block i, or false if
// i >= Len().
func (s *Store) BlockAddress(i int) (uint64, bool) {
	if i < 0 || i >= s.Len() {
		return 0, false
	}
	return uint64(s.addresses[i]), true
}

// SeekTo positions the file cursor at the start of block i's header and
// returns that absolute offset.
func (s *Store) SeekTo(i int) (uint64, error) {
	if s.closed {
		return 0, errs.ErrClosed
	}

	addr, ok := s.BlockAddress(i)
	if !ok {
		return 0, fmt.Errorf("%w: index %d, len %d", errs.ErrOutOfBounds, i, s.Len())
	}

	if _, err := s.file.Seek(int64(addr), io.SeekStart); err != nil {
		return 0, err
	}

	return addr, nil
}

// ReadHeader reads exactly block.Header.Size() bytes from the current file
// position into out, without verifying the digest against any payload.
func (s *Store) ReadHeader(out *block.Header) error {
	if s.closed {
		return errs.ErrClosed
	}

	buf := make([]byte, s.header.Size())
	if _, err := io.ReadFull(s.file, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %w", errs.ErrTruncatedHeader, err)
		}
		return err
	}

	parsed, err := block.Deserialize(buf, s.hasher.DigestWidth())
	if err != nil {
		return err
	}

	*out = *parsed

	return nil
}

// ReadPayload reads len(out) bytes from the current file position into out.
// Callers size out from the size_data reported by a preceding ReadHeader.
func (s *Store) ReadPayload(out []byte) error {
	if s.closed {
		return errs.ErrClosed
	}

	_, err := io.ReadFull(s.file, out)
	return err
}

// ReadAt seeks to block i, reads and discards its header, then reads
// len(out) payload bytes into out.
func (s *Store) ReadAt(i int, out []byte) (int, error) {
	if _, err := s.SeekTo(i); err != nil {
		return 0, err
	}

	var hdr block.Header
	if err := s.ReadHeader(&hdr); err != nil {
		return 0, err
	}

	if err := s.ReadPayload(out); err != nil {
		return 0, err
	}

	return len(out), nil
}

// DeleteBlock tombstones block i in place: it writes the delete-flag bit
// pattern over state_flag at block_address(i)+DeleteOffset() and seeks the
// cursor back to offset 0. The payload and digest are left untouched.
func (s *Store) DeleteBlock(i int) error {
	if s.closed {
		return errs.ErrClosed
	}

	addr, ok := s.BlockAddress(i)
	if !ok {
		return fmt.Errorf("%w: index %d, len %d", errs.ErrOutOfBounds, i, s.Len())
	}

	flag := endian.GetLittleEndianEngine().AppendUint32(nil, s.header.DeleteFlagValue())
	if _, err := s.file.WriteAt(flag, int64(addr)+int64(s.header.DeleteOffset())); err != nil {
		return err
	}

	_, err := s.file.Seek(0, io.SeekStart)
	return err
}

// IsDeleted reports whether block i's state_flag has the delete bit set,
// without requiring the caller to hand-roll the bitmask check.
func (s *Store) IsDeleted(i int) (bool, error) {
	if s.closed {
		return false, errs.ErrClosed
	}

	addr, ok := s.BlockAddress(i)
	if !ok {
		return false, fmt.Errorf("%w: index %d, len %d", errs.ErrOutOfBounds, i, s.Len())
	}

	flagBuf := make([]byte, format.StateFlagWidth)
	if _, err := s.file.ReadAt(flagBuf, int64(addr)+int64(s.header.DeleteOffset())); err != nil {
		return false, err
	}

	flag := endian.GetLittleEndianEngine().Uint32(flagBuf)

	return flag&s.header.DeleteFlagValue() != 0, nil
}

// Flush flushes the underlying file to stable storage.
func (s *Store) Flush() error {
	if s.closed {
		return errs.ErrClosed
	}
	return s.file.Sync()
}

// Path returns the path the Store was created or opened with.
func (s *Store) Path() string {
	return s.path
}

// Close flushes and releases the underlying file handle. Close is
// idempotent; subsequent Store operations return errs.ErrClosed.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.file.Sync(); err != nil {
		_ = s.file.Close()
		return err
	}

	return s.file.Close()
}

// Iterate walks live (non-tombstoned) blocks in index order, calling fn
// with each block's index and header. fn returns false to stop early.
func (s *Store) Iterate(fn func(i int, hdr block.Header) (bool, error)) error {
	if s.closed {
		return errs.ErrClosed
	}

	var hdr block.Header
	for i := 0; i < s.Len(); i++ {
		if _, err := s.SeekTo(i); err != nil {
			return err
		}
		if err := s.ReadHeader(&hdr); err != nil {
			return err
		}
		if hdr.IsDeleted() {
			continue
		}

		cont, err := fn(i, hdr)
		if err != nil {
			return err
		}
		if !cont {
			break
		}
	}

	return nil
}

// Stats scans every indexed header and reports on-disk usage. It leaves the
// file cursor at data_start_address.
func (s *Store) Stats() (Stats, error) {
	if s.closed {
		return Stats{}, errs.ErrClosed
	}

	info, err := s.file.Stat()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{BlockCount: s.Len(), FileBytes: info.Size()}

	var hdr block.Header
	for i := 0; i < s.Len(); i++ {
		if _, err := s.SeekTo(i); err != nil {
			return Stats{}, err
		}
		if err := s.ReadHeader(&hdr); err != nil {
			return Stats{}, err
		}

		if hdr.IsDeleted() {
			stats.TombstoneCount++
		} else {
			stats.LiveCount++
		}
		stats.DataBytes += hdr.SizeData
	}

	if _, err := s.file.Seek(s.dataStartAddress, io.SeekStart); err != nil {
		return Stats{}, err
	}

	return stats, nil
}
