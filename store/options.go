package store

import "github.com/arloliu/blockstore/internal/options"

// Option configures a Store at Create/Open time.
type Option = options.Option[*Store]

// WithBufferSize sets the size of the pooled buffer used to assemble a
// block's header and payload before the single WriteAt call that appends it.
// The default is pool.DefaultBufferSize, generous enough for a header plus a
// small payload without growing.
func WithBufferSize(n int) Option {
	return options.NoError(func(s *Store) {
		if n <= 0 {
			return
		}
		s.bufPool = newBufferPool(n)
	})
}

// WithoutSync disables the fsync that otherwise follows every Append. This
// trades the durability of a just-appended block for write throughput; the
// synced default matches the single-block-atomicity guarantee the format
// promises.
func WithoutSync() Option {
	return options.NoError(func(s *Store) {
		s.syncOnAppend = false
	})
}
