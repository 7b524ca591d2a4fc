// Package store implements the Store engine: the file descriptor preamble,
// open-time forward-scan indexing, append-only writes, indexed random reads,
// and logical tombstone deletion described by the blockstore file format.
//
// A Store owns its *os.File exclusively from Create/Open until Close. It is
// not safe for concurrent use by multiple goroutines; callers sharing a
// Store must serialize access externally.
package store
