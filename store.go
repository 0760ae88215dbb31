package sneakers

// ReadOnlyKVStore is a simple interface to read data from a key-value store.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive. Start must be greater than end, or the Iterator is
	// invalid.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// KVStore is a simple interface to get/set data.
//
// For simplicity, we require all backing stores to implement this interface.
// They *may* implement other methods as well, but at least these are
// required.
type KVStore interface {
	ReadOnlyKVStore

	// Set sets the key. Panics on nil key.
	Set(key, value []byte) error

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte) error
}

// Iterator allows us to access a set of items within a range of keys. These
// may all be preloaded, or loaded on demand.
type Iterator interface {
	// Next moves the iterator to the next sequential key in the database,
	// as defined by order of iteration. It returns ErrIteratorDone when
	// the iterator is exhausted.
	Next() (key, value []byte, err error)

	// Release releases the Iterator.
	Release()
}

// SetDeleter is a minimal interface for writing. Both KVStore and Batch
// satisfy it.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Batch can write multiple operations to an underlying store at once.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// CacheWrap() should not return a Committer, since Commit() on cache-wraps
// makes no sense.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap allows us to maintain a scratch-pad of uncommitted data that
// is visible to all queries on this wrap.
//
// At the end, call Write to flush it to the parent store, or Discard to
// drop it. This is the mechanism that gives every operation all-or-nothing
// semantics: validate and mutate on the wrap, Write only on success.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data
	Discard()
}

// CommitKVStore is a store that can persist state to disk, load it on start
// up, and report on the committed version.
type CommitKVStore interface {
	// Get returns the value at the last committed state. Returns nil iff
	// key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// CacheWrap returns a wrap to perform a batch of actions on.
	CacheWrap() KVCacheWrap

	// Commit the next version to disk, and return its identifier.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version. If there was
	// a crash during the last commit, it is guaranteed to return a stable
	// state, even if older.
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() (CommitID, error)
}

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
