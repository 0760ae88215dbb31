// Package iavl provides a disk-backed merkle store built on tendermint's
// iavl tree. It persists a new version on every Commit and can reload the
// latest stable version after a restart.
package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/HPrieto/crypto-sneakers/errors"
	"github.com/HPrieto/crypto-sneakers/store"
)

// number of tree nodes held in memory
const cacheSize = 10000

// CommitStore manages an iavl committed state.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}
var _ store.CacheableKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing under the given
// directory. The name is used for the leveldb file.
func NewCommitStore(dir, name string) (CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return CommitStore{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return CommitStore{tree: iavl.NewMutableTree(db, cacheSize)}, nil
}

// MockCommitStore returns a commit store backed by memory, for tests.
func MockCommitStore() CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(dbm.NewMemDB(), cacheSize)}
}

// Get returns the value in the current working tree.
// Returns nil iff key doesn't exist.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.Get(key)
	return value, nil
}

// Has checks if a key exists in the current working tree.
func (s CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set writes to the working tree. Data is not persisted until Commit.
func (s CommitStore) Set(key, value []byte) error {
	s.tree.Set(key, value)
	return nil
}

// Delete removes from the working tree. Data is not persisted until Commit.
func (s CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
func (s CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, false), nil
}

// iterate materializes the requested range. The tree offers no resumable
// cursor, so we pay the memory up front.
func (s CommitStore) iterate(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	collect := func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	}
	s.tree.IterateRange(start, end, ascending, collect)
	return store.NewSliceIterator(res)
}

// CacheWrap gives a scratch-pad over the working tree. Write flushes the
// changes into the tree, Discard drops them.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, store.NewNonAtomicBatch(s), nil)
}

// Commit saves the next version to disk, and returns its identifier.
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion loads the latest persisted version. If there was a
// crash during the last commit, it is guaranteed to return a stable state,
// even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk.
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}
