package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/HPrieto/crypto-sneakers/errors"
)

const (
	// DefaultFreeListSize is the size we hold for free nodes in btree.
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// BTreeCacheable adds a simple btree-based CacheWrap strategy to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later written to this
// store, or rolled back.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, NewNonAtomicBatch(b.KVStore), nil)
}

// MemStore returns a simple implementation useful for tests. There is no
// persistence here.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, NewNonAtomicBatch(e), nil)
}

// BTreeCacheWrap places a btree cache over a KVStore.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this kv store. Use
// ReadOnlyKVStore to emphasize that all writes must go through the Batch.
//
// free may be nil, but set to an existing list to reuse it for memory
// savings.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another BTree on top of this one. Don't change horses in
// mid-stream.
//
// Uses NonAtomicBatch as it is only backed by another in-memory batch.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, NewNonAtomicBatch(b), b.free)
}

// Write syncs with the underlying store and then cleans up.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard invalidates this CacheWrap and releases all data.
func (b BTreeCacheWrap) Discard() {
	// clean up the btree -> freelist
	for stop := false; !stop; {
		rem := b.bt.DeleteMin()
		stop = (rem == nil)
	}
}

// Set writes to the BTree and to the batch.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	return b.batch.Set(key, value)
}

// Delete deletes from the BTree and the batch.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	return b.batch.Delete(key)
}

// Get reads from the btree if there, else the backing store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value, nil
		case deletedItem:
			return nil, nil
		default:
			return nil, errors.Wrapf(errors.ErrDatabase, "unknown cache item: %T", res)
		}
	}
	return b.back.Get(key)
}

// Has reads from the btree if there, else the backing store.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true, nil
		case deletedItem:
			return false, nil
		default:
			return false, errors.Wrapf(errors.ErrDatabase, "unknown cache item: %T", res)
		}
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order.
// Combines both the cached writes and the backing store.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	items := b.rangeItems(start, end, true)
	return newCacheIter(parent, items, true), nil
}

// ReverseIterator over a domain of keys in descending order.
// Combines both the cached writes and the backing store.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	items := b.rangeItems(start, end, false)
	return newCacheIter(parent, items, false), nil
}

// rangeItems materializes all cached items within [start, end) in iteration
// order. Nil start or end means an open range on that side.
func (b BTreeCacheWrap) rangeItems(start, end []byte, ascending bool) []keyedItem {
	var items []keyedItem
	insert := func(item btree.Item) bool {
		items = append(items, item.(keyedItem))
		return true
	}

	switch {
	case start == nil && end == nil:
		b.bt.Ascend(insert)
	case start == nil: // end != nil
		b.bt.AscendLessThan(bkey{end}, insert)
	case end == nil: // start != nil
		b.bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		b.bt.AscendRange(bkey{start}, bkey{end}, insert)
	}

	if !ascending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

/////////////////////////////////////////////////////////
// Items to write to btree

// keyedItem is a btree.Item with a key we can compare and inspect.
type keyedItem interface {
	btree.Item
	getKey() []byte
}

// bkey is a key-only holder used for lookups and range boundaries.
type bkey struct {
	key []byte
}

var _ btree.Item = (*bkey)(nil)

func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyedItem).getKey()
	return bytes.Compare(k.key, cmp) < 0
}

func (k bkey) getKey() []byte {
	return k.key
}

// setItem is a cached write of a key-value pair.
type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}

// deletedItem marks a key as removed in the cache layer.
type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}
