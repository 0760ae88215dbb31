package store

import (
	"bytes"

	"github.com/HPrieto/crypto-sneakers/errors"
)

//------------------- cache iterator ----------------------
//
// Merges a materialized slice of cached writes with the iterator of the
// backing store. Cached writes shadow backing values with the same key,
// deletions suppress them.

type cacheIter struct {
	parent    Iterator
	items     []keyedItem
	ascending bool

	// one-item lookahead on the parent
	parentKey   []byte
	parentValue []byte
	parentDone  bool
}

var _ Iterator = (*cacheIter)(nil)

func newCacheIter(parent Iterator, items []keyedItem, ascending bool) *cacheIter {
	return &cacheIter{
		parent:    parent,
		items:     items,
		ascending: ascending,
	}
}

// Next returns the next key-value pair in the merged iteration, or
// errors.ErrIteratorDone when both sources are exhausted.
func (c *cacheIter) Next() (key, value []byte, err error) {
	for {
		if err := c.advanceParent(); err != nil {
			return nil, nil, err
		}

		var item keyedItem
		if len(c.items) > 0 {
			item = c.items[0]
		}

		switch {
		case item == nil && c.parentDone:
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		case item == nil:
			return c.takeParent(), c.parentValue, nil
		case c.parentDone:
			// drain the cache
		default:
			cmp := bytes.Compare(item.getKey(), c.parentKey)
			if !c.ascending {
				cmp = -cmp
			}
			if cmp > 0 {
				return c.takeParent(), c.parentValue, nil
			}
			if cmp == 0 {
				// cache shadows the backing store
				c.parentKey = nil
			}
		}

		c.items = c.items[1:]
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
		// deletedItem: suppress and continue
	}
}

// Release frees the parent iterator. Pending cached items are dropped.
func (c *cacheIter) Release() {
	c.items = nil
	c.parent.Release()
}

// advanceParent ensures the lookahead holds the parent's next pair, unless
// already consumed or exhausted.
func (c *cacheIter) advanceParent() error {
	if c.parentDone || c.parentKey != nil {
		return nil
	}
	key, value, err := c.parent.Next()
	switch {
	case err == nil:
		c.parentKey, c.parentValue = key, value
	case errors.ErrIteratorDone.Is(err):
		c.parentDone = true
	default:
		return err
	}
	return nil
}

// takeParent consumes the lookahead pair and returns its key.
func (c *cacheIter) takeParent() []byte {
	key := c.parentKey
	c.parentKey = nil
	return key
}

//----------------------- slice iterator ---------------------------

// sliceIterator iterates over a materialized list of models. Used to
// serve iteration over in-memory stores.
type sliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*sliceIterator)(nil)

// NewSliceIterator creates an iterator over a copy of the given models.
func NewSliceIterator(data []Model) Iterator {
	return &sliceIterator{data: data}
}

func (s *sliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice iterator")
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

func (s *sliceIterator) Release() {
	s.data = nil
	s.idx = 0
}
