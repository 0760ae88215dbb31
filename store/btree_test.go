package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole, just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	// make sure the btree is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	mustGet(t, base, k, nil)
	mustHave(t, base, k, false)
	require.NoError(t, base.Set(k, v))
	mustGet(t, base, k, v)
	mustHave(t, base, k, true)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	mustGet(t, cache, k, v)
	mustHave(t, cache, k, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	mustGet(t, cache, k2, nil)
	require.NoError(t, cache.Set(k2, v2))
	mustGet(t, cache, k2, v2)
	mustGet(t, base, k2, nil)
	mustHave(t, cache, k2, true)
	mustHave(t, base, k2, false)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	mustGet(t, base, k, v)
	mustGet(t, base, k2, v2)
	mustHave(t, base, k, true)
	mustHave(t, base, k2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	mustGet(t, c2, k, v)
	mustGet(t, c2, k2, v2)
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()

	// and commit another
	c3 := base.CacheWrap()
	mustGet(t, c3, k, v)
	mustGet(t, c3, k2, v2)
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())

	// make sure it commits proper
	mustGet(t, base, k, nil)
	mustGet(t, base, k2, v2)
	mustGet(t, base, k3, nil)

	// and to test devnull....
	require.NoError(t, base.Write())
	mustGet(t, devnull, k2, nil)
}

// TestBTreeCacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func TestBTreeCacheConflicts(t *testing.T) {
	// devnull is a black hole, just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// make 10 keys and 20 values....
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		"overwrite one, delete another, add a third": {
			[]Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			[]Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			[]Model{pair(ks[1], vs[1]), pair(ks[2], vs[2]), pair(ks[3], nil)},
			[]Model{pair(ks[1], vs[11]), pair(ks[2], nil), pair(ks[3], vs[7])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := devnull.CacheWrap()
			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			// now check the parent is unaffected
			for j, q := range tc.parentQueries {
				mustGet(t, parent, q.Key, q.Value)
				has, err := parent.Has(q.Key)
				require.NoError(t, err)
				assert.Equal(t, q.Value != nil, has, "%d", j)
			}

			// the child shows changes
			for j, q := range tc.childQueries {
				mustGet(t, child, q.Key, q.Value)
				has, err := child.Has(q.Key)
				require.NoError(t, err)
				assert.Equal(t, q.Value != nil, has, "%d", j)
			}

			// write child to parent and make sure it also shows proper data
			require.NoError(t, child.Write())
			for j, q := range tc.childQueries {
				mustGet(t, parent, q.Key, q.Value)
				has, err := parent.Has(q.Key)
				require.NoError(t, err)
				assert.Equal(t, q.Value != nil, has, "%d", j)
			}
		})
	}
}

// TestSliceIterator makes sure the basic slice iterator works
func TestSliceIterator(t *testing.T) {
	const Size = 10

	ks := randKeys(Size, 8)
	vs := randKeys(Size, 40)

	models := make([]Model, Size)
	for i := 0; i < Size; i++ {
		models[i].Key = ks[i]
		models[i].Value = vs[i]
	}

	// make sure proper iteration works
	iter := NewSliceIterator(models)
	for i := 0; i < Size; i++ {
		key, value, err := iter.Next()
		require.NoError(t, err, "%d", i)
		assert.Equal(t, ks[i], key)
		assert.Equal(t, vs[i], value)
	}
	_, _, err := iter.Next()
	assert.Error(t, err)

	// iterator returns done after release
	trash := NewSliceIterator(models)
	trash.Release()
	_, _, err = trash.Next()
	assert.Error(t, err)
}

// TestBTreeCacheBasicIterator makes sure the basic iterator
// works. Includes random deletes, but not nested iterators.
func TestBTreeCacheBasicIterator(t *testing.T) {
	const Size = 50
	const DeleteCount = 20
	const TotalSize = Size + DeleteCount

	models := make([]Model, TotalSize)
	for i := 0; i < TotalSize; i++ {
		models[i].Key = randBytes(8)
		models[i].Value = randBytes(40)
	}

	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()
	// add them all to the cache
	for i := 0; i < TotalSize; i++ {
		require.NoError(t, base.Set(models[i].Key, models[i].Value))
	}
	// delete the first chunk
	for i := 0; i < DeleteCount; i++ {
		require.NoError(t, base.Delete(models[i].Key))
	}
	models = models[DeleteCount:]

	// sort all remaining key/value pairs, this is our expected result
	sort.Slice(models, func(i, j int) bool {
		return bytes.Compare(models[i].Key, models[j].Key) < 0
	})

	// iterate over everything
	verifyIterator(t, models, openIter(t, base, nil, nil, false))
	// iterate with lower end defined
	verifyIterator(t, models[10:], openIter(t, base, models[10].Key, nil, false))
	// iterate with upper end defined
	verifyIterator(t, models[:Size-8], openIter(t, base, nil, models[Size-8].Key, false))
	// iterate with both ends defined
	verifyIterator(t, models[17:28], openIter(t, base, models[17].Key, models[28].Key, false))

	// and now in reverse....
	verifyIterator(t, reverse(models), openIter(t, base, nil, nil, true))
	// iterate with lower end defined
	verifyIterator(t, reverse(models[34:]),
		openIter(t, base, models[34].Key, nil, true))
	// iterate with upper end defined
	verifyIterator(t, reverse(models[:19]),
		openIter(t, base, nil, models[19].Key, true))
	// iterate with both ends defined
	verifyIterator(t, reverse(models[6:26]),
		openIter(t, base, models[6].Key, models[26].Key, true))
}

// TestBTreeCacheLayeredIterator iterates over ranges that span both the
// parent and child caches, combining values, overwrites, and deletes.
func TestBTreeCacheLayeredIterator(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}
	parent := devnull.CacheWrap()

	expect := make(map[string][]byte)
	for i := 0; i < 40; i++ {
		k, v := randBytes(8), randBytes(16)
		require.NoError(t, parent.Set(k, v))
		expect[string(k)] = v
	}

	child := parent.CacheWrap()
	// overwrite half of the parent's data with new values and delete some
	i := 0
	for k := range expect {
		switch {
		case i%4 == 0:
			v := randBytes(16)
			require.NoError(t, child.Set([]byte(k), v))
			expect[k] = v
		case i%4 == 1:
			require.NoError(t, child.Delete([]byte(k)))
			delete(expect, k)
		}
		i++
	}
	// and add fresh child-only entries
	for i := 0; i < 10; i++ {
		k, v := randBytes(8), randBytes(16)
		require.NoError(t, child.Set(k, v))
		expect[string(k)] = v
	}

	models := make([]Model, 0, len(expect))
	for k, v := range expect {
		models = append(models, pair([]byte(k), v))
	}
	sort.Slice(models, func(i, j int) bool {
		return bytes.Compare(models[i].Key, models[j].Key) < 0
	})

	verifyIterator(t, models, openIter(t, child, nil, nil, false))
	verifyIterator(t, reverse(models), openIter(t, child, nil, nil, true))

	mid := len(models) / 2
	verifyIterator(t, models[:mid], openIter(t, child, nil, models[mid].Key, false))
	verifyIterator(t, models[mid:], openIter(t, child, models[mid].Key, nil, false))
}

func openIter(t *testing.T, kv ReadOnlyKVStore, start, end []byte, reversed bool) Iterator {
	t.Helper()
	var (
		iter Iterator
		err  error
	)
	if reversed {
		iter, err = kv.ReverseIterator(start, end)
	} else {
		iter, err = kv.Iterator(start, end)
	}
	require.NoError(t, err)
	return iter
}

func verifyIterator(t *testing.T, models []Model, iter Iterator) {
	t.Helper()
	// make sure proper iteration works
	for i := 0; i < len(models); i++ {
		key, value, err := iter.Next()
		require.NoError(t, err, "%d", i)
		assert.Equal(t, models[i].Key, key, "%d", i)
		assert.Equal(t, models[i].Value, value, "%d", i)
	}
	_, _, err := iter.Next()
	assert.Error(t, err)
	iter.Release()
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

func mustGet(t *testing.T, store ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func mustHave(t *testing.T, store ReadOnlyKVStore, key []byte, want bool) {
	t.Helper()
	has, err := store.Has(key)
	require.NoError(t, err)
	assert.Equal(t, want, has)
}

func pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// randKeys returns a slice of count keys, all of length
func randKeys(count, length int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(length)
	}
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	rand.Read(res)
	return res
}
