package orm

import (
	"bytes"

	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index value for a given model. Returning
// a nil value means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// uniqueIndex maintains a secondary index with a unique constraint. Each
// indexed value points to exactly one primary key. Inserting a second model
// with the same index value fails with ErrDuplicate.
type uniqueIndex struct {
	name  string
	id    []byte
	index Indexer
}

func newUniqueIndex(bucket, name string, indexer Indexer) uniqueIndex {
	return uniqueIndex{
		name:  name,
		id:    []byte(indexPrefix + bucket + ":" + name + ":"),
		index: indexer,
	}
}

// indexKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i uniqueIndex) indexKey(value []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(value))
	copy(out, i.id)
	copy(out[l:], value)
	return out
}

// pk returns the primary key stored under the given index value, or nil
// when nothing is indexed there.
func (i uniqueIndex) pk(db sneakers.ReadOnlyKVStore, value []byte) ([]byte, error) {
	if len(value) == 0 {
		return nil, nil
	}
	return db.Get(i.indexKey(value))
}

// update moves the index entry when the indexed value changed between
// prev and next state of the model stored under pk. Either model may be
// nil, meaning insert or delete respectively.
func (i uniqueIndex) update(db sneakers.KVStore, prev, next Model, pk []byte) error {
	var prevVal, nextVal []byte
	var err error
	if prev != nil {
		if prevVal, err = i.index(prev); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if next != nil {
		if nextVal, err = i.index(next); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if bytes.Equal(prevVal, nextVal) {
		return nil
	}
	if err := i.insert(db, nextVal, pk); err != nil {
		return err
	}
	return i.remove(db, prevVal, pk)
}

func (i uniqueIndex) insert(db sneakers.KVStore, value, pk []byte) error {
	// don't deal with empty values
	if len(value) == 0 {
		return nil
	}
	key := i.indexKey(value)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur != nil && !bytes.Equal(cur, pk) {
		return errors.Wrap(errors.ErrDuplicate, i.name)
	}
	return db.Set(key, pk)
}

func (i uniqueIndex) remove(db sneakers.KVStore, value, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	key := i.indexKey(value)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	// if something else is here, don't delete
	if !bytes.Equal(cur, pk) {
		return nil
	}
	return db.Delete(key)
}
