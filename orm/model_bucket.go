package orm

import (
	"reflect"
	"regexp"

	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
)

// isBucketName ensures a-z and 0-9 only, to avoid collisions with the
// internal prefixes (sequences, indexes).
var isBucketName = regexp.MustCompile(`^[a-z0-9]{1,20}$`).MatchString

// ModelBucket is implemented by buckets that operate on Models rather than
// raw bytes.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db sneakers.ReadOnlyKVStore, key []byte, dest Model) error

	// OneByIndex queries the database for a single model instance, looked
	// up by the value of a registered unique index. It returns the primary
	// key of the found entity, or ErrNotFound.
	OneByIndex(db sneakers.ReadOnlyKVStore, indexName string, value []byte, dest Model) ([]byte, error)

	// Put saves the given model in the database under the given primary
	// key, maintaining all registered indexes.
	Put(db sneakers.KVStore, key []byte, m Model) error

	// Delete removes an entity with the given primary key from the
	// database. It returns ErrNotFound if an entity with the given key
	// does not exist.
	Delete(db sneakers.KVStore, key []byte) error

	// Has returns nil if an entity with the given primary key exists, and
	// ErrNotFound otherwise.
	Has(db sneakers.ReadOnlyKVStore, key []byte) error

	// Register registers this bucket and all its indexes under the given
	// query path.
	Register(name string, r sneakers.QueryRouter)
}

// ModelBucketOption configures a bucket on creation.
type ModelBucketOption func(mb *modelBucket)

// WithUniqueIndex configures a secondary index with a unique constraint.
// Writing two models with the same index value fails with ErrDuplicate.
func WithUniqueIndex(name string, indexer Indexer) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.indexes = append(mb.indexes, newUniqueIndex(mb.name, name, indexer))
	}
}

// NewModelBucket returns a ModelBucket instance storing entities of the same
// type as the given model.
func NewModelBucket(name string, model Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	mb := &modelBucket{
		name:   name,
		prefix: []byte(name + ":"),
		model:  reflect.TypeOf(model).Elem(),
	}
	for _, opt := range opts {
		opt(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes []uniqueIndex
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey returns the full database key for the primary key.
func (mb *modelBucket) dbKey(key []byte) []byte {
	l := len(mb.prefix)
	out := make([]byte, l+len(key))
	copy(out, mb.prefix)
	copy(out[l:], key)
	return out
}

// new returns a fresh model instance of the type this bucket holds.
func (mb *modelBucket) new() Model {
	return reflect.New(mb.model).Interface().(Model)
}

func (mb *modelBucket) One(db sneakers.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	return nil
}

func (mb *modelBucket) OneByIndex(db sneakers.ReadOnlyKVStore, indexName string, value []byte, dest Model) ([]byte, error) {
	idx, err := mb.index(indexName)
	if err != nil {
		return nil, err
	}
	pk, err := idx.pk(db, value)
	if err != nil {
		return nil, err
	}
	if pk == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no %T indexed under %q", dest, indexName)
	}
	if err := mb.One(db, pk, dest); err != nil {
		return nil, err
	}
	return pk, nil
}

func (mb *modelBucket) index(name string) (uniqueIndex, error) {
	for _, idx := range mb.indexes {
		if idx.name == name {
			return idx, nil
		}
	}
	return uniqueIndex{}, errors.Wrapf(errors.ErrDatabase, "no index with name %q", name)
}

func (mb *modelBucket) Put(db sneakers.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}

	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, prev, m, key); err != nil {
			return err
		}
	}

	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db sneakers.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "no entity under key %X", key)
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, prev, nil, key); err != nil {
			return err
		}
	}
	return db.Delete(mb.dbKey(key))
}

func (mb *modelBucket) Has(db sneakers.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "no entity under key %X", key)
	}
	return nil
}

// load returns the stored model under the key, or nil when not present.
func (mb *modelBucket) load(db sneakers.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	m := mb.new()
	if err := m.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal into %T", m)
	}
	return m, nil
}

func (mb *modelBucket) Register(name string, r sneakers.QueryRouter) {
	root := "/" + name
	r.Register(root, bucketQuery{mb: mb})
	for _, idx := range mb.indexes {
		r.Register(root+"/"+idx.name, indexQuery{mb: mb, idx: idx})
	}
}

// bucketQuery handles queries against the primary key of a bucket.
type bucketQuery struct {
	mb *modelBucket
}

var _ sneakers.QueryHandler = bucketQuery{}

func (q bucketQuery) Query(db sneakers.ReadOnlyKVStore, mod string, data []byte) ([]sneakers.Model, error) {
	switch mod {
	case sneakers.KeyQueryMod:
		key := q.mb.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []sneakers.Model{sneakers.Pair(key, value)}, nil
	case sneakers.PrefixQueryMod:
		return queryPrefix(db, q.mb.dbKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
	}
}

// indexQuery resolves index lookups to the models they reference.
type indexQuery struct {
	mb  *modelBucket
	idx uniqueIndex
}

var _ sneakers.QueryHandler = indexQuery{}

func (q indexQuery) Query(db sneakers.ReadOnlyKVStore, mod string, data []byte) ([]sneakers.Model, error) {
	if mod != sneakers.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod: %q", mod)
	}
	pk, err := q.idx.pk(db, data)
	if err != nil {
		return nil, err
	}
	if pk == nil {
		return nil, nil
	}
	key := q.mb.dbKey(pk)
	value, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return []sneakers.Model{sneakers.Pair(key, value)}, nil
}

// queryPrefix returns all models with keys that begin with the given prefix.
func queryPrefix(db sneakers.ReadOnlyKVStore, prefix []byte) ([]sneakers.Model, error) {
	start, end := prefixRange(prefix)
	iter, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer iter.Release()

	var res []sneakers.Model
	for {
		key, value, err := iter.Next()
		switch {
		case err == nil:
			res = append(res, sneakers.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}
