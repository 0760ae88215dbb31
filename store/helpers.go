package store

import "github.com/HPrieto/crypto-sneakers/errors"

//////////////////////////////////////////////
// Empty KVStore

// EmptyKVStore never holds any data, used as a base layer to test caching.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (e EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

func (e EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

func (e EmptyKVStore) Set(key, value []byte) error { return nil }

func (e EmptyKVStore) Delete(key []byte) error { return nil }

func (e EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }

////////////////////////////////////////////////////
// Non-atomic batch (dummy implementation)

type opKind int32

const (
	setKind opKind = iota + 1
	delKind
)

// Op is either set or delete.
type Op struct {
	kind  opKind
	key   []byte
	value []byte // only for set
}

// Apply performs the stored operation on a writable store.
func (o Op) Apply(out SetDeleter) error {
	switch o.kind {
	case setKind:
		return out.Set(o.key, o.value)
	case delKind:
		return out.Delete(o.key)
	default:
		return errors.Wrapf(errors.ErrDatabase, "unknown op kind: %d", o.kind)
	}
}

// IsSetOp returns true if it is setting (false implies delete).
func (o Op) IsSetOp() bool {
	return o.kind == setKind
}

// Key of the modified entry.
func (o Op) Key() []byte {
	return o.key
}

// SetOp is a helper to create a set operation.
func SetOp(key, value []byte) Op {
	return Op{
		kind:  setKind,
		key:   key,
		value: value,
	}
}

// DelOp is a helper to create a del operation.
func DelOp(key []byte) Op {
	return Op{
		kind: delKind,
		key:  key,
	}
}

// NonAtomicBatch just piles up ops and executes them later on the underlying
// store. Can be used when there is no better option (for in-memory stores).
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch to be later written to the
// KVStore.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

// Set adds a set operation to the batch.
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

// Delete adds a delete operation to the batch.
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write writes all the ops to the underlying store and resets the batch.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// ShowOps returns a copy of the pending operations, for testing.
func (b *NonAtomicBatch) ShowOps() []Op {
	ops := make([]Op, len(b.ops))
	copy(ops, b.ops)
	return ops
}
