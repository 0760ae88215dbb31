package store

import (
	sneakers "github.com/HPrieto/crypto-sneakers"
)

// Move references for all storage types into this package for shorter names
// everywhere.

type ReadOnlyKVStore = sneakers.ReadOnlyKVStore
type KVStore = sneakers.KVStore
type Iterator = sneakers.Iterator
type SetDeleter = sneakers.SetDeleter
type Batch = sneakers.Batch
type CacheableKVStore = sneakers.CacheableKVStore
type KVCacheWrap = sneakers.KVCacheWrap
type CommitKVStore = sneakers.CommitKVStore
type CommitID = sneakers.CommitID
type Model = sneakers.Model
