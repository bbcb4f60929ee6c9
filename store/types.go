/*
Package store provides the in-memory implementations of the barter store
interfaces. The btree cache wrap is the transactional boundary used by the
application: every transaction and every atomic multi step operation runs
against a cache wrap that is either written to its parent or discarded.
*/
package store

import "github.com/iov-one/barter"

// Aliases of the store interfaces so that the implementations read well.
type (
	ReadOnlyKVStore  = barter.ReadOnlyKVStore
	SetDeleter       = barter.SetDeleter
	KVStore          = barter.KVStore
	Batch            = barter.Batch
	Iterator         = barter.Iterator
	CacheableKVStore = barter.CacheableKVStore
	KVCacheWrap      = barter.KVCacheWrap
	CommitKVStore    = barter.CommitKVStore
	CommitID         = barter.CommitID
	Model            = barter.Model
)
