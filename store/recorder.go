package store

// Recorder interface is implemented by anything returned from
// NewRecordingStore
type Recorder interface {
	KVPairs() map[string][]byte
}

// NewRecordingStore initializes a recording store wrapping this
// base store.
//
// The returned store is always cacheable. Cache wraps created from it are
// written back through the recording store, so changes made within a
// nested transactional boundary are recorded once they are committed.
func NewRecordingStore(db KVStore) CacheableKVStore {
	return &recordingStore{
		KVStore: db,
		changes: make(map[string][]byte),
	}
}

// recordingStore wraps a normal KVStore and records any change operations
type recordingStore struct {
	KVStore
	// changes is a map from key to the value written, nil for delete
	changes map[string][]byte
}

var _ CacheableKVStore = (*recordingStore)(nil)
var _ Recorder = (*recordingStore)(nil)

// KVPairs returns the content of changes as KVPairs
// Key is the merkle store key that changes.
// Value is the value writen (for set), or nil (for delete)
func (r *recordingStore) KVPairs() map[string][]byte {
	return r.changes
}

// Set records the changes while performing
func (r *recordingStore) Set(key, value []byte) error {
	if err := r.KVStore.Set(key, value); err != nil {
		return err
	}
	r.changes[string(key)] = value
	return nil
}

// Delete records the changes while performing
func (r *recordingStore) Delete(key []byte) error {
	if err := r.KVStore.Delete(key); err != nil {
		return err
	}
	r.changes[string(key)] = nil
	return nil
}

// NewBatch makes sure all writes go through this one
func (r *recordingStore) NewBatch() Batch {
	return NewNonAtomicBatch(r)
}

// CacheWrap layers a btree cache over the recording store.
func (r *recordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, r.NewBatch(), nil)
}
