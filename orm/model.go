package orm

import (
	"reflect"
	"regexp"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is impelemented by any entity that can be stored using ModelBucket.
type Model interface {
	barter.Persistent
	Validate() error
}

// ModelBucket stores Models of a single type under a common prefix.
type ModelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]Index
}

// ModelBucketOption configures a ModelBucket.
type ModelBucketOption func(*ModelBucket)

// WithIndex declares a secondary index maintained by the bucket on every
// write.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(b *ModelBucket) {
		if _, ok := b.indexes[name]; ok {
			panic(errors.Wrapf(errors.ErrDuplicate, "index %q", name))
		}
		b.indexes[name] = newIndex(b.name, name, indexer, unique)
	}
}

// NewModelBucket returns a ModelBucket instance that stores models of the
// same type as given example model.
func NewModelBucket(name string, example Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(errors.Wrapf(errors.ErrInput, "bucket name %q", name))
	}
	b := ModelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   reflect.TypeOf(example),
		indexes: make(map[string]Index),
	}
	for _, fn := range opts {
		fn(&b)
	}
	return b
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key used by the database for given primary key.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// One query the database for a single model instance. Lookup is done by the
// primary index key. Result is loaded into given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
// If given model type cannot be used to contain stored entity, ErrType is
// returned.
func (b ModelBucket) One(db barter.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != b.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, b.model)
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", b.name, err)
	}
	return nil
}

// Has returns nil if an entity with given primary key exists, and
// ErrNotFound otherwise.
func (b ModelBucket) Has(db barter.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return nil
}

// Put saves given model in the database, replacing any model stored under
// the same key. Indexes are updated.
func (b ModelBucket) Put(db barter.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != b.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, b.name)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "primary key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}

	var old Model
	if raw, err := db.Get(b.DBKey(key)); err != nil {
		return errors.Wrap(err, "cannot read from the database")
	} else if raw != nil {
		old = reflect.New(b.model.Elem()).Interface().(Model)
		if err := proto.Unmarshal(raw, old); err != nil {
			return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", b.name, err)
		}
	}

	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	// All unique constraints are verified before anything is written.
	indexes := b.sortedIndexes()
	for _, idx := range indexes {
		if err := idx.CheckUnique(db, old, m); err != nil {
			return errors.Wrapf(err, "index %q", idx.name)
		}
	}
	for _, idx := range indexes {
		if err := idx.Update(db, key, old, m); err != nil {
			return errors.Wrapf(err, "index %q", idx.name)
		}
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Insert saves given model in the database only if no other model is
// stored under the same key. It returns ErrDuplicate otherwise.
func (b ModelBucket) Insert(db barter.KVStore, key []byte, m Model) error {
	switch err := b.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "%s %X", b.name, key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Put(db, key, m)
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db barter.KVStore, key []byte) error {
	old := reflect.New(b.model.Elem()).Interface().(Model)
	if err := b.One(db, key, old); err != nil {
		return err
	}
	for _, idx := range b.sortedIndexes() {
		if err := idx.Update(db, key, old, nil); err != nil {
			return errors.Wrapf(err, "index %q", idx.name)
		}
	}
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

// ByIndex returns all models that given index maps the value to. The
// destination must be a pointer to a slice of models, for example
// *[]*Offer or *[]Offer. Primary keys of the loaded models are returned in
// the same order.
func (b ModelBucket) ByIndex(db barter.ReadOnlyKVStore, indexName string, value []byte, destination interface{}) ([][]byte, error) {
	idx, ok := b.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown index %q", indexName)
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to a slice of models")
	}
	slice := dest.Elem()
	elemType := slice.Type().Elem()
	byPointer := elemType == b.model
	if !byPointer && reflect.PtrTo(elemType) != b.model {
		return nil, errors.Wrapf(errors.ErrType, "%s cannot hold %s", slice.Type(), b.model)
	}

	keys, err := idx.Keys(db, value)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		m := reflect.New(b.model.Elem())
		if err := b.One(db, key, m.Interface().(Model)); err != nil {
			return nil, errors.Wrap(err, "index points to a missing model")
		}
		if byPointer {
			slice = reflect.Append(slice, m)
		} else {
			slice = reflect.Append(slice, m.Elem())
		}
	}
	dest.Elem().Set(slice)
	return keys, nil
}

// sortedIndexes returns the indexes in a stable order, so that the write
// order into the store is deterministic.
func (b ModelBucket) sortedIndexes() []Index {
	names := make([]string, 0, len(b.indexes))
	for name := range b.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	res := make([]Index, len(names))
	for i, n := range names {
		res[i] = b.indexes[n]
	}
	return res
}

// Register the bucket and all of its indexes with the query router.
// The bucket itself is available under "/name" and each index under
// "/name/index".
func (b ModelBucket) Register(name string, r barter.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, bucketQuery{b: b})
	for iname, idx := range b.indexes {
		r.Register(root+"/"+iname, indexQuery{b: b, idx: idx})
	}
}

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(it barter.Iterator) ([]barter.Model, error) {
	defer it.Close()

	var res []barter.Model
	for it.Valid() {
		res = append(res, barter.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, errors.Wrap(err, "iterator")
		}
	}
	return res, nil
}

// prefixModels returns all models stored under given key prefix, with the
// first strip bytes removed from the keys.
func prefixModels(db barter.ReadOnlyKVStore, prefix []byte, strip int) ([]barter.Model, error) {
	it, err := db.Iterator(prefix, store.PrefixEnd(prefix))
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	models, err := ConsumeIterator(it)
	if err != nil {
		return nil, err
	}
	for i := range models {
		models[i].Key = models[i].Key[strip:]
	}
	return models, nil
}
