package orm

import (
	"bytes"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Indexer calculates the secondary index values of a model. A model may be
// indexed under any number of values, including none.
type Indexer func(Model) ([][]byte, error)

// Index maps index values to the primary keys of the indexed models.
//
// Each (value, primary key) pair is a separate entry stored under
//
//	_i.<bucket>_<index>:<len(value)><value><primary key>
//
// so that all primary keys for a value are found with a single prefix scan.
type Index struct {
	name    string
	prefix  []byte
	indexer Indexer
	unique  bool
}

func newIndex(bucket, name string, indexer Indexer, unique bool) Index {
	return Index{
		name:    name,
		prefix:  []byte("_i." + bucket + "_" + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

func (i Index) valuePrefix(value []byte) []byte {
	p := append([]byte{}, i.prefix...)
	p = append(p, byte(len(value)))
	return append(p, value...)
}

// Keys returns all primary keys indexed under given value, in ascending
// order.
func (i Index) Keys(db barter.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	if len(value) > 255 {
		return nil, errors.Wrap(errors.ErrInput, "index value too long")
	}
	prefix := i.valuePrefix(value)
	models, err := prefixModels(db, prefix, len(prefix))
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, len(models))
	for n, m := range models {
		keys[n] = m.Key
	}
	return keys, nil
}

// Update moves the index entries of a model from its previous to its new
// version. Either of the versions may be nil.
func (i Index) Update(db barter.KVStore, key []byte, prev, next Model) error {
	prevValues, err := i.values(prev)
	if err != nil {
		return err
	}
	nextValues, err := i.values(next)
	if err != nil {
		return err
	}

	for _, v := range prevValues {
		if contains(nextValues, v) {
			continue
		}
		if err := db.Delete(append(i.valuePrefix(v), key...)); err != nil {
			return err
		}
	}
	for _, v := range nextValues {
		if contains(prevValues, v) {
			continue
		}
		if err := db.Set(append(i.valuePrefix(v), key...), []byte{1}); err != nil {
			return err
		}
	}
	return nil
}

// CheckUnique returns ErrDuplicate if a unique index would map a value
// introduced by the next version of a model to more than one primary key.
func (i Index) CheckUnique(db barter.ReadOnlyKVStore, prev, next Model) error {
	if !i.unique {
		return nil
	}
	prevValues, err := i.values(prev)
	if err != nil {
		return err
	}
	nextValues, err := i.values(next)
	if err != nil {
		return err
	}
	for _, v := range nextValues {
		if contains(prevValues, v) {
			continue
		}
		keys, err := i.Keys(db, v)
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			return errors.Wrapf(errors.ErrDuplicate, "unique index value %X", v)
		}
	}
	return nil
}

func (i Index) values(m Model) ([][]byte, error) {
	if m == nil {
		return nil, nil
	}
	values, err := i.indexer(m)
	if err != nil {
		return nil, errors.Wrap(err, "indexer")
	}
	for _, v := range values {
		if len(v) > 255 {
			return nil, errors.Wrap(errors.ErrInput, "index value too long")
		}
	}
	return values, nil
}

func contains(all [][]byte, v []byte) bool {
	for _, a := range all {
		if bytes.Equal(a, v) {
			return true
		}
	}
	return false
}
