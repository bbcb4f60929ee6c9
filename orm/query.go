package orm

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
)

// bucketQuery serves the models of a bucket by primary key or by primary key
// prefix.
type bucketQuery struct {
	b ModelBucket
}

var _ barter.QueryHandler = bucketQuery{}

func (q bucketQuery) Query(db barter.ReadOnlyKVStore, mod string, data []byte) ([]barter.Model, error) {
	switch mod {
	case barter.KeyQueryMod:
		raw, err := db.Get(q.b.DBKey(data))
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return []barter.Model{barter.Pair(data, raw)}, nil
	case barter.PrefixQueryMod:
		return prefixModels(db, q.b.DBKey(data), len(q.b.prefix))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// indexQuery serves all models indexed under the exact value given.
type indexQuery struct {
	b   ModelBucket
	idx Index
}

var _ barter.QueryHandler = indexQuery{}

func (q indexQuery) Query(db barter.ReadOnlyKVStore, mod string, data []byte) ([]barter.Model, error) {
	if mod != barter.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported index query mod %q", mod)
	}
	keys, err := q.idx.Keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]barter.Model, 0, len(keys))
	for _, key := range keys {
		raw, err := db.Get(q.b.DBKey(key))
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, errors.Wrapf(errors.ErrState, "index points to a missing %s %X", q.b.name, key)
		}
		res = append(res, barter.Pair(key, raw))
	}
	return res, nil
}

// RegisterQuery exposes the raw key value store under "/". Keys are full
// database keys including the bucket prefix.
func RegisterQuery(qr barter.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

var _ barter.QueryHandler = rawQuery{}

func (rawQuery) Query(db barter.ReadOnlyKVStore, mod string, data []byte) ([]barter.Model, error) {
	switch mod {
	case barter.KeyQueryMod:
		raw, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return []barter.Model{barter.Pair(data, raw)}, nil
	case barter.PrefixQueryMod:
		it, err := db.Iterator(data, store.PrefixEnd(data))
		if err != nil {
			return nil, errors.Wrap(err, "iterator")
		}
		return ConsumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}
