package store

import (
	"bytes"

	"github.com/google/btree"
)

// mergeIterator combines the iterator of the backing store with the items
// cached in a btree. Cached items shadow the parent: a cached value
// replaces the parent value and a cached deletion hides it.
type mergeIterator struct {
	parent  Iterator
	cache   []btree.Item
	idx     int
	reverse bool

	valid bool
	key   []byte
	value []byte
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(parent Iterator, cache []btree.Item, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{
		parent:  parent,
		cache:   cache,
		reverse: reverse,
	}
	if err := it.advance(); err != nil {
		parent.Close()
		return nil, err
	}
	return it, nil
}

// advance moves to the next visible entry.
func (it *mergeIterator) advance() error {
	for {
		parentValid := it.parent.Valid()
		cacheValid := it.idx < len(it.cache)

		if !parentValid && !cacheValid {
			it.valid = false
			it.key, it.value = nil, nil
			return nil
		}

		useParent := parentValid && !cacheValid
		if parentValid && cacheValid {
			cmp := bytes.Compare(it.parent.Key(), it.cache[it.idx].(keyer).Key())
			if it.reverse {
				cmp = -cmp
			}
			if cmp < 0 {
				useParent = true
			} else if cmp == 0 {
				// Cache shadows the parent entry.
				if err := it.parent.Next(); err != nil {
					return err
				}
			}
		}

		if useParent {
			it.key, it.value = it.parent.Key(), it.parent.Value()
			it.valid = true
			return it.parent.Next()
		}

		item := it.cache[it.idx]
		it.idx++
		if set, ok := item.(setItem); ok {
			it.key, it.value = set.key, set.value
			it.valid = true
			return nil
		}
		// Deleted item, skip it.
	}
}

// Valid implements Iterator.
func (it *mergeIterator) Valid() bool {
	return it.valid
}

// Next implements Iterator.
func (it *mergeIterator) Next() error {
	if !it.valid {
		panic("iterator is not valid")
	}
	return it.advance()
}

// Key implements Iterator.
func (it *mergeIterator) Key() []byte {
	if !it.valid {
		panic("iterator is not valid")
	}
	return it.key
}

// Value implements Iterator.
func (it *mergeIterator) Value() []byte {
	if !it.valid {
		panic("iterator is not valid")
	}
	return it.value
}

// Close implements Iterator.
func (it *mergeIterator) Close() {
	it.parent.Close()
	it.cache = nil
	it.valid = false
}
