package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	discarded := base.CacheWrap()
	require.NoError(t, discarded.Set([]byte("b"), []byte("2")))
	require.NoError(t, discarded.Delete([]byte("a")))
	assertGet(t, discarded, "a", nil)
	assertGet(t, discarded, "b", []byte("2"))
	discarded.Discard()

	assertGet(t, base, "a", []byte("1"))
	assertGet(t, base, "b", nil)

	written := base.CacheWrap()
	require.NoError(t, written.Set([]byte("b"), []byte("2")))
	require.NoError(t, written.Delete([]byte("a")))
	require.NoError(t, written.Write())

	assertGet(t, base, "a", nil)
	assertGet(t, base, "b", []byte("2"))

	ok, err := base.Has([]byte("b"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = base.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	require.NoError(t, inner.Set([]byte("k"), []byte("v")))
	assertGet(t, outer, "k", nil)

	require.NoError(t, inner.Write())
	assertGet(t, outer, "k", []byte("v"))
	assertGet(t, base, "k", nil)

	require.NoError(t, outer.Write())
	assertGet(t, base, "k", []byte("v"))
}

func TestIteratorMergesLayers(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Set([]byte("e"), []byte("cache-e")))
	require.NoError(t, cache.Delete([]byte("c")))
	require.NoError(t, cache.Delete([]byte("x")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		wantKeys   []string
		wantValues []string
	}{
		"everything ascending": {
			wantKeys:   []string{"a", "b", "e", "g"},
			wantValues: []string{"base-a", "cache-b", "cache-e", "base-g"},
		},
		"everything descending": {
			reverse:    true,
			wantKeys:   []string{"g", "e", "b", "a"},
			wantValues: []string{"base-g", "cache-e", "cache-b", "base-a"},
		},
		"bounded range": {
			start:      []byte("b"),
			end:        []byte("g"),
			wantKeys:   []string{"b", "e"},
			wantValues: []string{"cache-b", "cache-e"},
		},
		"bounded range descending": {
			start:      []byte("b"),
			end:        []byte("g"),
			reverse:    true,
			wantKeys:   []string{"e", "b"},
			wantValues: []string{"cache-e", "cache-b"},
		},
		"open end": {
			start:      []byte("f"),
			wantKeys:   []string{"g"},
			wantValues: []string{"base-g"},
		},
		"empty range": {
			start: []byte("h"),
			end:   []byte("z"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer it.Close()

			var keys, values []string
			for ; it.Valid(); require.NoError(t, it.Next()) {
				keys = append(keys, string(it.Key()))
				values = append(values, string(it.Value()))
			}
			assert.Equal(t, tc.wantKeys, keys)
			assert.Equal(t, tc.wantValues, values)
		})
	}
}

func TestRecordingStore(t *testing.T) {
	rec := NewRecordingStore(MemStore())
	require.NoError(t, rec.Set([]byte("a"), []byte("1")))

	cache := rec.CacheWrap()
	require.NoError(t, cache.Delete([]byte("a")))
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))

	discarded := rec.CacheWrap()
	require.NoError(t, discarded.Set([]byte("c"), []byte("3")))
	discarded.Discard()

	require.NoError(t, cache.Write())

	changes := rec.(Recorder).KVPairs()
	assert.Equal(t, map[string][]byte{
		"a": nil,
		"b": []byte("2"),
	}, changes)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("offes"), PrefixEnd([]byte("offer")))
	assert.Equal(t, []byte{0x01}, PrefixEnd([]byte{0x00, 0xFF}))
	assert.Nil(t, PrefixEnd([]byte{0xFF, 0xFF}))
}

func assertGet(t testing.TB, db ReadOnlyKVStore, key string, want []byte) {
	t.Helper()
	got, err := db.Get([]byte(key))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
