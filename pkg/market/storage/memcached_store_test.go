package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemCachedGetShadowing(t *testing.T) {
	ps := NewMemoryStore()
	require.NoError(t, ps.Put([]byte("lower"), []byte("1")))
	require.NoError(t, ps.Put([]byte("gone"), []byte("2")))

	ts := NewMemCachedStore(ps)
	require.NoError(t, ts.Put([]byte("upper"), []byte("3")))
	require.NoError(t, ts.Delete([]byte("gone")))

	// Values fall through to the lower layer.
	v, err := ts.Get([]byte("lower"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	// Cached writes shadow it.
	v, err = ts.Get([]byte("upper"))
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), v)

	// Cached deletes hide persisted values.
	_, err = ts.Get([]byte("gone"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = ps.Get([]byte("gone"))
	assert.NoError(t, err)
}

func TestMemCachedPersist(t *testing.T) {
	ps := NewMemoryStore()
	require.NoError(t, ps.Put([]byte("gone"), []byte("2")))

	ts := NewMemCachedStore(ps)
	require.NoError(t, ts.Put([]byte("key"), []byte("val")))
	require.NoError(t, ts.Delete([]byte("gone")))

	n, err := ts.Persist()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// The lower layer now has the changes.
	v, err := ps.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("val"), v)
	_, err = ps.Get([]byte("gone"))
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Nothing left to flush.
	n, err = ts.Persist()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMemCachedDiscard(t *testing.T) {
	ps := NewMemoryStore()
	ts := NewMemCachedStore(ps)
	require.NoError(t, ts.Put([]byte("key"), []byte("val")))

	// Dropping the wrapper without Persist leaves the lower layer alone.
	_, err := ps.Get([]byte("key"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemCachedSeek(t *testing.T) {
	ps := NewMemoryStore()
	require.NoError(t, ps.Put([]byte{0x10, 0x01}, []byte("lower")))
	require.NoError(t, ps.Put([]byte{0x10, 0x02}, []byte("shadowed")))
	require.NoError(t, ps.Put([]byte{0x10, 0x03}, []byte("deleted")))

	ts := NewMemCachedStore(ps)
	require.NoError(t, ts.Put([]byte{0x10, 0x02}, []byte("upper")))
	require.NoError(t, ts.Delete([]byte{0x10, 0x03}))

	got := make(map[byte]string)
	ts.Seek([]byte{0x10}, func(k, v []byte) {
		got[k[1]] = string(v)
	})
	assert.Equal(t, map[byte]string{
		0x01: "lower",
		0x02: "upper",
	}, got)
}

func TestMemCachedNestedLayers(t *testing.T) {
	ps := NewMemoryStore()
	mid := NewMemCachedStore(ps)
	top := NewMemCachedStore(mid)

	require.NoError(t, top.Put([]byte("key"), []byte("val")))

	// Persisting the top layer lands in the middle one only.
	_, err := top.Persist()
	require.NoError(t, err)

	v, err := mid.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("val"), v)
	_, err = ps.Get([]byte("key"))
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = mid.Persist()
	require.NoError(t, err)
	v, err = ps.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("val"), v)
}
