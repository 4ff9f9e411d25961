package load

import (
	"os"
	"testing"

	"github.com/Leylan24/drift/sqltype"

	"github.com/stretchr/testify/require"
)

func TestSnapshotCache(t *testing.T) {
	require := require.New(t)

	cache, err := NewSnapshotCache(t.TempDir())
	require.NoError(err)

	key := Fingerprint([]byte("CREATE TABLE users (id INTEGER NOT NULL);"))
	require.Len(key, 64)

	_, ok, err := cache.Load(key)
	require.NoError(err)
	require.False(ok)

	s := &Schema{
		Name: "app",
		Tables: []*Table{{
			Name:    "users",
			Columns: []*Column{{Name: "id", Type: sqltype.TypeInt}},
		}},
	}
	require.NoError(cache.Store(key, s))

	got, ok, err := cache.Load(key)
	require.NoError(err)
	require.True(ok)
	require.Equal(s, got)

	require.NoError(cache.Evict(key))
	_, ok, err = cache.Load(key)
	require.NoError(err)
	require.False(ok)
	// Evicting a missing key is not an error.
	require.NoError(cache.Evict(key))
}

func TestSnapshotCacheCorrupt(t *testing.T) {
	require := require.New(t)

	cache, err := NewSnapshotCache(t.TempDir())
	require.NoError(err)

	key := Fingerprint([]byte("x"))
	require.NoError(os.WriteFile(cache.path(key), []byte("not msgpack"), 0o644))

	// Corrupt snapshots count as a miss, not an error.
	_, ok, err := cache.Load(key)
	require.NoError(err)
	require.False(ok)
}

func TestFingerprintStable(t *testing.T) {
	require := require.New(t)

	require.Equal(Fingerprint([]byte("a")), Fingerprint([]byte("a")))
	require.NotEqual(Fingerprint([]byte("a")), Fingerprint([]byte("b")))
}
