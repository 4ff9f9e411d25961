package load

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion invalidates cached snapshots when the descriptor layout
// changes.
const snapshotVersion = 1

// A SnapshotCache stores loaded schemas between generator runs, keyed by
// a fingerprint of their source. A hit skips re-running the frontends for
// unchanged inputs.
type SnapshotCache struct {
	dir string
}

// NewSnapshotCache returns a cache rooted at dir, creating it if needed.
func NewSnapshotCache(dir string) (*SnapshotCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("load: create cache dir: %w", err)
	}
	return &SnapshotCache{dir: dir}, nil
}

type snapshot struct {
	Version int
	Schema  *Schema
}

// Fingerprint returns the cache key for the given source content.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load returns the cached schema for the key, or ok=false on a miss.
// A snapshot written by an incompatible version counts as a miss.
func (c *SnapshotCache) Load(key string) (s *Schema, ok bool, err error) {
	buf, err := os.ReadFile(c.path(key))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("load: read snapshot: %w", err)
	}
	var snap snapshot
	if err := msgpack.Unmarshal(buf, &snap); err != nil || snap.Version != snapshotVersion {
		// Treat corrupt or outdated snapshots as a miss.
		return nil, false, nil
	}
	return snap.Schema, true, nil
}

// Store writes the schema snapshot under the key.
func (c *SnapshotCache) Store(key string, s *Schema) error {
	buf, err := msgpack.Marshal(snapshot{Version: snapshotVersion, Schema: s})
	if err != nil {
		return fmt.Errorf("load: encode snapshot: %w", err)
	}
	tmp := c.path(key) + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return fmt.Errorf("load: write snapshot: %w", err)
	}
	return os.Rename(tmp, c.path(key))
}

// Evict removes the snapshot for the key, if present.
func (c *SnapshotCache) Evict(key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *SnapshotCache) path(key string) string {
	return filepath.Join(c.dir, key+".drift")
}
