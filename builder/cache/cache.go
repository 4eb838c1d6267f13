package cache

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ManifestFile is the BoltDB file name inside the cache directory
const ManifestFile = "manifest.db"

// Manager provides the manifest interface
type Manager struct {
	db       *bolt.DB
	basePath string
}

// Open opens or creates a manifest at the given directory
func Open(basePath string, timeout time.Duration) (*Manager, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := &bolt.Options{
		Timeout:      timeout,
		FreelistType: bolt.FreelistArrayType,
	}

	db, err := bolt.Open(filepath.Join(basePath, ManifestFile), 0644, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	m := &Manager{db: db, basePath: basePath}
	if err := m.initSchema(); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return m, nil
}

// Close closes the manifest
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Path returns the cache directory
func (m *Manager) Path() string {
	return m.basePath
}

// initSchema creates all buckets if they don't exist
func (m *Manager) initSchema() error {
	return m.db.Update(func(tx *bolt.Tx) error {
		for _, name := range AllBuckets() {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}

		meta := tx.Bucket([]byte(BucketMeta))
		if meta.Get([]byte(KeySchemaVersion)) == nil {
			v := make([]byte, 4)
			binary.BigEndian.PutUint32(v, SchemaVersion)
			if err := meta.Put([]byte(KeySchemaVersion), v); err != nil {
				return err
			}
		}

		return nil
	})
}

// SchemaVersion reads the stored schema version
func (m *Manager) SchemaVersion() (uint32, error) {
	var version uint32
	err := m.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(BucketMeta)).Get([]byte(KeySchemaVersion))
		if len(v) == 4 {
			version = binary.BigEndian.Uint32(v)
		}
		return nil
	})
	return version, err
}
