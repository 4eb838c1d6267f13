package cache

import (
	bolt "go.etcd.io/bbolt"
)

// getItem retrieves a msgpack-encoded item from a bucket, nil when absent
func getItem[T any](db *bolt.DB, bucketName string, key []byte) (*T, error) {
	var result *T
	err := db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return nil
		}
		data := bucket.Get(key)
		if data == nil {
			return nil
		}

		var item T
		if err := Decode(data, &item); err != nil {
			return err
		}
		result = &item
		return nil
	})
	return result, err
}

// putItem stores a msgpack-encoded item
func putItem[T any](db *bolt.DB, bucketName string, key []byte, value *T) error {
	data, err := Encode(value)
	if err != nil {
		return err
	}
	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return bucket.Put(key, data)
	})
}

// GetContent returns the manifest entry for a slug
func (m *Manager) GetContent(slug string) (*ContentMeta, error) {
	return getItem[ContentMeta](m.db, BucketContent, []byte(slug))
}

// AllContent returns every manifest entry keyed by slug
func (m *Manager) AllContent() (map[string]*ContentMeta, error) {
	result := make(map[string]*ContentMeta)
	err := m.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketContent))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var meta ContentMeta
			if err := Decode(v, &meta); err != nil {
				return err
			}
			result[string(k)] = &meta
			return nil
		})
	})
	return result, err
}

// BatchPut writes all entries in a single transaction
func (m *Manager) BatchPut(metas []*ContentMeta) error {
	if len(metas) == 0 {
		return nil
	}

	encoded := make([][]byte, len(metas))
	for i, meta := range metas {
		data, err := Encode(meta)
		if err != nil {
			return err
		}
		encoded[i] = data
	}

	return m.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketContent))
		for i, meta := range metas {
			if err := bucket.Put([]byte(meta.Slug), encoded[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteContent removes entries for the given slugs
func (m *Manager) DeleteContent(slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}
	return m.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketContent))
		for _, slug := range slugs {
			if err := bucket.Delete([]byte(slug)); err != nil {
				return err
			}
		}
		return nil
	})
}

// LastRun returns the previous run record, nil on the first run
func (m *Manager) LastRun() (*RunRecord, error) {
	return getItem[RunRecord](m.db, BucketRuns, []byte(KeyLastRun))
}

// SetLastRun replaces the previous run record
func (m *Manager) SetLastRun(rec *RunRecord) error {
	return putItem(m.db, BucketRuns, []byte(KeyLastRun), rec)
}

// Count returns the number of content entries
func (m *Manager) Count() (int, error) {
	var n int
	err := m.db.View(func(tx *bolt.Tx) error {
		if bucket := tx.Bucket([]byte(BucketContent)); bucket != nil {
			n = bucket.Stats().KeyN
		}
		return nil
	})
	return n, err
}
