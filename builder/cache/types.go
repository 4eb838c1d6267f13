// Package cache keeps a BoltDB manifest of the content files a partition run wrote.
// It drives change reporting and pruning; it never changes output bytes.
package cache

import (
	"encoding/hex"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"
)

// ContentMeta describes one content file as last written
type ContentMeta struct {
	Slug      string `msgpack:"slug"`
	File      string `msgpack:"file"`
	Hash      string `msgpack:"hash"` // BLAKE3 of the file bytes
	Size      int64  `msgpack:"size"`
	UpdatedAt int64  `msgpack:"updated_at"`
}

// RunRecord summarizes the previous run
type RunRecord struct {
	InputHash string `msgpack:"input_hash"`
	IndexHash string `msgpack:"index_hash"`
	Posts     int    `msgpack:"posts"`
	Written   int    `msgpack:"written"`
	Skipped   int    `msgpack:"skipped"`
	Pruned    int    `msgpack:"pruned"`
	RunAt     int64  `msgpack:"run_at"`
}

const SchemaVersion = 1

// HashContent computes BLAKE3 hash of content and returns hex string
func HashContent(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Encode serializes a value to msgpack bytes
func Encode(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode deserializes msgpack bytes to a value
func Decode(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}
