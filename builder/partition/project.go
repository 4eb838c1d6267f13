package partition

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/Kush-Singh-26/postsplit/builder/models"
	"github.com/Kush-Singh-26/postsplit/builder/utils"
)

// IndexIndent matches a two-space pretty printer.
const IndexIndent = "  "

var errNotArray = errors.New("input is not a JSON array")

// Decode parses the monolithic document into posts.
func Decode(data []byte) ([]models.Post, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}

	var posts []models.Post
	if err := json.Unmarshal(trimmed, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// Project builds the list-view entries in input order. Never nil.
func Project(posts []models.Post) []models.IndexEntry {
	entries := make([]models.IndexEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, p.Index())
	}
	return entries
}

// Contents maps each post to its body entry in input order.
func Contents(posts []models.Post) []models.ContentEntry {
	out := make([]models.ContentEntry, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ContentEntry())
	}
	return out
}

// EncodeIndex renders the index document, pretty-printed unless compact.
func EncodeIndex(entries []models.IndexEntry, compact bool) ([]byte, error) {
	if entries == nil {
		entries = []models.IndexEntry{}
	}
	pretty, err := utils.MarshalJSON(entries, IndexIndent)
	if err != nil {
		return nil, err
	}
	if !compact {
		return pretty, nil
	}
	return utils.MinifyJSON(pretty)
}

// EncodeContent renders one compact content file.
func EncodeContent(entry models.ContentEntry) ([]byte, error) {
	return utils.MarshalJSON(entry, "")
}

// ContentFileName is the file a slug's body is stored in.
func ContentFileName(slug string) string {
	return slug + ".json"
}
