// defines the post record and the two shapes derived from it
package models

import (
	"encoding/json"
	"strings"
)

// Post is one record of the monolithic input document.
// Fields are kept as raw JSON so values pass through untouched and an absent
// field stays absent when the record is re-encoded.
type Post struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Slug        json.RawMessage `json:"slug,omitempty"`
	Title       json.RawMessage `json:"title,omitempty"`
	Excerpt     json.RawMessage `json:"excerpt,omitempty"`
	Image       json.RawMessage `json:"image,omitempty"`
	Category    json.RawMessage `json:"category,omitempty"`
	Tags        json.RawMessage `json:"tags,omitempty"`
	Date        json.RawMessage `json:"date,omitempty"`
	LastUpdated json.RawMessage `json:"lastUpdated,omitempty"`
	ReadTime    json.RawMessage `json:"readTime,omitempty"`
	Author      json.RawMessage `json:"author,omitempty"`
	Featured    json.RawMessage `json:"featured,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
}

// IndexEntry is the list-view projection of a Post: every field but Content.
type IndexEntry struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Slug        json.RawMessage `json:"slug,omitempty"`
	Title       json.RawMessage `json:"title,omitempty"`
	Excerpt     json.RawMessage `json:"excerpt,omitempty"`
	Image       json.RawMessage `json:"image,omitempty"`
	Category    json.RawMessage `json:"category,omitempty"`
	Tags        json.RawMessage `json:"tags,omitempty"`
	Date        json.RawMessage `json:"date,omitempty"`
	LastUpdated json.RawMessage `json:"lastUpdated,omitempty"`
	ReadTime    json.RawMessage `json:"readTime,omitempty"`
	Author      json.RawMessage `json:"author,omitempty"`
	Featured    json.RawMessage `json:"featured,omitempty"`
}

// ContentEntry holds the article body of a single post, addressed by slug.
type ContentEntry struct {
	Slug    json.RawMessage `json:"slug,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// Fields lists the record keys in emission order.
var Fields = []string{
	"id", "slug", "title", "excerpt", "image", "category", "tags",
	"date", "lastUpdated", "readTime", "author", "featured", "content",
}

// SlugString returns the slug when it is a JSON string.
func (p Post) SlugString() (string, bool) {
	return rawString(p.Slug)
}

// SlugString returns the slug when it is a JSON string.
func (e IndexEntry) SlugString() (string, bool) {
	return rawString(e.Slug)
}

// SlugString returns the slug when it is a JSON string.
func (c ContentEntry) SlugString() (string, bool) {
	return rawString(c.Slug)
}

// Field returns the raw value of a record key, nil when absent.
func (p Post) Field(name string) json.RawMessage {
	switch name {
	case "id":
		return p.ID
	case "slug":
		return p.Slug
	case "title":
		return p.Title
	case "excerpt":
		return p.Excerpt
	case "image":
		return p.Image
	case "category":
		return p.Category
	case "tags":
		return p.Tags
	case "date":
		return p.Date
	case "lastUpdated":
		return p.LastUpdated
	case "readTime":
		return p.ReadTime
	case "author":
		return p.Author
	case "featured":
		return p.Featured
	case "content":
		return p.Content
	}
	return nil
}

// Index builds the list-view entry by copying the allow-listed fields.
func (p Post) Index() IndexEntry {
	return IndexEntry{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Image:       p.Image,
		Category:    p.Category,
		Tags:        p.Tags,
		Date:        p.Date,
		LastUpdated: p.LastUpdated,
		ReadTime:    p.ReadTime,
		Author:      p.Author,
		Featured:    p.Featured,
	}
}

// ContentEntry builds the per-article body entry.
func (p Post) ContentEntry() ContentEntry {
	return ContentEntry{Slug: p.Slug, Content: p.Content}
}

// Merge reconstructs a full record from its two halves.
// The index entry wins for the slug.
func Merge(e IndexEntry, c ContentEntry) Post {
	return Post{
		ID:          e.ID,
		Slug:        e.Slug,
		Title:       e.Title,
		Excerpt:     e.Excerpt,
		Image:       e.Image,
		Category:    e.Category,
		Tags:        e.Tags,
		Date:        e.Date,
		LastUpdated: e.LastUpdated,
		ReadTime:    e.ReadTime,
		Author:      e.Author,
		Featured:    e.Featured,
		Content:     c.Content,
	}
}

func rawString(raw json.RawMessage) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) < 2 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return "", false
	}
	return s, true
}
