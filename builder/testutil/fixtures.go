// Package testutil provides testing utilities and fixtures
package testutil

import (
	"fmt"
	"strings"

	"github.com/Kush-Singh-26/postsplit/builder/config"
)

// ScenarioInput is a single well-formed record with every field present.
const ScenarioInput = `[{"id":1,"slug":"a","title":"A","excerpt":"e","image":"i.png","category":"c","tags":["t"],"date":"2024-01-01","lastUpdated":"2024-01-01","readTime":"3 min","author":"X","featured":false,"content":"Full body text."}]`

// ScenarioIndex is the pretty-printed index ScenarioInput splits into.
const ScenarioIndex = `[
  {
    "id": 1,
    "slug": "a",
    "title": "A",
    "excerpt": "e",
    "image": "i.png",
    "category": "c",
    "tags": [
      "t"
    ],
    "date": "2024-01-01",
    "lastUpdated": "2024-01-01",
    "readTime": "3 min",
    "author": "X",
    "featured": false
  }
]`

// ScenarioContent is the content file of slug "a".
const ScenarioContent = `{"slug":"a","content":"Full body text."}`

// SamplePost renders one complete record as JSON.
func SamplePost(id int, slug string) string {
	return fmt.Sprintf(`{"id":%d,"slug":%q,"title":"Post %d","excerpt":"Excerpt %d","image":"/img/%s.png","category":"design","tags":["ui","motion"],"date":"2024-03-%02d","lastUpdated":"2024-04-01","readTime":"%d min","author":"Studio","featured":%t,"content":"<h2>Heading</h2><p>Body of %s & more.</p>"}`,
		id, slug, id, id, slug, id%28+1, id%9+1, id%3 == 0, slug)
}

// SamplePosts renders n records with slugs post-1..post-n as a JSON array.
func SamplePosts(n int) string {
	items := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, SamplePost(i, fmt.Sprintf("post-%d", i)))
	}
	return "[" + strings.Join(items, ",") + "]"
}

// TestConfig returns a config rooted at "data" with the manifest disabled.
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Workers = 4
	cfg.UseManifest = false
	return cfg
}
