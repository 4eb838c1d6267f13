package models

import (
	"encoding/json"
	"testing"
)

const fullRecord = `{"id":7,"slug":"hello","title":"Hello","excerpt":"e","image":"i.png","category":"c","tags":["a","b"],"date":"2024-01-01","lastUpdated":"2024-02-01","readTime":"3 min","author":"X","featured":true,"content":"Body"}`

func decodePost(t *testing.T, s string) Post {
	t.Helper()
	var p Post
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	return p
}

func TestIndex_DropsContentOnly(t *testing.T) {
	p := decodePost(t, fullRecord)

	out, err := json.Marshal(p.Index())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":7,"slug":"hello","title":"Hello","excerpt":"e","image":"i.png","category":"c","tags":["a","b"],"date":"2024-01-01","lastUpdated":"2024-02-01","readTime":"3 min","author":"X","featured":true}`
	if string(out) != want {
		t.Errorf("Index() =\n%s\nwant\n%s", out, want)
	}
}

func TestContentEntry(t *testing.T) {
	p := decodePost(t, fullRecord)

	out, err := json.Marshal(p.ContentEntry())
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"slug":"hello","content":"Body"}` {
		t.Errorf("ContentEntry() = %s", out)
	}
}

func TestMerge_RoundTrip(t *testing.T) {
	p := decodePost(t, fullRecord)

	out, err := json.Marshal(Merge(p.Index(), p.ContentEntry()))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != fullRecord {
		t.Errorf("Merge() =\n%s\nwant\n%s", out, fullRecord)
	}
}

func TestAbsentFieldsStayAbsent(t *testing.T) {
	p := decodePost(t, `{"slug":"s","content":"x","extra":"ignored"}`)

	out, err := json.Marshal(p.Index())
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"slug":"s"}` {
		t.Errorf("Index() = %s, want only slug", out)
	}
}

func TestNullPassesThrough(t *testing.T) {
	p := decodePost(t, `{"slug":"s","image":null,"content":null}`)

	idx, _ := json.Marshal(p.Index())
	if string(idx) != `{"slug":"s","image":null}` {
		t.Errorf("Index() = %s", idx)
	}
	body, _ := json.Marshal(p.ContentEntry())
	if string(body) != `{"slug":"s","content":null}` {
		t.Errorf("ContentEntry() = %s", body)
	}
}

func TestSlugString(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{`"hello"`, "hello", true},
		{`"a/b"`, "a/b", true},
		{`""`, "", true},
		{`42`, "", false},
		{`null`, "", false},
		{``, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Post{Slug: json.RawMessage(tt.raw)}.SlugString()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("SlugString(%s) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestField(t *testing.T) {
	p := decodePost(t, fullRecord)

	for _, name := range Fields {
		if p.Field(name) == nil {
			t.Errorf("Field(%q) = nil", name)
		}
	}
	if p.Field("unknown") != nil {
		t.Error("unknown field should be nil")
	}
}
