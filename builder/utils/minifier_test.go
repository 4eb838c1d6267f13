package utils

import (
	"encoding/json"
	"testing"
)

func TestMarshalJSON(t *testing.T) {
	v := map[string]any{"html": "<p>a & b</p>", "n": 1}

	tests := []struct {
		name     string
		indent   string
		expected string
	}{
		{"compact", "", `{"html":"<p>a & b</p>","n":1}`},
		{"pretty", "  ", "{\n  \"html\": \"<p>a & b</p>\",\n  \"n\": 1\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalJSON(v, tt.indent)
			if err != nil {
				t.Fatalf("MarshalJSON() failed: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("MarshalJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMarshalJSON_EmptySlice(t *testing.T) {
	got, err := MarshalJSON([]int{}, "  ")
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("MarshalJSON() = %q, want []", got)
	}
}

func TestMarshalJSON_RawMessageCompacted(t *testing.T) {
	v := struct {
		Tags json.RawMessage `json:"tags"`
	}{Tags: json.RawMessage(`[ "a",   "b" ]`)}

	got, err := MarshalJSON(v, "")
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	if string(got) != `{"tags":["a","b"]}` {
		t.Errorf("MarshalJSON() = %q", got)
	}
}

func TestMinifyJSON(t *testing.T) {
	in := []byte("[\n  {\n    \"slug\": \"a\",\n    \"title\": \"A b\"\n  }\n]")

	got, err := MinifyJSON(in)
	if err != nil {
		t.Fatalf("MinifyJSON() failed: %v", err)
	}
	if string(got) != `[{"slug":"a","title":"A b"}]` {
		t.Errorf("MinifyJSON() = %q", got)
	}
}
