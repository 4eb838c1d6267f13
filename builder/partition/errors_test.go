package partition

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestError_IsMatchesKind(t *testing.T) {
	tests := []struct {
		kind     Kind
		sentinel error
	}{
		{KindRead, ErrRead},
		{KindParse, ErrParse},
		{KindValidate, ErrInvalid},
		{KindWrite, ErrWrite},
	}

	all := []error{ErrRead, ErrParse, ErrInvalid, ErrWrite}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &Error{Kind: tt.kind, Path: "x.json", Err: os.ErrPermission})

			for _, s := range all {
				if got := errors.Is(err, s); got != (s == tt.sentinel) {
					t.Errorf("errors.Is(%v) = %v", s, got)
				}
			}
			if !errors.Is(err, os.ErrPermission) {
				t.Error("underlying error should stay reachable")
			}
			if KindOf(err) != tt.kind {
				t.Errorf("KindOf() = %v, want %v", KindOf(err), tt.kind)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: KindWrite, Path: "data/blog-content/a.json", Err: errors.New("disk full")}
	if got := err.Error(); got != "write data/blog-content/a.json: disk full" {
		t.Errorf("Error() = %q", got)
	}

	err = &Error{Kind: KindParse, Err: errors.New("bad")}
	if got := err.Error(); got != "parse failed: bad" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindOf_Foreign(t *testing.T) {
	if KindOf(errors.New("plain")) != 0 {
		t.Error("foreign errors have no kind")
	}
	if Kind(42).String() != "unknown" {
		t.Error("unexpected kind name")
	}
}

func TestValidationError_Message(t *testing.T) {
	verr := &ValidationError{}
	if verr.Error() != "validation failed" || verr.HasAny() {
		t.Errorf("empty ValidationError = %q", verr.Error())
	}

	verr.Add(3, "hello", "tags", "want array of strings")
	verr.Add(4, "", "slug", "missing or not a string")

	msg := verr.Error()
	for _, want := range []string{"2 problems", "record 3 (hello) tags: want array of strings", "record 4 slug: missing"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, should contain %q", msg, want)
		}
	}
}
