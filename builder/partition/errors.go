package partition

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags the stage a run failed in.
type Kind int

const (
	KindRead Kind = iota + 1
	KindParse
	KindValidate
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindParse:
		return "parse"
	case KindValidate:
		return "validate"
	case KindWrite:
		return "write"
	}
	return "unknown"
}

var (
	ErrRead     = errors.New("read error")
	ErrParse    = errors.New("parse error")
	ErrInvalid  = errors.New("invalid input")
	ErrWrite    = errors.New("write error")
	ErrNotFound = errors.New("post not found")
)

// Error is the tagged result of a failed run.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s failed: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindRead:
		return target == ErrRead
	case KindParse:
		return target == ErrParse
	case KindValidate:
		return target == ErrInvalid
	case KindWrite:
		return target == ErrWrite
	}
	return false
}

// KindOf returns the kind of a partition error, 0 for anything else.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// FieldError points at one offending record.
type FieldError struct {
	Index   int
	Slug    string
	Field   string
	Message string
}

func (e FieldError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "record %d", e.Index)
	if e.Slug != "" {
		fmt.Fprintf(&b, " (%s)", e.Slug)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " %s", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// ValidationError collects every problem found before any write happens.
type ValidationError struct {
	Items []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "validation failed (%d problems):", len(e.Items))
	for _, item := range e.Items {
		b.WriteString("\n - ")
		b.WriteString(item.Error())
	}
	return b.String()
}

func (e *ValidationError) Add(index int, slug, field, msg string) {
	e.Items = append(e.Items, FieldError{
		Index:   index,
		Slug:    slug,
		Field:   field,
		Message: msg,
	})
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e *ValidationError) HasAny() bool {
	return len(e.Items) > 0
}
