package content

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested slug does not resolve to a public
// post or project.
var ErrNotFound = errors.New("content: not found")

// ErrIntegrity matches every *IntegrityError through errors.Is.
var ErrIntegrity = errors.New("content: integrity error")

// IntegrityKind classifies a content-integrity failure.
type IntegrityKind int

const (
	MissingField IntegrityKind = iota + 1
	InvalidField
	DanglingReference
	DuplicateSlug
	DuplicateURL
)

func (k IntegrityKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case InvalidField:
		return "invalid field"
	case DanglingReference:
		return "dangling reference"
	case DuplicateSlug:
		return "duplicate slug"
	case DuplicateURL:
		return "duplicate url"
	default:
		return "unknown"
	}
}

// IntegrityError reports malformed content. It is fatal at load time: the
// site refuses to serve a snapshot that produced one.
type IntegrityError struct {
	Kind   IntegrityKind
	Source string // file or table the record came from
	Field  string
	Value  string
}

func (e *IntegrityError) Error() string {
	msg := fmt.Sprintf("content: %s: %s", e.Source, e.Kind)
	if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	return msg
}

// Is lets errors.Is(err, ErrIntegrity) match any integrity error.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

func missing(source, field string) *IntegrityError {
	return &IntegrityError{Kind: MissingField, Source: source, Field: field}
}

func invalid(source, field, value string) *IntegrityError {
	return &IntegrityError{Kind: InvalidField, Source: source, Field: field, Value: value}
}

func dangling(source, field, value string) *IntegrityError {
	return &IntegrityError{Kind: DanglingReference, Source: source, Field: field, Value: value}
}

// IsIntegrity reports whether err carries an *IntegrityError of the given kind.
func IsIntegrity(err error, kind IntegrityKind) bool {
	var ie *IntegrityError
	return errors.As(err, &ie) && ie.Kind == kind
}
