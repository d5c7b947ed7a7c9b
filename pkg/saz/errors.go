package saz

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Parse matches exactly one of these.
var (
	ErrEmpty   = errors.New("empty archive")
	ErrSpanned = errors.New("spanned archive not supported")
	ErrInvalid = errors.New("invalid archive")
	ErrRead    = errors.New("read error")
)

// Causes attached to ErrInvalid failures.
var (
	ErrNoMatch      = errors.New("pattern not found")
	ErrMissingEntry = errors.New("missing entry")
	ErrNoRawFolder  = errors.New("missing " + RawFolder + " folder")
)

// Error describes a failed operation on a capture archive.
// It matches both its Kind and its underlying cause with errors.Is.
type Error struct {
	Kind    error  // one of ErrEmpty, ErrSpanned, ErrInvalid, ErrRead
	Op      string // sniff, enumerate, assemble, ...
	Archive string // archive file path, when parsing from disk
	Entry   string // entry path inside the archive, when known
	Err     error
}

func (e *Error) Error() string {
	msg := "saz: " + e.Op
	if e.Archive != "" {
		msg += " " + e.Archive
	}
	if e.Entry != "" {
		msg += " [" + e.Entry + "]"
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op, entry string, err error) *Error {
	return &Error{Kind: kind, Op: op, Entry: entry, Err: err}
}

// withArchive records the archive path on a capture error.
func withArchive(err error, archive string) error {
	var e *Error
	if errors.As(err, &e) && e.Archive == "" {
		e.Archive = archive
	}
	return err
}

// KindOf returns the error kind carried by err, or nil when err is not a
// capture error.
func KindOf(err error) error {
	for _, kind := range []error{ErrEmpty, ErrSpanned, ErrInvalid, ErrRead} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

func missingEntry(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingEntry, name)
}
