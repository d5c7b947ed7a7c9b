package saz

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Format is the classification of a byte source by its leading signature.
type Format int

const (
	FormatInvalid Format = iota
	FormatValid
	FormatEmpty
	FormatSpanned
)

// Zip signatures checked by Sniff.
var (
	magicLocalHeader = []byte{0x50, 0x4B, 0x03, 0x04}
	magicEndOfDir    = []byte{0x50, 0x4B, 0x05, 0x06}
	magicSpanned     = []byte{0x50, 0x4B, 0x07, 0x08}
)

// MagicLen is the number of bytes Sniff reads.
const MagicLen = 4

func (f Format) String() string {
	switch f {
	case FormatValid:
		return "valid"
	case FormatEmpty:
		return "empty"
	case FormatSpanned:
		return "spanned"
	default:
		return "invalid"
	}
}

// Err maps a non-valid format to its error kind. FormatValid returns nil.
func (f Format) Err() error {
	switch f {
	case FormatValid:
		return nil
	case FormatEmpty:
		return ErrEmpty
	case FormatSpanned:
		return ErrSpanned
	default:
		return ErrInvalid
	}
}

// Sniff reads exactly MagicLen bytes from r and classifies them.
// It only inspects the signature; a FormatValid result does not guarantee the
// rest of the stream decodes. Short input yields an ErrRead error.
func Sniff(r io.Reader) (Format, error) {
	format, err := sniff(r)
	if err != nil {
		return format, newError(ErrRead, "sniff", "", err)
	}
	return format, nil
}

// SniffFile opens path and classifies its first bytes.
func SniffFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatInvalid, &Error{Kind: ErrRead, Op: "sniff", Archive: path, Err: err}
	}
	defer f.Close()

	format, err := sniff(f)
	if err != nil {
		return format, &Error{Kind: ErrRead, Op: "sniff", Archive: path, Err: err}
	}
	return format, nil
}

func sniff(r io.Reader) (Format, error) {
	var head [MagicLen]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return FormatInvalid, fmt.Errorf("reading signature: %w", err)
	}
	return classify(head[:]), nil
}

func classify(head []byte) Format {
	switch {
	case bytes.Equal(head, magicLocalHeader):
		return FormatValid
	case bytes.Equal(head, magicEndOfDir):
		return FormatEmpty
	case bytes.Equal(head, magicSpanned):
		return FormatSpanned
	default:
		return FormatInvalid
	}
}
