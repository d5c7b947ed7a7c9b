package saz

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// DecodeText converts raw entry bytes to text using a lossy UTF-8 policy:
// every ill-formed byte sequence is replaced with U+FFFD and decoding never
// fails. Capture files are mostly ASCII protocol text, but bodies may carry
// arbitrary bytes; replacing them keeps the surrounding headers visible to the
// field extractors.
func DecodeText(data []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return string(out)
}
