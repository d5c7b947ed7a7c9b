// Package saz reconstructs HTTP sessions from Fiddler-style .saz capture
// archives.
//
// A capture is a zip container with a top-level raw/ folder holding one
// request file (NNN_c.txt) and one response file (NNN_s.txt) per session,
// where NNN is a zero-padded sequence number. There is no manifest: the
// session count and the padding width are inferred from the file names.
//
// Parsing runs in four steps:
//
//   - Sniff classifies the first four bytes (valid, empty, spanned, invalid).
//   - Enumerate decodes every file entry into memory.
//   - InferSessionRange derives the session count and padding width.
//   - The field extractors pull URL, status and Content-Length out of the raw
//     text of each pair.
//
// Parse is all-or-nothing: callers get the complete ordered list or a single
// error whose kind can be tested with errors.Is against ErrEmpty, ErrSpanned,
// ErrInvalid or ErrRead.
package saz
