// Package textquery extracts values from the body of a raw HTTP message with
// CSS selectors, XPath, regular expressions, form keys or JQ.
//
// The body is taken as stored in the capture. Transfer and content encodings
// are not undone.
package textquery
