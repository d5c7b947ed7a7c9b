package indexer

import (
	"net/url"
	"strings"
	"unicode"
)

// tokenDelimiters defines characters that separate tokens
const tokenDelimiters = "/?&=.-_:"

// Tokenize splits a string into searchable tokens.
// Splits on: / ? & = . - _ :
// Lowercases all tokens, drops tokens < 2 chars.
func Tokenize(s string) []string {
	s = strings.ToLower(s)

	// Split on delimiters
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(tokenDelimiters, r) || unicode.IsSpace(r)
	})

	// Filter tokens shorter than 2 characters
	result := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) >= 2 {
			result = append(result, t)
		}
	}

	return result
}

// TokenizeURL extracts tokens from a request target (host + path + query keys).
// Origin-form and authority-form targets are tokenized as plain text.
func TokenizeURL(rawURL string) []string {
	// CONNECT authority or asterisk-form
	if !strings.Contains(rawURL, "://") && !strings.HasPrefix(rawURL, "/") {
		return Tokenize(rawURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback to basic tokenization
		return Tokenize(rawURL)
	}

	var parts []string

	// Host tokens, absolute-form only
	if parsed.Host != "" {
		parts = append(parts, parsed.Host)
	}

	// Path tokens
	if parsed.Path != "" {
		parts = append(parts, parsed.Path)
	}

	// Query parameter keys (not values)
	for key := range parsed.Query() {
		parts = append(parts, key)
	}

	return Tokenize(strings.Join(parts, " "))
}
