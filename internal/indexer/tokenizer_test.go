package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"/v1/cart/items", []string{"v1", "cart", "items"}},
		{"/search?q=shoes&page=2", []string{"search", "shoes", "page"}},
		{"static.shop-cdn.net", []string{"static", "shop", "cdn", "net"}},
		{"/Account/LOGIN", []string{"account", "login"}},
		{"session_id:token", []string{"session", "id", "token"}},
		{"a/b/c/go", []string{"go"}},
		{"checkout  step\tthree", []string{"checkout", "step", "three"}},
		{"", []string{}},
		{"/?&=.-_:", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestTokenizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"absolute with query keys", "https://api.shop.com/v2/orders?status=open&sort=desc",
			[]string{"api", "shop", "com", "v2", "orders", "status", "sort"}},
		{"port kept as token", "http://127.0.0.1:8888/debug", []string{"127", "8888", "debug"}},
		{"fragment dropped", "https://docs.example.org/guide#install", []string{"docs", "example", "org", "guide"}},
		{"origin form", "/favicon.ico", []string{"favicon", "ico"}},
		{"connect authority", "login.live.com:443", []string{"login", "live", "com", "443"}},
		{"asterisk form", "*", []string{}},
		{"unparsable falls back", "http://bad host/%zz", []string{"http", "bad", "host", "%zz"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, TokenizeURL(tt.in))
		})
	}
}
