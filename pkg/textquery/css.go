package textquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// QueryCSS returns the trimmed text of each element matching a CSS selector.
// Elements with no text are skipped.
func QueryCSS(body, selector string, maxResults int) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	c := &collector{limit: maxResults}
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return true
		}
		return c.add(text)
	})
	return c.result(ModeCSS), nil
}
