package textquery

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
)

// QueryXPath returns the trimmed inner text of each node matching an XPath
// expression. HTML content types are parsed with htmlquery, everything else
// as XML.
func QueryXPath(body, contentType, expression string, maxResults int) (*Result, error) {
	var texts []string
	var err error
	if Classify(contentType) == HTML {
		texts, err = xpathHTML(body, expression)
	} else {
		texts, err = xpathXML(body, expression)
	}
	if err != nil {
		return nil, err
	}

	c := &collector{limit: maxResults}
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if !c.add(text) {
			break
		}
	}
	return c.result(ModeXPath), nil
}

func xpathXML(body, expression string) ([]string, error) {
	doc, err := xmlquery.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	nodes, err := xmlquery.QueryAll(doc, expression)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		texts[i] = n.InnerText()
	}
	return texts, nil
}

func xpathHTML(body, expression string) ([]string, error) {
	doc, err := htmlquery.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	nodes, err := htmlquery.QueryAll(doc, expression)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		texts[i] = htmlquery.InnerText(n)
	}
	return texts, nil
}
