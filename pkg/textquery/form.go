package textquery

import (
	"fmt"
	"net/url"
	"strings"
)

// QueryForm reads a form-urlencoded body. A key returns that key's values;
// "*" or "." returns one map of every key, with repeated keys as lists.
func QueryForm(body, key string, maxResults int) (*Result, error) {
	form, err := url.ParseQuery(strings.TrimSpace(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse form data: %w", err)
	}

	c := &collector{limit: maxResults}
	if key == "*" || key == "." {
		all := make(map[string]any, len(form))
		for k, vals := range form {
			if len(vals) == 1 {
				all[k] = vals[0]
				continue
			}
			list := make([]any, len(vals))
			for i, v := range vals {
				list[i] = v
			}
			all[k] = list
		}
		c.add(all)
		return c.result(ModeForm), nil
	}

	for _, v := range form[key] {
		if !c.add(v) {
			break
		}
	}
	return c.result(ModeForm), nil
}
