package textquery

import (
	"fmt"
	"regexp"
)

// QueryRegex returns regular expression matches. With capture groups the
// first group of each match is returned, otherwise the full match.
func QueryRegex(body, expression string, maxResults int) (*Result, error) {
	re, err := regexp.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid regex: %w", err)
	}

	group := 0
	if re.NumSubexp() > 0 {
		group = 1
	}

	c := &collector{limit: maxResults}
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		if !c.add(m[group]) {
			break
		}
	}
	return c.result(ModeRegex), nil
}
