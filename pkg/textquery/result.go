package textquery

// Result holds values extracted from one body.
type Result struct {
	Mode      string   `json:"mode"`
	Values    []any    `json:"values"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// collector gathers values up to a limit. A non-positive limit means no limit.
type collector struct {
	limit     int
	values    []any
	truncated bool
}

// add appends v and reports whether more values are accepted.
func (c *collector) add(v any) bool {
	if c.limit > 0 && len(c.values) >= c.limit {
		c.truncated = true
		return false
	}
	c.values = append(c.values, v)
	return true
}

func (c *collector) result(mode string) *Result {
	values := c.values
	if values == nil {
		values = []any{}
	}
	return &Result{
		Mode:      mode,
		Values:    values,
		Count:     len(values),
		Truncated: c.truncated,
	}
}
