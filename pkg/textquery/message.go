package textquery

import "strings"

// Header is one header line of a raw message.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Message is a raw HTTP message split into start line, headers and body.
type Message struct {
	StartLine string
	Headers   []Header
	Body      string
}

// ParseMessage splits raw request or response text. The head ends at the
// first empty line; a message without one has no body. Header lines without a
// colon are skipped and folded lines are joined to the previous header.
func ParseMessage(raw string) Message {
	head, body, ok := strings.Cut(raw, "\r\n\r\n")
	if !ok {
		head, body, ok = strings.Cut(raw, "\n\n")
	}
	if !ok {
		head, body = raw, ""
	}

	var m Message
	m.Body = body

	lines := strings.Split(head, "\n")
	m.StartLine = strings.TrimRight(lines[0], "\r")
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if (line[0] == ' ' || line[0] == '\t') && len(m.Headers) > 0 {
			last := &m.Headers[len(m.Headers)-1]
			last.Value += " " + strings.TrimSpace(line)
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		m.Headers = append(m.Headers, Header{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return m
}

// Header returns the first value of the named header, matched
// case-insensitively, or "".
func (m Message) Header(name string) string {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// ContentType returns the Content-Type header value.
func (m Message) ContentType() string {
	return m.Header("Content-Type")
}
