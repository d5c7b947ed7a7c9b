// Package indexer provides session metadata and indexing functionality.
package indexer

import (
	"net"
	"net/url"
	"strings"

	"github.com/usestring/saz-mcp/pkg/saz"
	"github.com/usestring/saz-mcp/pkg/types"
)

// SessionMeta holds searchable fields for one session.
// Raw text is not stored; only metadata needed for indexing and search.
type SessionMeta struct {
	DocID         uint32
	Index         uint32
	URL           string
	Host          string
	Path          string
	Status        uint32
	BodyLength    uint64
	RequestBytes  int
	ResponseBytes int
}

// FromSession builds the searchable metadata for a session.
func FromSession(s *saz.Session) *SessionMeta {
	host, path := splitTarget(s.URL)
	return &SessionMeta{
		Index:         s.Index,
		URL:           s.URL,
		Host:          host,
		Path:          path,
		Status:        s.Status,
		BodyLength:    s.BodyLength,
		RequestBytes:  len(s.Request),
		ResponseBytes: len(s.Response),
	}
}

// ToSummary converts SessionMeta to SessionSummary for tool responses.
func (m *SessionMeta) ToSummary(capture string) *types.SessionSummary {
	return &types.SessionSummary{
		Capture:       capture,
		Index:         m.Index,
		URL:           m.URL,
		Host:          m.Host,
		Status:        m.Status,
		BodyLength:    m.BodyLength,
		RequestBytes:  m.RequestBytes,
		ResponseBytes: m.ResponseBytes,
	}
}

// splitTarget derives host and path from a request-line target.
// Absolute URLs yield both; CONNECT authorities ("host:443") yield only a host;
// origin-form targets ("/a?b") yield only a path.
func splitTarget(target string) (host, path string) {
	switch {
	case target == "" || target == "*":
		return "", ""
	case strings.Contains(target, "://"):
		parsed, err := url.Parse(target)
		if err != nil {
			return "", ""
		}
		return strings.ToLower(parsed.Hostname()), parsed.Path
	case strings.HasPrefix(target, "/"):
		if i := strings.IndexByte(target, '?'); i >= 0 {
			return "", target[:i]
		}
		return "", target
	default:
		if h, _, err := net.SplitHostPort(target); err == nil {
			return strings.ToLower(h), ""
		}
		return strings.ToLower(target), ""
	}
}
