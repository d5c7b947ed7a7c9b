package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/internal/indexer"
	"github.com/usestring/saz-mcp/internal/mcp/tools"
	"github.com/usestring/saz-mcp/internal/store"
	"github.com/usestring/saz-mcp/pkg/saz"
	"github.com/usestring/saz-mcp/pkg/types"
)

// Resource URI scheme: saz://
// Supported URIs:
//   saz://session/{capture}/{index}

// sessionResource is the full, untruncated session record.
type sessionResource struct {
	Summary *types.SessionSummary `json:"summary"`
	Session *saz.Session          `json:"session"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.SessionURIPrefix + "{capture}/{index}",
		Name:        "Capture Session",
		Description: "Full session record with untruncated raw request and response text. Use saz_get_session first to see the summary.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.8,
		},
	}, s.handleResourceSession)
}

func (s *Server) handleResourceSession(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	capture, index, err := tools.ParseSessionURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	sess, c, err := s.deps.Store.Session(ctx, capture, index)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, tools.WrapCaptureError(err)
	}

	return toResourceResult(req.Params.URI, sessionResource{
		Summary: indexer.FromSession(sess).ToSummary(c.Name),
		Session: sess,
	})
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
