package tools

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/saz-mcp/pkg/types"
)

func TestCheckOutputSchema(t *testing.T) {
	type inner struct {
		Schema json.RawMessage `json:"schema,omitempty"`
	}

	tests := []struct {
		name   string
		check  func()
		panics bool
	}{
		{"nil slice without omit tag", func() {
			CheckOutputSchema[struct {
				Sessions []types.SessionSummary `json:"sessions"`
			}]("nil_slice")
		}, true},
		{"slice with omitzero", func() {
			CheckOutputSchema[struct {
				Sessions []types.SessionSummary `json:"sessions,omitzero"`
			}]("omitzero")
		}, false},
		{"slice with omitempty", func() {
			CheckOutputSchema[struct {
				Hosts []string `json:"hosts,omitempty"`
			}]("omitempty")
		}, false},
		{"scalars only", func() {
			CheckOutputSchema[struct {
				Capture string `json:"capture"`
				Total   int    `json:"total"`
			}]("scalars")
		}, false},
		{"untyped any", func() { CheckOutputSchema[any]("any") }, false},
		{"pointer to slice", func() {
			CheckOutputSchema[struct {
				Values *[]string `json:"values"`
			}]("ptr_slice")
		}, false},
		{"any slice with omitzero", func() {
			CheckOutputSchema[struct {
				Values []any `json:"values,omitzero"`
			}]("any_slice")
		}, false},
		{"raw message field", func() {
			CheckOutputSchema[struct {
				Body json.RawMessage `json:"body,omitempty"`
			}]("raw")
		}, true},
		{"raw message slice", func() {
			CheckOutputSchema[struct {
				Bodies []json.RawMessage `json:"bodies,omitzero"`
			}]("raw_slice")
		}, true},
		{"nested raw message", func() {
			CheckOutputSchema[struct {
				Nested inner `json:"nested"`
			}]("raw_nested")
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.panics {
				assert.Panics(t, tt.check)
			} else {
				assert.NotPanics(t, tt.check)
			}
		})
	}
}

func TestRawMessagePaths(t *testing.T) {
	type leaf struct {
		Raw json.RawMessage
	}
	type root struct {
		Direct json.RawMessage
		List   []leaf
		ByName map[string]json.RawMessage
		hidden json.RawMessage
	}

	_ = root{}.hidden
	paths := rawMessagePaths(reflect.TypeFor[root](), "", map[reflect.Type]bool{})
	assert.ElementsMatch(t, []string{"Direct", "List.[].Raw", "ByName.[value]"}, paths)
}

func TestCheckOutputSchema_registeredToolOutputs(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[CapturesListOutput]("saz_captures_list")
		CheckOutputSchema[SessionsListOutput]("saz_sessions_list")
		CheckOutputSchema[GetSessionOutput]("saz_get_session")
		CheckOutputSchema[SearchSessionsOutput]("saz_search_sessions")
		CheckOutputSchema[types.QueryResponse]("saz_query_sessions")
		CheckOutputSchema[ExtractBodyOutput]("saz_extract_body")
		CheckOutputSchema[ExportSessionsOutput]("saz_export_sessions")
		CheckOutputSchema[IndexTableOutput]("saz_index_table")
	})
}
