package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool with the server after checking its output type
// with CheckOutputSchema.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics when the structured output type T would not match
// the JSON schema the SDK infers for it. Two mistakes are caught:
//
//   - a slice field without omitempty or omitzero: its nil zero value
//     marshals as null where the schema requires an array
//   - a json.RawMessage field: it marshals as arbitrary JSON but the schema
//     describes it as an array of integers
//
// The untyped any output is not checked. Schema inference failures are left
// for the SDK to report.
func CheckOutputSchema[T any](toolName string) {
	t := reflect.TypeFor[T]()
	if t == reflect.TypeFor[any]() {
		return
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if paths := rawMessagePaths(t, "", make(map[reflect.Type]bool)); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s has json.RawMessage at %s\n"+
				"  the inferred schema is an integer array but the value marshals as raw JSON\n"+
				"  Fix: use any (or []any) and decode the JSON into it",
			toolName, t, strings.Join(paths, ", "),
		))
	}

	if data, err := validateZero(t); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails its schema: %v\n"+
				"  JSON: %s\n"+
				"  Fix: add omitempty or omitzero to slice fields, or initialize them to empty slices",
			toolName, t, err, data,
		))
	}
}

// validateZero marshals the zero value of t and validates it against the
// inferred schema. It returns the marshaled JSON with any validation error.
func validateZero(t reflect.Type) ([]byte, error) {
	schema, err := jsonschema.ForType(t, &jsonschema.ForOptions{})
	if err != nil {
		return nil, nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil, nil
	}

	data, err := json.Marshal(reflect.Zero(t).Interface())
	if err != nil {
		return nil, nil
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, nil
	}
	return data, resolved.Validate(&v)
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths returns the dotted field paths under t whose type is
// json.RawMessage. Slice elements appear as "[]" and map values as "[value]".
func rawMessagePaths(t reflect.Type, path string, visiting map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{path}
	}
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	join := func(part string) string {
		if path == "" {
			return part
		}
		return path + "." + part
	}

	switch t.Kind() {
	case reflect.Struct:
		var found []string
		for i := range t.NumField() {
			f := t.Field(i)
			if f.IsExported() {
				found = append(found, rawMessagePaths(f.Type, join(f.Name), visiting)...)
			}
		}
		return found
	case reflect.Slice, reflect.Array:
		return rawMessagePaths(t.Elem(), join("[]"), visiting)
	case reflect.Map:
		return rawMessagePaths(t.Elem(), join("[value]"), visiting)
	default:
		return nil
	}
}
