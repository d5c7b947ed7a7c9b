package mcpsrv

import (
	"github.com/usestring/saz-mcp/internal/mcp/tools"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same capture store, search and
// query engines as builtin tools.
type Deps = tools.Deps
