package render

// RenderOptions describe per-request data renderers can use to customise
// their output without mutating the entity.
type RenderOptions struct {
	// Theme and Variant select a go-theme manifest for renderers that style
	// their output. Empty values use the selector defaults.
	Theme   string
	Variant string
	// Values pre-populates preview controls keyed by field name. Missing keys
	// fall back to the field default.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field name. Use MapIssues
	// to build it from a model.ValidationError.
	Errors map[string][]string
	// DatabaseID fixes the first path segment of exported API documents.
	DatabaseID string
}
