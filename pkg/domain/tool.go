package domain

// ToolType identifies the structural action performed by a tool node.
type ToolType string

const (
	// ToolEndCall hangs up the call.
	ToolEndCall ToolType = "endCall"
	// ToolAPIRequest sends an HTTP request to an external endpoint.
	ToolAPIRequest ToolType = "apiRequest"
)

// Tool is the payload of a tool node.
type Tool struct {
	Type   ToolType `json:"type"`
	Name   string   `json:"name,omitempty"`
	Method string   `json:"method,omitempty"`
	URL    string   `json:"url,omitempty"`

	// Body is the JSON Schema of the request body, with templated values
	// resolved by the engine at runtime.
	Body map[string]any `json:"body,omitempty"`

	// Message is spoken before the tool runs.
	Message string `json:"message,omitempty"`
}
