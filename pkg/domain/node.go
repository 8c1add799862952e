package domain

// NodeType defines how the workflow engine treats a node.
type NodeType string

const (
	// NodeTypeConversation speaks a prompt and extracts variables from the reply.
	NodeTypeConversation NodeType = "conversation"
	// NodeTypeTool performs a structural side-effect (hang up, submit answers).
	NodeTypeTool NodeType = "tool"
)

// Metadata keys attached to compiled nodes.
const (
	MetaRole       = "role"
	MetaQuestionID = "question_id"
	MetaCriteria   = "criteria"
)

// Node roles.
const (
	RoleEntry      = "entry"
	RoleOpening    = "opening"
	RoleDecline    = "decline"
	RoleHangup     = "hangup"
	RoleQuestion   = "question"
	RoleSubmission = "submission"
	RoleEnd        = "end"
)

// Node represents a state in the compiled conversation graph.
// Its Name is the only thing edges reference.
type Node struct {
	Name    string   `json:"name"`
	Type    NodeType `json:"type"`
	IsStart bool     `json:"isStart,omitempty"`

	// Prompt is the instruction given to the voice agent (conversation nodes only).
	Prompt string `json:"prompt,omitempty"`

	// Extraction describes which variables to capture from the reply.
	Extraction *ExtractionPlan `json:"variableExtractionPlan,omitempty"`

	// Tool is set for tool nodes.
	Tool *Tool `json:"tool,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

// Role returns the node's role metadata.
func (n Node) Role() string {
	return n.Metadata[MetaRole]
}

// ExtractionPlan lists the variables a conversation node captures.
type ExtractionPlan struct {
	Output []Variable `json:"output"`
}

// Variable is a single captured value.
type Variable struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
}
