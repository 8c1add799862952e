package domain

// Workflow is the compiled document handed to the external voice-workflow engine.
type Workflow struct {
	Name               string             `json:"name"`
	BackgroundSound    string             `json:"backgroundSound"`
	Model              ModelSelector      `json:"model"`
	Voice              VoiceProfile       `json:"voice"`
	Transcriber        TranscriberProfile `json:"transcriber"`
	GlobalPrompt       string             `json:"globalPrompt"`
	MaxDurationSeconds int                `json:"maxDurationSeconds"`
	Nodes              []Node             `json:"nodes"`
	Edges              []Edge             `json:"edges"`
}

// ModelSelector picks the default LLM used by conversation nodes.
type ModelSelector struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// VoiceProfile is the text-to-speech voice used for a language.
type VoiceProfile struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
	Model    string `json:"model,omitempty"`
}

// TranscriberProfile is the speech-to-text configuration used for a language.
type TranscriberProfile struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Language string `json:"language"`
}

// Node returns the node with the given name.
func (w *Workflow) Node(name string) (Node, bool) {
	for _, n := range w.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// EdgesFrom returns the edges leaving the given node, in document order.
func (w *Workflow) EdgesFrom(name string) []Edge {
	var out []Edge
	for _, e := range w.Edges {
		if e.From == name {
			out = append(out, e)
		}
	}
	return out
}

// QuestionNodes returns the question nodes in document order.
func (w *Workflow) QuestionNodes() []Node {
	var out []Node
	for _, n := range w.Nodes {
		if n.Role() == RoleQuestion {
			out = append(out, n)
		}
	}
	return out
}
