package compiler

import (
	"fmt"

	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw bytes into a BuildRequest.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a survey definition. YAML and JSON documents are both accepted.
// Scalars are weakly typed, so `order: "2"` and `scale_max: 5.0` decode as ints.
func (p *Parser) Parse(data []byte) (*domain.BuildRequest, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse survey definition: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("survey definition is empty")
	}

	var req domain.BuildRequest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode survey definition: %w", err)
	}

	return &req, nil
}

// ParseQuestions decodes a bare list of question records.
func (p *Parser) ParseQuestions(data []byte) ([]domain.Question, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}

	questions := make([]domain.Question, 0, len(raw))
	for i, item := range raw {
		var q domain.Question
		if err := mapstructure.WeakDecode(item, &q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
