package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/surveyflow/pkg/domain"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

const workflowSchemaURL = "https://surveyflow.dev/schemas/workflow.json"

// workflowSchemaJSON is the JSON Schema of the compiled workflow document.
const workflowSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://surveyflow.dev/schemas/workflow.json",
  "type": "object",
  "required": ["name", "model", "voice", "transcriber", "globalPrompt", "maxDurationSeconds", "nodes", "edges"],
  "properties": {
    "name": { "type": "string", "minLength": 1 },
    "backgroundSound": { "type": "string" },
    "model": {
      "type": "object",
      "required": ["provider", "model"],
      "properties": {
        "provider": { "type": "string", "minLength": 1 },
        "model": { "type": "string", "minLength": 1 }
      }
    },
    "voice": {
      "type": "object",
      "required": ["provider", "voiceId"],
      "properties": {
        "provider": { "type": "string", "minLength": 1 },
        "voiceId": { "type": "string", "minLength": 1 },
        "model": { "type": "string" }
      }
    },
    "transcriber": {
      "type": "object",
      "required": ["provider", "model", "language"],
      "properties": {
        "provider": { "type": "string", "minLength": 1 },
        "model": { "type": "string", "minLength": 1 },
        "language": { "type": "string", "enum": ["en", "es"] }
      }
    },
    "globalPrompt": { "type": "string" },
    "maxDurationSeconds": { "type": "integer", "minimum": 1 },
    "nodes": {
      "type": "array",
      "minItems": 6,
      "items": { "$ref": "#/$defs/node" }
    },
    "edges": {
      "type": "array",
      "items": { "$ref": "#/$defs/edge" }
    }
  },
  "$defs": {
    "node": {
      "type": "object",
      "required": ["name", "type"],
      "properties": {
        "name": { "type": "string", "pattern": "^[a-z0-9_]+$" },
        "type": { "type": "string", "enum": ["conversation", "tool"] },
        "isStart": { "type": "boolean" },
        "prompt": { "type": "string" },
        "variableExtractionPlan": {
          "type": "object",
          "required": ["output"],
          "properties": {
            "output": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["type", "title"],
                "properties": {
                  "type": { "type": "string" },
                  "title": { "type": "string", "minLength": 1 },
                  "description": { "type": "string" },
                  "enum": { "type": "array", "items": { "type": "string" } }
                }
              }
            }
          }
        },
        "tool": {
          "type": "object",
          "required": ["type"],
          "properties": {
            "type": { "type": "string", "enum": ["endCall", "apiRequest"] },
            "name": { "type": "string" },
            "method": { "type": "string" },
            "url": { "type": "string" },
            "body": { "type": "object" },
            "message": { "type": "string" }
          }
        },
        "metadata": {
          "type": "object",
          "additionalProperties": { "type": "string" }
        }
      }
    },
    "edge": {
      "type": "object",
      "required": ["from", "to", "condition"],
      "properties": {
        "from": { "type": "string", "minLength": 1 },
        "to": { "type": "string", "minLength": 1 },
        "condition": { "type": "string", "minLength": 1 }
      },
      "additionalProperties": false
    }
  }
}`

// DocumentError lists the JSON Schema violations of a workflow document.
type DocumentError struct {
	Violations []string
}

func (e *DocumentError) Error() string {
	if len(e.Violations) == 1 {
		return e.Violations[0]
	}
	return fmt.Sprintf("document validation failed with %d errors:\n- %s", len(e.Violations), strings.Join(e.Violations, "\n- "))
}

// DocumentValidator checks serialized workflow documents against the workflow JSON Schema.
// It is safe for concurrent use.
type DocumentValidator struct {
	schema *jsonschema.Schema
}

// NewDocumentValidator compiles the embedded workflow schema.
func NewDocumentValidator() (*DocumentValidator, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(workflowSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal workflow schema: %w", err)
	}
	if err := c.AddResource(workflowSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add workflow schema resource: %w", err)
	}

	compiled, err := c.Compile(workflowSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile workflow schema: %w", err)
	}
	return &DocumentValidator{schema: compiled}, nil
}

// ValidateJSON validates a serialized workflow document.
func (v *DocumentValidator) ValidateJSON(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("failed to parse workflow document: %w", err)
	}
	return v.validate(doc)
}

// Validate serializes wf and validates the result.
func (v *DocumentValidator) Validate(wf *domain.Workflow) error {
	data, err := json.Marshal(wf)
	if err != nil {
		return fmt.Errorf("failed to serialize workflow: %w", err)
	}
	return v.ValidateJSON(data)
}

func (v *DocumentValidator) validate(doc any) error {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}

	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	violations := collectViolations(verr)
	if len(violations) == 0 {
		violations = []string{verr.Error()}
	}
	return &DocumentError{Violations: violations}
}

// collectViolations walks a ValidationError tree and collects leaf error messages
// with their instance locations.
func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
