package schema

import (
	"fmt"
	"sort"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// Submission returns the callback payload schema of a survey:
// one string property per question id plus SurveyId.
func Submission(questionIDs []string) Schema {
	s := make(Schema, len(questionIDs)+1)
	for _, id := range questionIDs {
		s[id] = String()
	}
	s[domain.SurveyIDProperty] = String()
	return s
}

// Document renders s as a JSON Schema object. Properties listed in values carry a
// "value" entry (a literal or an engine placeholder such as "{{ node.answer }}").
// All properties are required. Keys are emitted in sorted order.
func Document(s Schema, values map[string]string) map[string]any {
	keys := s.Keys()

	properties := make(map[string]any, len(keys))
	required := make([]any, 0, len(keys))
	for _, k := range keys {
		prop := map[string]any{"type": s[k].JSONType()}
		if v, ok := values[k]; ok {
			prop["value"] = v
		}
		properties[k] = prop
		required = append(required, k)
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// FromDocument recovers a Schema from a JSON Schema object produced by Document
// (or any equivalent document decoded from JSON).
func FromDocument(doc map[string]any) (Schema, error) {
	props, ok := doc["properties"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document has no properties")
	}

	s := make(Schema, len(props))
	for key, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %s: property is not an object", key)
		}
		t, err := ParseJSONType(prop)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		s[key] = t
	}
	return s, nil
}

// Keys returns the schema's field names in sorted order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
