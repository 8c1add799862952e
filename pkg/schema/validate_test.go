package schema

import (
	"strings"
	"testing"
)

func TestValidate_Success(t *testing.T) {
	schema := Submission([]string{"q1", "q2"})

	data := map[string]any{
		"q1":       "Very satisfied",
		"q2":       "4",
		"SurveyId": "survey-1",
		"extra":    42, // ignored
	}

	if err := Validate(schema, data); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_AggregatesFailures(t *testing.T) {
	schema := Submission([]string{"q1", "q2"})

	data := map[string]any{
		"q1": 5,
		// missing q2 and SurveyId
	}

	err := Validate(schema, data)
	if err == nil {
		t.Fatal("Validate() should fail")
	}

	errs := ValidationErrors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), err)
	}

	// Sorted field order: SurveyId, q1, q2
	first, ok := errs[0].(*ValidationError)
	if !ok || first.Key != "SurveyId" || first.Reason != "required" {
		t.Errorf("unexpected first error: %v", errs[0])
	}
	if !strings.Contains(err.Error(), "3 validation errors") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	if err := Validate(nil, map[string]any{"x": 1}); err != nil {
		t.Errorf("empty schema should accept anything, got %v", err)
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	s := Submission([]string{"q2", "q1"})
	doc := Document(s, map[string]string{
		"q1":       "{{ question_1_q1.answer }}",
		"SurveyId": "survey-9",
	})

	if doc["type"] != "object" {
		t.Errorf("type = %v, want object", doc["type"])
	}

	required, _ := doc["required"].([]any)
	if len(required) != 3 || required[0] != "SurveyId" || required[1] != "q1" || required[2] != "q2" {
		t.Errorf("required = %v", required)
	}

	props := doc["properties"].(map[string]any)
	q1 := props["q1"].(map[string]any)
	if q1["value"] != "{{ question_1_q1.answer }}" {
		t.Errorf("q1 value = %v", q1["value"])
	}
	if _, ok := props["q2"].(map[string]any)["value"]; ok {
		t.Error("q2 should carry no value")
	}

	back, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument() error = %v", err)
	}
	if len(back) != 3 || back["q2"].Name() != "string" {
		t.Errorf("unexpected schema: %v", back.Keys())
	}
}

func TestFromDocument_Invalid(t *testing.T) {
	if _, err := FromDocument(map[string]any{}); err == nil {
		t.Error("expected error for missing properties")
	}
	if _, err := FromDocument(map[string]any{"properties": map[string]any{"a": "string"}}); err == nil {
		t.Error("expected error for non-object property")
	}
}
