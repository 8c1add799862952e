package schema

// Schema is a map of field names to their expected types.
// Example: {"q1": String(), "SurveyId": String()}
type Schema map[string]Type

// Validate checks if data conforms to the schema.
// Fields are checked in sorted order; all failures are aggregated.
// Fields present in data but absent from the schema are ignored.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error

	for _, fieldName := range schema.Keys() {
		fieldType := schema[fieldName]
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
				Value:  nil,
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
