// Package schema provides a small typed schema for survey callback payloads.
//
// A Schema maps field names to types. The compiler uses it to declare the body of the
// submission request (one string property per question id plus SurveyId) and renders it
// as a JSON Schema object with templated values:
//
//	s := schema.Submission([]string{"q1", "q2"})
//	body := schema.Document(s, map[string]string{
//	    "q1":       "{{ question_1_q1.answer }}",
//	    "q2":       "{{ question_2_q2.answer }}",
//	    "SurveyId": "survey-42",
//	})
//
// The same schema validates payloads received by the callback endpoint:
//
//	s, err := schema.FromDocument(body)
//	if err := schema.Validate(s, payload); err != nil {
//	    // Handle validation errors
//	}
package schema
