/*
Package dsl provides a Go DSL for programmatically constructing survey question sets.

It lets developers declare questions, their answer criteria and their conditional
dependencies with a fluent builder instead of hand-writing question records. This is
particularly useful for tests, examples and embedding the compiler in other services.

Example usage:

	b := dsl.New()

	b.Add("overall").
		Open("How was your ride today?")

	b.Add("satisfied").
		Categorical("Were you satisfied with the driver?", "Yes", "No")

	b.Add("why_not").
		Open("What could the driver have done better?").
		When("satisfied", "No")

	questions, err := b.Build()
	// ... pass questions to surveyflow.BuildWorkflowConfig(...)
*/
package dsl
