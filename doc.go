/*
Package surveyflow compiles survey question lists into conversation graphs for voice agents.

A survey is an ordered list of questions. Some questions are conditional: they are only
asked when a parent question's answer falls in a given set of categories. The compiler
turns such a list into an explicit graph of conversation nodes joined by edges whose
conditions are natural-language predicates ("The person's answer matches: Bad"). An
external voice-workflow engine executes the graph; surveyflow never runs a conversation.

# Pipeline

  - Grouping: questions are ordered and grouped into regular and conditional sections.
  - Synthesis: every question becomes a conversation node with a criteria-specific prompt;
    fixed nodes cover greeting, consent, declining, submission and hang-up.
  - Routing: sections are wired by trigger, skip and convergence edges.
  - Finalizing: every path that would end the call goes through answer submission first.

# Usage

	c := surveyflow.New(surveyflow.WithLogger(logger))

	wf, err := c.Build(ctx, domain.BuildRequest{
		SurveyID:  "ride-feedback",
		Language:  domain.LanguageEnglish,
		Questions: questions,
	})
	if err != nil {
		log.Fatal(err)
	}

	data, _ := json.Marshal(wf)

Questions can be written by hand, parsed from YAML/JSON definition files, or built with
the fluent builder in package dsl.

Input is validated by default: duplicate ids, unknown parents, conditional questions nested
under conditional questions and unsupported languages are rejected. WithoutValidation
restores the bare compiler behavior, which never fails and degrades malformed input into
degenerate nodes instead.
*/
package surveyflow
