// Package compiler turns an ordered list of survey questions into an explicit graph of
// conversation nodes and condition-guarded edges for an external voice-workflow engine.
//
// Compilation is a pure, synchronous function: group questions into sections, synthesize
// nodes, route edges, and finalize the routes into the submission node. It performs no I/O
// and does not validate its input; callers wanting defensive behavior validate first.
package compiler

import (
	"github.com/aretw0/surveyflow/pkg/domain"
)

// Result is the output of one compilation.
type Result struct {
	Workflow *domain.Workflow
	Plan     *Plan
}

// Compile builds the workflow document for req.
// req.CallbackURL is used verbatim; resolving fallbacks is the caller's job.
func Compile(req domain.BuildRequest) Result {
	lang := req.Language
	if lang == "" {
		lang = domain.DefaultLanguage
	}

	plan := NewPlan(req.Questions)
	synth := NewSynthesizer(lang, req.Template, req.Respondent)
	conditions := ConditionsFor(lang)

	nodes := make([]domain.Node, 0, len(plan.Questions)+domain.StructuralNodeCount)
	nodes = append(nodes,
		synth.EntryNode(),
		synth.OpeningNode(),
		synth.DeclineNode(),
		synth.HangupNode(),
	)
	for i, q := range plan.Questions {
		nodes = append(nodes, synth.QuestionNode(q, i))
	}
	nodes = append(nodes,
		synth.SubmissionNode(plan, req.SurveyID, req.CallbackURL),
		synth.EndNode(),
	)

	edges := Route(plan, conditions)
	edges = Finalize(edges, plan.Finals(), domain.NodeSubmission, domain.NodeEnd, conditions.Answered)

	name := req.Template.Name
	if name == "" {
		name = DefaultWorkflowName
	}
	prof := profileFor(lang)

	return Result{
		Plan: plan,
		Workflow: &domain.Workflow{
			Name:               name,
			BackgroundSound:    DefaultBackgroundSound,
			Model:              DefaultModel,
			Voice:              prof.voice,
			Transcriber:        prof.transcriber,
			GlobalPrompt:       synth.GlobalPrompt(),
			MaxDurationSeconds: synth.TimeLimitMinutes() * 60,
			Nodes:              nodes,
			Edges:              edges,
		},
	}
}
