package compiler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/aretw0/surveyflow/pkg/schema"
)

// Synthesizer builds the nodes of one compilation for a given language and call context.
type Synthesizer struct {
	cat  *catalog
	data promptData
}

// NewSynthesizer prepares prompt data from the template configuration and respondent,
// filling unset facts with the language defaults.
func NewSynthesizer(lang domain.Language, tmpl domain.TemplateConfig, respondent domain.Respondent) *Synthesizer {
	cat := catalogFor(lang)
	data := cat.defaults

	if tmpl.AgentName != "" {
		data.AgentName = tmpl.AgentName
	}
	if tmpl.Organization != "" {
		data.Organization = tmpl.Organization
	}
	if tmpl.Purpose != "" {
		data.Purpose = tmpl.Purpose
	}
	if tmpl.TimeLimitMinutes > 0 {
		data.TimeLimitMinutes = tmpl.TimeLimitMinutes
	}
	if respondent.Reference != "" {
		data.Subject = respondent.Reference
	}
	data.RespondentName = respondent.Name
	data.OpeningScript = tmpl.OpeningScript
	data.ForbiddenTopics = tmpl.ForbiddenTopics

	return &Synthesizer{cat: cat, data: data}
}

// GlobalPrompt renders the workflow-wide system prompt.
func (s *Synthesizer) GlobalPrompt() string {
	return render(s.cat.global, s.data)
}

// TimeLimitMinutes returns the effective time limit.
func (s *Synthesizer) TimeLimitMinutes() int {
	return s.data.TimeLimitMinutes
}

// QuestionNode builds the conversation node of the question at position index.
// A categorical question without categories still yields a (degenerate) node.
func (s *Synthesizer) QuestionNode(q domain.Question, index int) domain.Node {
	data := s.data
	data.Question = q.Text
	data.ScaleMax = q.ScaleMax
	data.Categories = q.Categories

	variable := domain.Variable{
		Type:  "string",
		Title: domain.AnswerVariable,
	}

	var prompt string
	switch q.Criteria {
	case domain.CriteriaScale:
		prompt = render(s.cat.scale, data)
		variable.Description = fmt.Sprintf(s.cat.scaleVar, q.ScaleMax)
		if q.ScaleMax > 0 {
			variable.Enum = scaleValues(q.ScaleMax)
		}
	case domain.CriteriaCategorical:
		prompt = render(s.cat.categorical, data)
		variable.Description = s.cat.categoricalVar
		if len(q.Categories) > 0 {
			variable.Enum = append([]string(nil), q.Categories...)
		}
	case domain.CriteriaOpen:
		prompt = render(s.cat.open, data)
		variable.Description = s.cat.openVar
	default:
		prompt = render(s.cat.generic, data)
		variable.Description = s.cat.genericVar
	}

	prompt += "\n\n" + render(s.cat.contextBlk, data)

	return domain.Node{
		Name:       QuestionNodeName(index, q.ID),
		Type:       domain.NodeTypeConversation,
		Prompt:     prompt,
		Extraction: &domain.ExtractionPlan{Output: []domain.Variable{variable}},
		Metadata: map[string]string{
			domain.MetaRole:       domain.RoleQuestion,
			domain.MetaQuestionID: q.ID,
			domain.MetaCriteria:   string(q.Criteria),
		},
	}
}

func scaleValues(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i + 1)
	}
	return out
}

// EntryNode is the start node: greeting and identity verification.
func (s *Synthesizer) EntryNode() domain.Node {
	return domain.Node{
		Name:     domain.NodeEntry,
		Type:     domain.NodeTypeConversation,
		IsStart:  true,
		Prompt:   render(s.cat.entry, s.data),
		Metadata: role(domain.RoleEntry),
	}
}

// OpeningNode asks for consent to run the survey.
func (s *Synthesizer) OpeningNode() domain.Node {
	return domain.Node{
		Name:     domain.NodeOpening,
		Type:     domain.NodeTypeConversation,
		Prompt:   render(s.cat.opening, s.data),
		Metadata: role(domain.RoleOpening),
	}
}

// DeclineNode thanks a person who does not want to participate.
func (s *Synthesizer) DeclineNode() domain.Node {
	return domain.Node{
		Name:     domain.NodeDeclineConversation,
		Type:     domain.NodeTypeConversation,
		Prompt:   render(s.cat.decline, s.data),
		Metadata: role(domain.RoleDecline),
	}
}

// HangupNode ends a declined call.
func (s *Synthesizer) HangupNode() domain.Node {
	return domain.Node{
		Name: domain.NodeDeclineHangup,
		Type: domain.NodeTypeTool,
		Tool: &domain.Tool{
			Type:    domain.ToolEndCall,
			Message: s.cat.hangupMessage,
		},
		Metadata: role(domain.RoleHangup),
	}
}

// EndNode ends a completed call.
func (s *Synthesizer) EndNode() domain.Node {
	return domain.Node{
		Name: domain.NodeEnd,
		Type: domain.NodeTypeTool,
		Tool: &domain.Tool{
			Type:    domain.ToolEndCall,
			Message: s.cat.endMessage,
		},
		Metadata: role(domain.RoleEnd),
	}
}

// SubmissionToolName is the name of the submission node's API request tool.
const SubmissionToolName = "submit_survey_answers"

// SubmissionNode posts every answer of the survey to callbackURL in a single payload.
func (s *Synthesizer) SubmissionNode(p *Plan, surveyID, callbackURL string) domain.Node {
	ids := make([]string, len(p.Questions))
	values := make(map[string]string, len(p.Questions)+1)
	for i, q := range p.Questions {
		ids[i] = q.ID
		values[q.ID] = fmt.Sprintf("{{ %s.%s }}", p.NodeName(i), domain.AnswerVariable)
	}
	values[domain.SurveyIDProperty] = surveyID

	return domain.Node{
		Name: domain.NodeSubmission,
		Type: domain.NodeTypeTool,
		Tool: &domain.Tool{
			Type:   domain.ToolAPIRequest,
			Name:   SubmissionToolName,
			Method: http.MethodPost,
			URL:    callbackURL,
			Body:   schema.Document(schema.Submission(ids), values),
		},
		Metadata: role(domain.RoleSubmission),
	}
}

func role(r string) map[string]string {
	return map[string]string{domain.MetaRole: r}
}
