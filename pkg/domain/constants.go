package domain

// Names of the fixed structural nodes present in every compiled workflow.
const (
	NodeEntry               = "introduction"
	NodeOpening             = "opening"
	NodeDeclineConversation = "decline_conversation"
	NodeDeclineHangup       = "decline_hangup"
	NodeSubmission          = "submit_answers"
	NodeEnd                 = "end_call"
)

// StructuralNodeCount is the number of nodes present regardless of question count.
const StructuralNodeCount = 6

// AnswerVariable is the extraction variable every question node captures.
const AnswerVariable = "answer"

// SurveyIDProperty is the submission payload property carrying the survey id.
const SurveyIDProperty = "SurveyId"

// DefaultCallbackURL is used when neither the request nor the environment names one.
const DefaultCallbackURL = "http://localhost:8000/api/surveys/answers"
