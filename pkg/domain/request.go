package domain

// Language selects prompt wording and the voice/transcriber profile.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
)

// DefaultLanguage is used when a request does not name one.
const DefaultLanguage = LanguageEnglish

// TemplateConfig is the light per-template configuration of a survey.
type TemplateConfig struct {
	// Name is the human-readable name of the compiled workflow.
	Name string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name" validate:"max=200"`
	// AgentName is how the voice agent introduces itself.
	AgentName string `json:"agent_name,omitempty" yaml:"agent_name,omitempty" mapstructure:"agent_name" validate:"max=100"`
	// Organization is who commissioned the survey.
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty" mapstructure:"organization"`
	// Purpose is what the survey is for.
	Purpose string `json:"purpose,omitempty" yaml:"purpose,omitempty" mapstructure:"purpose"`

	TimeLimitMinutes int      `json:"time_limit_minutes,omitempty" yaml:"time_limit_minutes,omitempty" mapstructure:"time_limit_minutes" validate:"gte=0,lte=240"`
	ForbiddenTopics  []string `json:"forbidden_topics,omitempty" yaml:"forbidden_topics,omitempty" mapstructure:"forbidden_topics"`
	OpeningScript    string   `json:"opening_script,omitempty" yaml:"opening_script,omitempty" mapstructure:"opening_script"`
}

// Respondent describes who is called and what this call refers to.
type Respondent struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty" mapstructure:"phone"`
	// Reference is what this call instance refers to (e.g. "your ride on March 3rd").
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty" mapstructure:"reference"`
}

// BuildRequest carries everything needed to compile one survey call.
// It is also the on-disk format of a survey definition file.
type BuildRequest struct {
	SurveyID    string         `json:"survey_id" yaml:"survey_id" mapstructure:"survey_id" validate:"max=128"`
	Language    Language       `json:"language,omitempty" yaml:"language,omitempty" mapstructure:"language"`
	CallbackURL string         `json:"callback_url,omitempty" yaml:"callback_url,omitempty" mapstructure:"callback_url" validate:"omitempty,url"`
	Template    TemplateConfig `json:"template" yaml:"template" mapstructure:"template"`
	Respondent  Respondent     `json:"respondent" yaml:"respondent" mapstructure:"respondent"`
	Questions   []Question     `json:"questions" yaml:"questions" mapstructure:"questions" validate:"dive"`
}
