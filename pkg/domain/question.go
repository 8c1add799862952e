package domain

// Criteria selects how a question is asked and how its answer is captured.
type Criteria string

const (
	// CriteriaScale asks for a rating in [1, ScaleMax].
	CriteriaScale Criteria = "scale"
	// CriteriaCategorical maps the reply onto one of Categories.
	CriteriaCategorical Criteria = "categorical"
	// CriteriaOpen captures a free-form reply.
	CriteriaOpen Criteria = "open"
)

// Question is a single survey question as provided by the question-storage collaborator.
type Question struct {
	ID       string   `json:"id" yaml:"id" mapstructure:"id" validate:"max=128"`
	Text     string   `json:"text" yaml:"text" mapstructure:"text"`
	Criteria Criteria `json:"criteria" yaml:"criteria" mapstructure:"criteria"`

	// ScaleMax is only meaningful when Criteria == CriteriaScale.
	ScaleMax int `json:"scale_max,omitempty" yaml:"scale_max,omitempty" mapstructure:"scale_max" validate:"gte=0"`
	// Categories is only meaningful when Criteria == CriteriaCategorical.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty" mapstructure:"categories"`

	// Order defines the base sequencing.
	Order int `json:"order" yaml:"order" mapstructure:"order"`

	// ParentID marks the question as conditional on another question's answer.
	ParentID string `json:"parent_id,omitempty" yaml:"parent_id,omitempty" mapstructure:"parent_id"`
	// TriggerCategoryTexts is the subset of the parent's categories that must be selected
	// for this question to be asked. Empty means "ask whenever the parent is answered".
	TriggerCategoryTexts []string `json:"trigger_category_texts,omitempty" yaml:"trigger_category_texts,omitempty" mapstructure:"trigger_category_texts"`
}

// IsChild reports whether the question is conditional on a parent.
func (q Question) IsChild() bool {
	return q.ParentID != ""
}
