package surveyflow

import (
	"strings"
	"unicode"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// sanitizeText strips control characters other than newline, tab and carriage return,
// so they never reach a spoken prompt.
func sanitizeText(s string) string {
	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func sanitizeTemplate(t domain.TemplateConfig) domain.TemplateConfig {
	t.Name = sanitizeText(t.Name)
	t.AgentName = sanitizeText(t.AgentName)
	t.Organization = sanitizeText(t.Organization)
	t.Purpose = sanitizeText(t.Purpose)
	t.OpeningScript = sanitizeText(t.OpeningScript)
	topics := make([]string, len(t.ForbiddenTopics))
	for i, topic := range t.ForbiddenTopics {
		topics[i] = sanitizeText(topic)
	}
	t.ForbiddenTopics = topics
	return t
}
