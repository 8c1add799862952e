package compiler

import "github.com/aretw0/surveyflow/pkg/domain"

// Workflow-wide defaults.
const (
	DefaultBackgroundSound  = "office"
	DefaultTimeLimitMinutes = 10
	DefaultWorkflowName     = "Survey call"
)

// DefaultModel is the LLM selected for every conversation node.
var DefaultModel = domain.ModelSelector{Provider: "openai", Model: "gpt-4o"}

type profile struct {
	voice       domain.VoiceProfile
	transcriber domain.TranscriberProfile
}

var profiles = map[domain.Language]profile{
	domain.LanguageEnglish: {
		voice:       domain.VoiceProfile{Provider: "11labs", VoiceID: "burt", Model: "eleven_turbo_v2_5"},
		transcriber: domain.TranscriberProfile{Provider: "deepgram", Model: "nova-3", Language: "en"},
	},
	domain.LanguageSpanish: {
		voice:       domain.VoiceProfile{Provider: "11labs", VoiceID: "paula", Model: "eleven_multilingual_v2"},
		transcriber: domain.TranscriberProfile{Provider: "deepgram", Model: "nova-2", Language: "es"},
	},
}

func profileFor(lang domain.Language) profile {
	if p, ok := profiles[lang]; ok {
		return p
	}
	return profiles[domain.LanguageEnglish]
}
