package compiler

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// Conditions holds the natural-language edge predicates for one language.
type Conditions struct {
	IdentityConfirmed string
	Agreed            string
	Declined          string
	WrapUpDone        string
	Answered          string
	Matches           string // fmt pattern taking the joined category list
	Submitted         string
}

// MatchAny renders the condition "answer matches one of categories".
func (c Conditions) MatchAny(categories []string) string {
	return fmt.Sprintf(c.Matches, strings.Join(categories, ", "))
}

// catalog holds every language-dependent string and prompt template.
type catalog struct {
	conditions Conditions
	defaults   promptData

	global      *template.Template
	entry       *template.Template
	opening     *template.Template
	decline     *template.Template
	contextBlk  *template.Template
	scale       *template.Template
	categorical *template.Template
	open        *template.Template
	generic     *template.Template

	scaleVar       string
	categoricalVar string
	openVar        string
	genericVar     string

	hangupMessage string
	endMessage    string
}

// promptData is the template input shared by every prompt.
type promptData struct {
	AgentName        string
	Organization     string
	Purpose          string
	Subject          string
	RespondentName   string
	OpeningScript    string
	TimeLimitMinutes int
	ForbiddenTopics  []string

	Question   string
	ScaleMax   int
	Categories []string
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

func render(t *template.Template, data promptData) string {
	var sb strings.Builder
	// Templates are static; an execution error is a programming error.
	if err := t.Execute(&sb, data); err != nil {
		panic(fmt.Sprintf("compiler: render %s: %v", t.Name(), err))
	}
	return strings.TrimSpace(sb.String())
}

var catalogs = map[domain.Language]*catalog{
	domain.LanguageEnglish: {
		conditions: Conditions{
			IdentityConfirmed: "The person confirmed they are the intended respondent",
			Agreed:            "The person agreed to participate in the survey",
			Declined:          "The person wants to end the call or does not want to participate",
			WrapUpDone:        "The wrap-up message was delivered",
			Answered:          "The person answered the question",
			Matches:           "The person's answer matches: %s",
			Submitted:         "The answers were submitted",
		},
		defaults: promptData{
			AgentName:        "Alex",
			Organization:     "our team",
			Purpose:          "to understand your experience and improve our service",
			Subject:          "your recent experience with us",
			TimeLimitMinutes: DefaultTimeLimitMinutes,
		},
		global: mustTemplate("global", `
You are {{.AgentName}}, a friendly and concise phone survey agent calling on behalf of {{.Organization}}.
Speak naturally, ask one question at a time and never invent questions that are not part of the survey.
Keep the whole call under {{.TimeLimitMinutes}} minutes.
{{- if .ForbiddenTopics}}
Never discuss the following topics and politely steer the conversation back to the survey if they come up: {{join .ForbiddenTopics ", "}}.
{{- end}}`),
		entry: mustTemplate("entry", `
Greet the person, introduce yourself as {{.AgentName}} from {{.Organization}}
{{- if .RespondentName}} and confirm that you are speaking with {{.RespondentName}}{{else}} and confirm that you are speaking with the right person{{end}}.
If it is a wrong number or the person is not available, apologize briefly and say goodbye. Do not start the survey yet.`),
		opening: mustTemplate("opening", `
{{- if .OpeningScript}}
Say the following, adapting it naturally to the conversation: "{{.OpeningScript}}"
{{- else}}
Explain that you are calling about {{.Subject}} and that the survey takes about {{.TimeLimitMinutes}} minutes.
{{- end}}
Ask whether they are willing to answer a few short questions.`),
		decline: mustTemplate("decline", `
The person does not want to continue. Thank them for their time, let them know they can reach {{.Organization}} later if they change their mind, and say goodbye.`),
		contextBlk: mustTemplate("context", `
If the person asks for context: the survey was commissioned by {{.Organization}}; this call is about {{.Subject}}; the purpose of the survey is {{.Purpose}}.`),
		scale: mustTemplate("scale", `
Ask the following question: "{{.Question}}".
Do not ask for a number right away. Listen for how the person describes their experience and the sentiment behind it, then infer a rating between 1 and {{.ScaleMax}}.
Only if the reply gives no usable signal, ask them to rate it from 1 to {{.ScaleMax}}.`),
		categorical: mustTemplate("categorical", `
Ask the following question: "{{.Question}}".
Do not read the list of options unless the person asks for them. Map the reply onto the closest of these options: {{join .Categories ", "}}.
If no option clearly matches, ask one short clarifying follow-up question, then choose the closest option.`),
		open: mustTemplate("open", `
Ask the following question: "{{.Question}}".
Let the person answer freely and capture their reply in full.
If the reply is extremely short (fewer than 5 words) you may ask at most two brief follow-up questions inviting more detail.
If the person signals that they want to move on or stop, do not ask any further follow-up questions.`),
		generic: mustTemplate("generic", `
Ask the following question: "{{.Question}}" and capture the reply.`),
		scaleVar:       "The rating inferred from the reply, a whole number between 1 and %d.",
		categoricalVar: "The option that best matches the reply.",
		openVar:        "The person's full reply, verbatim.",
		genericVar:     "The person's reply.",
		hangupMessage:  "Thank you for your time. Goodbye!",
		endMessage:     "Those are all my questions. Thank you very much for your answers. Goodbye!",
	},
	domain.LanguageSpanish: {
		conditions: Conditions{
			IdentityConfirmed: "La persona confirmó que es el destinatario de la llamada",
			Agreed:            "La persona aceptó participar en la encuesta",
			Declined:          "La persona quiere terminar la llamada o no quiere participar",
			WrapUpDone:        "Se entregó el mensaje de despedida",
			Answered:          "La persona respondió la pregunta",
			Matches:           "La respuesta de la persona coincide con: %s",
			Submitted:         "Las respuestas fueron enviadas",
		},
		defaults: promptData{
			AgentName:        "Alex",
			Organization:     "nuestro equipo",
			Purpose:          "conocer su experiencia y mejorar nuestro servicio",
			Subject:          "su experiencia reciente con nosotros",
			TimeLimitMinutes: DefaultTimeLimitMinutes,
		},
		global: mustTemplate("global", `
Eres {{.AgentName}}, un agente de encuestas telefónicas amable y conciso que llama en nombre de {{.Organization}}.
Habla con naturalidad, haz una pregunta a la vez y nunca inventes preguntas que no formen parte de la encuesta.
Mantén la llamada completa por debajo de {{.TimeLimitMinutes}} minutos.
{{- if .ForbiddenTopics}}
Nunca hables de los siguientes temas y, si surgen, vuelve amablemente a la encuesta: {{join .ForbiddenTopics ", "}}.
{{- end}}`),
		entry: mustTemplate("entry", `
Saluda a la persona, preséntate como {{.AgentName}} de {{.Organization}}
{{- if .RespondentName}} y confirma que hablas con {{.RespondentName}}{{else}} y confirma que hablas con la persona correcta{{end}}.
Si es un número equivocado o la persona no está disponible, discúlpate brevemente y despídete. No comiences la encuesta todavía.`),
		opening: mustTemplate("opening", `
{{- if .OpeningScript}}
Di lo siguiente, adaptándolo con naturalidad a la conversación: "{{.OpeningScript}}"
{{- else}}
Explica que llamas por {{.Subject}} y que la encuesta dura unos {{.TimeLimitMinutes}} minutos.
{{- end}}
Pregunta si está dispuesta a responder algunas preguntas breves.`),
		decline: mustTemplate("decline", `
La persona no quiere continuar. Agradécele su tiempo, indícale que puede comunicarse con {{.Organization}} más adelante si cambia de opinión y despídete.`),
		contextBlk: mustTemplate("context", `
Si la persona pide contexto: la encuesta fue encargada por {{.Organization}}; esta llamada es sobre {{.Subject}}; el propósito de la encuesta es {{.Purpose}}.`),
		scale: mustTemplate("scale", `
Haz la siguiente pregunta: "{{.Question}}".
No pidas un número de inmediato. Escucha cómo la persona describe su experiencia y el sentimiento detrás de ella, y deduce una calificación entre 1 y {{.ScaleMax}}.
Solo si la respuesta no da ninguna señal útil, pídele que califique del 1 al {{.ScaleMax}}.`),
		categorical: mustTemplate("categorical", `
Haz la siguiente pregunta: "{{.Question}}".
No leas la lista de opciones a menos que la persona la pida. Asocia la respuesta con la opción más cercana entre: {{join .Categories ", "}}.
Si ninguna opción coincide claramente, haz una breve pregunta aclaratoria y luego elige la opción más cercana.`),
		open: mustTemplate("open", `
Haz la siguiente pregunta: "{{.Question}}".
Deja que la persona responda libremente y registra su respuesta completa.
Si la respuesta es muy corta (menos de 5 palabras) puedes hacer como máximo dos preguntas breves de seguimiento para invitarla a dar más detalle.
Si la persona indica que quiere continuar o terminar, no hagas más preguntas de seguimiento.`),
		generic: mustTemplate("generic", `
Haz la siguiente pregunta: "{{.Question}}" y registra la respuesta.`),
		scaleVar:       "La calificación deducida de la respuesta, un número entero entre 1 y %d.",
		categoricalVar: "La opción que mejor coincide con la respuesta.",
		openVar:        "La respuesta completa de la persona, textual.",
		genericVar:     "La respuesta de la persona.",
		hangupMessage:  "Gracias por su tiempo. ¡Adiós!",
		endMessage:     "Esas son todas mis preguntas. Muchas gracias por sus respuestas. ¡Adiós!",
	},
}

// catalogFor returns the catalog for lang, falling back to English.
func catalogFor(lang domain.Language) *catalog {
	if c, ok := catalogs[lang]; ok {
		return c
	}
	return catalogs[domain.LanguageEnglish]
}

// ConditionsFor returns the edge predicates for lang, falling back to English.
func ConditionsFor(lang domain.Language) Conditions {
	return catalogFor(lang).conditions
}

// SupportsLanguage reports whether lang has its own prompt catalog and profile.
func SupportsLanguage(lang domain.Language) bool {
	_, ok := catalogs[lang]
	return ok
}
