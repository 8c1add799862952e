package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/surveyflow"
	"github.com/aretw0/surveyflow/internal/logging"
	"github.com/stretchr/testify/require"
)

const rideSurvey = `
survey_id: ride-feedback
language: en
template:
  name: Ride Feedback
  organization: Acme Rides
questions:
  - id: q1
    text: How was your ride?
    criteria: open
    order: 1
  - id: q2
    text: Was the driver friendly?
    criteria: categorical
    categories: ["Good", "Bad"]
    order: 2
  - id: q3
    text: What went wrong?
    criteria: open
    order: 3
    parent_id: q2
    trigger_category_texts: ["Bad"]
`

const brokenSurvey = `
questions:
  - id: q1
    text: First
  - id: q2
    text: Orphan
    parent_id: missing
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testCompiler() *surveyflow.Compiler {
	return surveyflow.New(
		surveyflow.WithLogger(logging.NewNop()),
		surveyflow.WithCallbackURL("https://hooks.example.com/answers"),
	)
}
