package compiler

import (
	"strings"
	"testing"

	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestQuestionNodeName(t *testing.T) {
	tests := []struct {
		index int
		id    string
		want  string
	}{
		{0, "q1", "question_1_q1"},
		{4, "How-Was It?", "question_5_how_was_it"},
		{1, "__x__", "question_2_x"},
		{2, "ÁB", "question_3_b"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, QuestionNodeName(tt.index, tt.id))
		})
	}
}

func TestQuestionNodeName_Truncates(t *testing.T) {
	name := QuestionNodeName(0, strings.Repeat("a", 100))
	assert.Equal(t, "question_1_"+strings.Repeat("a", maxNameSuffix), name)
}

func TestNewPlan_StableSortByOrder(t *testing.T) {
	questions := []domain.Question{open("c", 3), open("a", 1), open("b", 1)}

	p := NewPlan(questions)

	ids := make([]string, len(p.Questions))
	for i, q := range p.Questions {
		ids[i] = q.ID
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, "c", questions[0].ID, "input must not be reordered")
}

func TestPlan_FindNextSkipsChildren(t *testing.T) {
	p := NewPlan([]domain.Question{
		categorical("p", 1, "A", "B"),
		child(open("x", 2), "p", "A"),
		open("after", 3),
	})

	assert.Equal(t, "question_3_after", p.FindNext(0))
	assert.Equal(t, "question_3_after", p.FindNext(1))
	assert.Equal(t, domain.NodeEnd, p.FindNext(2))
	assert.Equal(t, "question_1_p", p.First())
}

func TestPlan_OrphanIsTopLevel(t *testing.T) {
	p := NewPlan([]domain.Question{
		open("q1", 1),
		child(open("q2", 2), "ghost", "A"),
		open("q3", 3),
	})

	assert.False(t, p.IsChild(1))
	assert.Equal(t, "question_2_q2", p.FindNext(0))
	assert.Equal(t, "question_3_q3", p.FindNext(1))

	edges := Route(p, en)
	assert.True(t, hasEdge(edges, "question_1_q1", "question_2_q2"))
	assert.True(t, hasEdge(edges, "question_2_q2", "question_3_q3"))
}

func TestPlan_FirstWithoutQuestions(t *testing.T) {
	assert.Empty(t, NewPlan(nil).First())
}

func TestPlan_Finals(t *testing.T) {
	t.Run("regular tail", func(t *testing.T) {
		p := NewPlan([]domain.Question{open("a", 1), open("b", 2)})
		assert.Equal(t, []string{"question_2_b"}, p.Finals())
	})

	t.Run("section at the end", func(t *testing.T) {
		p := NewPlan(threeQuestions())
		assert.Equal(t, []string{"question_2_q2", "question_3_q3"}, p.Finals())
	})

	t.Run("middle children are not final", func(t *testing.T) {
		p := NewPlan([]domain.Question{
			categorical("p", 1, "A", "B"),
			child(open("x", 2), "p", "A"),
			child(open("y", 3), "p", "A"),
		})
		assert.Equal(t, []string{"question_1_p", "question_3_y"}, p.Finals())
	})

	t.Run("parent without skip categories", func(t *testing.T) {
		p := NewPlan([]domain.Question{
			categorical("p", 1, "A"),
			child(open("x", 2), "p", "A"),
		})
		assert.Equal(t, []string{"question_2_x"}, p.Finals())
	})

	t.Run("section followed by a question", func(t *testing.T) {
		p := NewPlan([]domain.Question{
			categorical("p", 1, "A", "B"),
			child(open("x", 2), "p", "A"),
			open("z", 3),
		})
		assert.Equal(t, []string{"question_3_z"}, p.Finals())
	})
}
