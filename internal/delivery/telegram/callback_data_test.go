package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

func TestQuizCallbacks(t *testing.T) {
	t.Parallel()

	data := buildQuizAnswerCallback(3, entities.ChoiceC)
	assert.Equal(t, "quiz:answer:3:c", data)

	cd := decodeCallback(data)
	assert.Equal(t, actionQuiz, cd.Action)

	index, choice, ok := parseQuizAnswer(cd.Params)
	assert.True(t, ok)
	assert.Equal(t, 3, index)
	assert.Equal(t, "c", choice)

	assert.Equal(t, "quiz:submit", buildQuizNavCallback(quizSubmit))

	_, _, ok = parseQuizAnswer([]string{quizAnswer, "x", "a"})
	assert.False(t, ok)
	_, _, ok = parseQuizAnswer([]string{quizNext})
	assert.False(t, ok)
}

func TestParseSignupArgs(t *testing.T) {
	t.Parallel()

	in, ok := parseSignupArgs("alice pw C1")
	assert.True(t, ok)
	assert.Equal(t, "alice", in.Username)
	assert.Equal(t, "C1", in.AccessCode)
	assert.False(t, in.Identity.Complete())

	in, ok = parseSignupArgs("alice pw C1 Ali Bin Abu; 900101-01-1234 ;ali@example.com")
	assert.True(t, ok)
	assert.Equal(t, "Ali Bin Abu", in.FullName)
	assert.Equal(t, "900101-01-1234", in.NRIC)
	assert.Equal(t, "ali@example.com", in.Email)

	_, ok = parseSignupArgs("alice pw")
	assert.False(t, ok)
	_, ok = parseSignupArgs("alice pw C1 only a name")
	assert.False(t, ok)
}
