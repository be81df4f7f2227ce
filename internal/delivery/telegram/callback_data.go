package telegram

import (
	"strconv"
	"strings"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

// Callback action constants.
const (
	actionQuiz = "quiz"
)

// Quiz sub-actions.
const (
	quizAnswer = "answer"
	quizPrev   = "prev"
	quizNext   = "next"
	quizSubmit = "submit"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuizAnswerCallback builds callback data for choosing an option of a question.
func buildQuizAnswerCallback(index int, choice entities.Choice) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(index), string(choice)},
	}.encode()
}

func buildQuizNavCallback(sub string) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{sub},
	}.encode()
}

// parseQuizAnswer extracts index and choice from the params of an answer callback.
func parseQuizAnswer(params []string) (int, string, bool) {
	if len(params) != 3 || params[0] != quizAnswer {
		return 0, "", false
	}
	index, err := strconv.Atoi(params[1])
	if err != nil || index < 0 {
		return 0, "", false
	}
	return index, params[2], true
}
