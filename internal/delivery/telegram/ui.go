package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

// buildQuestionKeyboard builds the option buttons and the wizard navigation for a question.
func buildQuestionKeyboard(v *entities.QuestionView) tgbotapi.InlineKeyboardMarkup {
	var options []tgbotapi.InlineKeyboardButton
	for _, c := range entities.Choices {
		label := strings.ToUpper(string(c))
		if c == v.Selected {
			label = "✅ " + label
		}
		options = append(options, tgbotapi.NewInlineKeyboardButtonData(label, buildQuizAnswerCallback(v.Index, c)))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if !v.IsFirst {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildQuizNavCallback(quizPrev)))
	}
	if v.IsLast {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("📨 Submit", buildQuizNavCallback(quizSubmit)))
	} else {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildQuizNavCallback(quizNext)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(options...),
		tgbotapi.NewInlineKeyboardRow(nav...),
	)
}
