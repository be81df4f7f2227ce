// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

const (
	msgWelcome = "Welcome to the STEM Flowlab Certification Quiz.\n\n" + msgHelp

	msgHelp = "Commands:\n" +
		"/signup <username> <password> <access code> [full name;NRIC;email] - register\n" +
		"/login <username> <password> - log in\n" +
		"/quiz - start the quiz\n" +
		"/status - score and attempts left\n" +
		"/certificate - download your certificate\n" +
		"/logout - log out"

	msgUnknownCommand   = "Unknown command. Send /help to see what I can do."
	msgInternalError    = "Something went wrong. Please try again later."
	msgUseSignup        = "Usage: /signup <username> <password> <access code> [full name;NRIC;email]"
	msgUseLogin         = "Usage: /login <username> <password>"
	msgSignedUp         = "Registration successful. You can now /login."
	msgLoggedOut        = "You have been logged out."
	msgAdminUseConsole  = "The admin console is only available on the web."
	msgNotLoggedIn      = "Please /login first."
	msgSessionExpired   = "This quiz is no longer active. Send /quiz to start again."
	msgCertificateReady = "Here is your certificate."
)

// userMessage maps domain errors to what the user sees.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, errNotLoggedIn):
		return msgNotLoggedIn, true
	case errors.Is(err, entities.ErrDuplicateUsername):
		return "Username already exists.", true
	case errors.Is(err, entities.ErrInvalidAccessCode):
		return "Invalid or inactive access code.", true
	case errors.Is(err, entities.ErrAccessCodeAlreadyUsed):
		return "This access code has already been used.", true
	case errors.Is(err, entities.ErrInvalidCredentials):
		return "Invalid username or password.", true
	case errors.Is(err, entities.ErrAttemptsExhausted):
		return fmt.Sprintf("You have used all %d attempts.", entities.MaxAttempts), true
	case errors.Is(err, entities.ErrAlreadyCertified):
		return "You are already certified. Send /certificate to download it.", true
	case errors.Is(err, entities.ErrMissingFields):
		return "Please fill in all required fields.", true
	case errors.Is(err, entities.ErrStorageUnavailable):
		return "Storage is unavailable right now. Please try again later.", true
	case errors.Is(err, entities.ErrNoQuestions):
		return "There are no questions yet. Please try again later.", true
	case errors.Is(err, entities.ErrInvalidChoice):
		return "Please choose one of the options A to D.", true
	case errors.Is(err, entities.ErrQuestionNotFound):
		return "That question is not part of your quiz. Send /quiz to continue.", true
	case errors.Is(err, entities.ErrNotAtLastQuestion):
		return "Go to the last question to submit.", true
	case errors.Is(err, entities.ErrSessionNotFound), errors.Is(err, entities.ErrSessionClosed):
		return msgSessionExpired, true
	case errors.Is(err, entities.ErrNotCertified):
		return "You need to pass the quiz before downloading a certificate.", true
	case errors.Is(err, entities.ErrUserNotFound):
		return msgNotLoggedIn, true
	default:
		return "", false
	}
}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// formatQuestion renders the question under the cursor with the recorded answer marked.
func formatQuestion(v *entities.QuestionView) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("Question %d of %d", v.Index+1, v.Total)))
	sb.WriteString("\n\n")
	sb.WriteString(md(v.Text))
	sb.WriteString("\n\n")

	for i, opt := range v.Options {
		c := entities.Choices[i]
		line := fmt.Sprintf("%s) %s", strings.ToUpper(string(c)), opt)
		if c == v.Selected {
			sb.WriteString("✅ " + bold(line))
		} else {
			sb.WriteString(md(line))
		}
		sb.WriteString("\n")
	}

	if v.IsLast {
		sb.WriteString("\n")
		sb.WriteString(md("This is the last question. Press Submit when you are done."))
	}

	return sb.String()
}

func formatResult(r *entities.QuizResult) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("Your score: %d%%", r.Score)))
	sb.WriteString("\n\n")

	if r.Certified {
		sb.WriteString(md("Congratulations, you passed! Send /certificate to download your certificate."))
		return sb.String()
	}

	sb.WriteString(md(fmt.Sprintf("You need %d%% to pass.", entities.PassScore)))
	sb.WriteString("\n")
	if r.AttemptsLeft > 0 {
		sb.WriteString(md(fmt.Sprintf("Attempts left: %d. Send /quiz to try again.", r.AttemptsLeft)))
	} else {
		sb.WriteString(md("You have no attempts left."))
	}
	return sb.String()
}

func formatStatus(u *entities.User) string {
	certified := "no"
	if u.Certified {
		certified = "yes"
	}
	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s",
		bold(u.Username),
		md(fmt.Sprintf("Last score: %d%%", u.Score)),
		md("Certified: "+certified),
		md(fmt.Sprintf("Attempts left: %d of %d", u.AttemptsLeft(), entities.MaxAttempts)),
	)
}
