package entities

import "strings"

// Choice is one of the four option letters.
type Choice string

const (
	ChoiceA Choice = "a"
	ChoiceB Choice = "b"
	ChoiceC Choice = "c"
	ChoiceD Choice = "d"
)

// Choices lists the option letters in presentation order.
var Choices = []Choice{ChoiceA, ChoiceB, ChoiceC, ChoiceD}

// ParseChoice normalizes user input into a Choice.
func ParseChoice(s string) (Choice, error) {
	c := Choice(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case ChoiceA, ChoiceB, ChoiceC, ChoiceD:
		return c, nil
	default:
		return "", ErrInvalidChoice
	}
}

// Question is a multiple-choice item of the question bank.
type Question struct {
	Text          string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
}

// Options returns the four option texts in a..d order.
func (q Question) Options() []string {
	return []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

// Validate checks that every field is filled and the correct answer is a letter a..d.
func (q Question) Validate() error {
	for _, f := range []string{q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer} {
		if strings.TrimSpace(f) == "" {
			return ErrMissingFields
		}
	}
	if _, err := ParseChoice(q.CorrectAnswer); err != nil {
		return err
	}
	return nil
}

// IsCorrect reports whether the choice matches the correct answer, ignoring case.
func (q Question) IsCorrect(c Choice) bool {
	if c == "" {
		return false
	}
	return strings.EqualFold(
		strings.TrimSpace(string(c)),
		strings.TrimSpace(q.CorrectAnswer),
	)
}
