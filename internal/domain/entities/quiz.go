package entities

import (
	"math"
	"time"
)

// SessionStatus is the lifecycle state of a quiz session.
type SessionStatus string

const (
	StatusNotStarted SessionStatus = "not_started"
	StatusInProgress SessionStatus = "in_progress"
	StatusSubmitted  SessionStatus = "submitted"
)

// Direction is a wizard navigation step.
type Direction string

const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

// QuizSession is the per-login state of one quiz attempt.
// It holds a snapshot of the question bank so the order stays stable while the session lives.
type QuizSession struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Cursor      int            `json:"cursor"`
	Answers     map[int]Choice `json:"answers"`
	Questions   []Question     `json:"questions"`
	Status      SessionStatus  `json:"status"`
	StartedAt   time.Time      `json:"started_at"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
}

// NewQuizSession creates a session that has not been started.
func NewQuizSession(id, username string) *QuizSession {
	return &QuizSession{
		ID:       id,
		Username: username,
		Answers:  make(map[int]Choice),
		Status:   StatusNotStarted,
	}
}

// Start puts the session at the first question with no answers recorded.
func (qs *QuizSession) Start(questions []Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	qs.Questions = append([]Question(nil), questions...)
	qs.Cursor = 0
	qs.Answers = make(map[int]Choice)
	qs.Status = StatusInProgress
	qs.StartedAt = time.Now()
	qs.SubmittedAt = nil
	return nil
}

// Total returns the number of questions in the session.
func (qs *QuizSession) Total() int {
	return len(qs.Questions)
}

// IsActive reports whether the session accepts answers and navigation.
func (qs *QuizSession) IsActive() bool {
	return qs.Status == StatusInProgress
}

// Answer records a choice for the question at index, replacing any previous one.
// The cursor does not move.
func (qs *QuizSession) Answer(index int, choice Choice) error {
	if !qs.IsActive() {
		return ErrSessionClosed
	}
	if index < 0 || index >= qs.Total() {
		return ErrQuestionNotFound
	}
	c, err := ParseChoice(string(choice))
	if err != nil {
		return err
	}
	if qs.Answers == nil {
		qs.Answers = make(map[int]Choice)
	}
	qs.Answers[index] = c
	return nil
}

// Advance moves the cursor one step, clamped to the question range.
func (qs *QuizSession) Advance(dir Direction) error {
	if !qs.IsActive() {
		return ErrSessionClosed
	}
	switch dir {
	case DirectionPrev:
		if qs.Cursor > 0 {
			qs.Cursor--
		}
	case DirectionNext:
		if qs.Cursor < qs.Total()-1 {
			qs.Cursor++
		}
	}
	return nil
}

// AtLastQuestion reports whether submit is allowed.
func (qs *QuizSession) AtLastQuestion() bool {
	return qs.Total() > 0 && qs.Cursor == qs.Total()-1
}

// CanSubmit validates the submit precondition without changing the session.
func (qs *QuizSession) CanSubmit() error {
	if !qs.IsActive() {
		return ErrSessionClosed
	}
	if !qs.AtLastQuestion() {
		return ErrNotAtLastQuestion
	}
	return nil
}

// Score returns round(100 * correct / total). Unanswered questions never match.
func (qs *QuizSession) Score() int {
	return CalculateScore(qs.Questions, qs.Answers)
}

// Complete marks the session as submitted.
func (qs *QuizSession) Complete() {
	qs.Status = StatusSubmitted
	now := time.Now()
	qs.SubmittedAt = &now
}

// CalculateScore compares every recorded choice with the correct answer.
func CalculateScore(questions []Question, answers map[int]Choice) int {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if q.IsCorrect(answers[i]) {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}

// QuestionView is what the wizard shows for the question under the cursor.
type QuestionView struct {
	SessionID string   `json:"session_id"`
	Index     int      `json:"index"`
	Total     int      `json:"total"`
	Text      string   `json:"question"`
	Options   []string `json:"options"`
	Selected  Choice   `json:"selected,omitempty"`
	IsFirst   bool     `json:"is_first"`
	IsLast    bool     `json:"is_last"`
}

// CurrentView builds the view of the question under the cursor.
func (qs *QuizSession) CurrentView() (*QuestionView, error) {
	if !qs.IsActive() {
		return nil, ErrSessionClosed
	}
	if qs.Cursor < 0 || qs.Cursor >= qs.Total() {
		return nil, ErrQuestionNotFound
	}
	q := qs.Questions[qs.Cursor]
	return &QuestionView{
		SessionID: qs.ID,
		Index:     qs.Cursor,
		Total:     qs.Total(),
		Text:      q.Text,
		Options:   q.Options(),
		Selected:  qs.Answers[qs.Cursor],
		IsFirst:   qs.Cursor == 0,
		IsLast:    qs.AtLastQuestion(),
	}, nil
}

// QuizResult is the outcome of a submission.
type QuizResult struct {
	Username     string `json:"username"`
	Score        int    `json:"score"`
	Certified    bool   `json:"certified"`
	Attempts     int    `json:"attempts"`
	AttemptsLeft int    `json:"attempts_left"`
}
