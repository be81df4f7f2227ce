package repository

import (
	"context"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/sheet"
)

var questionColumns = []string{
	"question", "option_a", "option_b", "option_c", "option_d", "correct_answer",
}

// QuestionRepository provides positional access to the questions worksheet.
type QuestionRepository struct {
	store sheet.Store
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(store sheet.Store) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns the question bank in presentation order.
func (r *QuestionRepository) List(ctx context.Context) ([]entities.Question, error) {
	_, recs, err := readRecords(ctx, r.store, sheet.TableQuestions)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Question, 0, len(recs))
	for _, rec := range recs {
		out = append(out, questionFromRecord(rec))
	}
	return out, nil
}

// Add appends a question to the end of the bank.
func (r *QuestionRepository) Add(ctx context.Context, q entities.Question) error {
	base, recs, err := readRecords(ctx, r.store, sheet.TableQuestions)
	if err != nil {
		return err
	}
	recs = append(recs, questionToRecord(q))
	return writeRecords(ctx, r.store, sheet.TableQuestions, questionColumns, base, recs)
}

// Update replaces the question at index.
func (r *QuestionRepository) Update(ctx context.Context, index int, q entities.Question) error {
	base, recs, err := readRecords(ctx, r.store, sheet.TableQuestions)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(recs) {
		return entities.ErrQuestionNotFound
	}
	recs[index] = questionToRecord(q)
	return writeRecords(ctx, r.store, sheet.TableQuestions, questionColumns, base, recs)
}

// Delete removes the question at index; later questions shift up.
func (r *QuestionRepository) Delete(ctx context.Context, index int) error {
	base, recs, err := readRecords(ctx, r.store, sheet.TableQuestions)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(recs) {
		return entities.ErrQuestionNotFound
	}
	recs = append(recs[:index], recs[index+1:]...)
	return writeRecords(ctx, r.store, sheet.TableQuestions, questionColumns, base, recs)
}

func questionFromRecord(rec sheet.Record) entities.Question {
	return entities.Question{
		Text:          rec.Get("question"),
		OptionA:       rec.Get("option_a"),
		OptionB:       rec.Get("option_b"),
		OptionC:       rec.Get("option_c"),
		OptionD:       rec.Get("option_d"),
		CorrectAnswer: rec.Get("correct_answer"),
	}
}

func questionToRecord(q entities.Question) sheet.Record {
	return sheet.Record{
		"question":       q.Text,
		"option_a":       q.OptionA,
		"option_b":       q.OptionB,
		"option_c":       q.OptionC,
		"option_d":       q.OptionD,
		"correct_answer": q.CorrectAnswer,
	}
}
