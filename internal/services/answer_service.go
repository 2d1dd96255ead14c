// Package services – AnswerService
//
// This file implements AnswerService, which owns questionnaire submissions.
// A submission is a full replace: the participant's previous answer set is
// deleted and the new one inserted inside a single transaction, so a
// concurrent read sees either the complete old set or the complete new set.
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meetlog/go-matching-backend/internal/domain"
	"github.com/meetlog/go-matching-backend/internal/repo"
)

// AnswerSubmission is one entry of a questionnaire submission.
type AnswerSubmission struct {
	QuestionID string `json:"question_id" binding:"required"`
	ChoiceID   string `json:"choice_id"   binding:"required"`
}

// AnswerService coordinates answer persistence.
type AnswerService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewAnswerService constructs an AnswerService.
func NewAnswerService(db *gorm.DB) *AnswerService {
	return &AnswerService{DB: db}
}

// Submit replaces the participant's answer set with the given one. All
// referenced questions and choices are resolved in two batched lookups before
// anything is written; an unknown id fails the whole submission.
func (s *AnswerService) Submit(ctx context.Context, participantCode string, items []AnswerSubmission) error {
	tr := otel.Tracer("services/AnswerService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(attribute.Int("answers.count", len(items))),
	)
	defer span.End()

	if len(items) == 0 {
		return ErrEmptyAnswers
	}

	seen := make(map[string]struct{}, len(items))
	questionIDs := make([]string, 0, len(items))
	choiceIDs := make([]string, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.QuestionID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateQuestion, it.QuestionID)
		}
		seen[it.QuestionID] = struct{}{}
		questionIDs = append(questionIDs, it.QuestionID)
		choiceIDs = append(choiceIDs, it.ChoiceID)
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participant, err := repo.GetParticipantByCode(ctx, tx, participantCode)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrParticipantNotFound
			}
			return err
		}

		questions, err := repo.ListQuestionsByIDs(ctx, tx, questionIDs)
		if err != nil {
			return err
		}
		choices, err := repo.ListChoicesByIDs(ctx, tx, choiceIDs)
		if err != nil {
			return err
		}

		answers := make([]domain.Answer, 0, len(items))
		for _, it := range items {
			if _, ok := questions[it.QuestionID]; !ok {
				return fmt.Errorf("%w: %s", ErrQuestionNotFound, it.QuestionID)
			}
			if _, ok := choices[it.ChoiceID]; !ok {
				return fmt.Errorf("%w: %s", ErrChoiceNotFound, it.ChoiceID)
			}
			answers = append(answers, domain.Answer{
				ParticipantID: participant.ID,
				QuestionID:    it.QuestionID,
				ChoiceID:      it.ChoiceID,
			})
		}

		if err := repo.DeleteAnswersByParticipant(ctx, tx, participant.ID); err != nil {
			return err
		}
		return repo.CreateAnswers(ctx, tx, answers)
	})
}

// GetByParticipant returns the participant's current answer set.
func (s *AnswerService) GetByParticipant(ctx context.Context, participantCode string) ([]domain.Answer, error) {
	participant, err := repo.GetParticipantByCode(ctx, s.DB, participantCode)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return repo.ListAnswersByParticipant(ctx, s.DB, participant.ID)
}

// GetByMatching returns every answer of every participant of a matching,
// with the question and choice rows preloaded.
func (s *AnswerService) GetByMatching(ctx context.Context, matchingID string) ([]domain.Answer, error) {
	if _, err := repo.GetMatchingByID(ctx, s.DB, matchingID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMatchingNotFound
		}
		return nil, err
	}
	return repo.ListAnswersByMatching(ctx, s.DB, matchingID)
}
