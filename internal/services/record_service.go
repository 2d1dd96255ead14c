// Package services – RecordService
//
// This file implements RecordService, which finalizes a matching into its
// immutable scored Record. Scoring resolves choice weights and question
// ordering keys by live lookup at creation time, feeds them through the
// injected TemperatureStrategy, builds the answer summary, and persists the
// record together with the matching's completion inside one transaction.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meetlog/go-matching-backend/internal/codes"
	"github.com/meetlog/go-matching-backend/internal/domain"
	"github.com/meetlog/go-matching-backend/internal/repo"
)

// RecordService derives and serves scored records.
type RecordService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Strategy computes the temperature; resolved once at startup.
	Strategy TemperatureStrategy
}

// NewRecordService constructs a RecordService with the given strategy.
func NewRecordService(db *gorm.DB, strategy TemperatureStrategy) *RecordService {
	return &RecordService{DB: db, Strategy: strategy}
}

// Create scores the matching and persists its record, moving the matching to
// completed in the same transaction. The second of two concurrent calls for
// the same matching fails with ErrRecordExists; the first record is untouched.
func (s *RecordService) Create(ctx context.Context, matchingID string) (*domain.Record, error) {
	tr := otel.Tracer("services/RecordService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("matching.id", matchingID)),
	)
	defer span.End()

	var record *domain.Record
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		matching, err := repo.GetMatchingByID(ctx, tx, matchingID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMatchingNotFound
			}
			return err
		}

		exists, err := repo.RecordExistsForMatching(ctx, tx, matching.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrRecordExists
		}

		answers, err := repo.ListAnswersByMatching(ctx, tx, matching.ID)
		if err != nil {
			return err
		}
		if len(answers) == 0 {
			return ErrNoAnswers
		}

		choices, err := repo.ListAllChoices(ctx, tx)
		if err != nil {
			return err
		}
		questionOrders, err := repo.ListQuestionOrderKeys(ctx, tx)
		if err != nil {
			return err
		}

		result := s.Strategy.Calculate(answers, choices, questionOrders)
		if result.Participants == 0 {
			log.Warn().
				Str("matching_id", matching.ID).
				Int("answers", len(answers)).
				Msg("no participant temperatures; storing zero record")
		}

		rec := &domain.Record{
			RecordID:        codes.RecordID(),
			MatchingID:      matching.ID,
			Temperature:     result.Average,
			TemperatureDiff: result.Diff,
			IsActive:        true,
			Summary:         buildSummary(answers, questionOrders),
		}
		if err := repo.CreateRecord(ctx, tx, rec); err != nil {
			if isDuplicateKey(err) {
				return ErrRecordExists
			}
			return err
		}
		if err := repo.CompleteMatching(ctx, tx, matching.ID, time.Now().UTC()); err != nil {
			return err
		}

		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Get fetches a record by its external id.
func (s *RecordService) Get(ctx context.Context, recordID string) (*domain.Record, error) {
	rec, err := repo.GetRecordByRecordID(ctx, s.DB, recordID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// GetByMatching fetches the record of a matching.
func (s *RecordService) GetByMatching(ctx context.Context, matchingID string) (*domain.Record, error) {
	rec, err := repo.GetRecordByMatchingID(ctx, s.DB, matchingID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Deactivate soft-deactivates a record. Scores remain untouched.
func (s *RecordService) Deactivate(ctx context.Context, recordID string) error {
	err := repo.DeactivateRecord(ctx, s.DB, recordID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// ListPage returns a filtered page of records plus the total count.
// It applies defaults for invalid page/pageSize.
func (s *RecordService) ListPage(ctx context.Context, f repo.RecordFilter, page, pageSize int) ([]domain.Record, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountRecords(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Record{}, 0, nil
	}

	items, err := repo.ListRecordsPage(ctx, s.DB, f, offset, pageSize)
	return items, total, err
}

// buildSummary keys each answered question by "Q<orderKey>" with the question
// and choice text captured at record-creation time. Informational only; plays
// no part in scoring.
func buildSummary(answers []domain.Answer, questionOrders map[string]int) domain.RecordSummary {
	summary := make(domain.RecordSummary, len(answers))
	for _, a := range answers {
		order, ok := questionOrders[a.QuestionID]
		if !ok {
			continue
		}
		summary[fmt.Sprintf("Q%d", order)] = domain.AnswerSummary{
			QuestionText: a.Question.QuestionText,
			ChoiceText:   a.Choice.ChoiceText,
			QuestionType: a.Question.QuestionType,
		}
	}
	return summary
}
