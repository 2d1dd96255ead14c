// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Answer
// model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetlog/go-matching-backend/internal/domain"
)

// DeleteAnswersByParticipant removes a participant's full answer set.
// Used by the replace-on-submit flow; must run inside the same transaction
// as the subsequent insert.
func DeleteAnswersByParticipant(ctx context.Context, db *gorm.DB, participantID string) error {
	return db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Delete(&domain.Answer{}).Error
}

// CreateAnswers batch-inserts the given answers. IDs and timestamps are
// assigned here.
func CreateAnswers(ctx context.Context, db *gorm.DB, answers []domain.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range answers {
		if answers[i].ID == "" {
			answers[i].ID = uuid.NewString()
		}
		answers[i].CreatedAt = now
	}
	return db.WithContext(ctx).Create(&answers).Error
}

// ListAnswersByParticipant returns a participant's answers in insertion
// order (CreatedAt ASC, ID ASC for determinism).
func ListAnswersByParticipant(ctx context.Context, db *gorm.DB, participantID string) ([]domain.Answer, error) {
	var out []domain.Answer
	err := db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ListAnswersByMatching returns every answer across all participants of a
// matching, with the referenced Question and Choice rows preloaded for
// scoring and summary building. Ordered by participant then insertion for
// stable grouping.
func ListAnswersByMatching(ctx context.Context, db *gorm.DB, matchingID string) ([]domain.Answer, error) {
	var out []domain.Answer
	err := db.WithContext(ctx).
		Joins("JOIN participants ON participants.id = answers.participant_id").
		Where("participants.matching_id = ?", matchingID).
		Preload("Question").
		Preload("Choice").
		Order("answers.participant_id ASC, answers.created_at ASC, answers.id ASC").
		Find(&out).Error
	return out, err
}
