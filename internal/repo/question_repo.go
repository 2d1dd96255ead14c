// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Question
// and QuestionChoice models.
//
// Soft deletion is explicit: every read that should see only live questions
// filters on is_active itself rather than relying on a shared query scope.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetlog/go-matching-backend/internal/domain"
)

// ListActiveQuestions returns all active questions with their choices,
// ordered by ordering key; choices are ordered within each question.
func ListActiveQuestions(ctx context.Context, db *gorm.DB) ([]domain.Question, error) {
	var out []domain.Question
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("order_key asc").
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_key asc")
		}).
		Find(&out).Error
	return out, err
}

// GetQuestion fetches a question (active or not) with its choices, or
// ErrNotFound.
func GetQuestion(ctx context.Context, db *gorm.DB, id string) (*domain.Question, error) {
	var q domain.Question
	err := db.WithContext(ctx).
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_key asc")
		}).
		Where("id = ?", id).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ActiveOrderKeyExists reports whether an active question already occupies
// the given ordering key, optionally excluding one question id (for updates).
func ActiveOrderKeyExists(ctx context.Context, db *gorm.DB, orderKey int, excludeID string) (bool, error) {
	q := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("order_key = ? AND is_active = ?", orderKey, true)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

// CreateQuestion inserts a question together with its choices. IDs are
// assigned here; the caller provides text, type, ordering keys, and weights.
func CreateQuestion(ctx context.Context, db *gorm.DB, q *domain.Question) error {
	now := time.Now().UTC()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.IsActive = true
	if q.Version == 0 {
		q.Version = 1
	}
	q.CreatedAt = now
	for i := range q.Choices {
		if q.Choices[i].ID == "" {
			q.Choices[i].ID = uuid.NewString()
		}
		q.Choices[i].QuestionID = q.ID
		q.Choices[i].CreatedAt = now
	}
	return db.WithContext(ctx).Create(q).Error
}

// SaveQuestion persists field changes on an existing question row.
func SaveQuestion(ctx context.Context, db *gorm.DB, q *domain.Question) error {
	return db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", q.ID).
		Updates(map[string]any{
			"question_text": q.QuestionText,
			"question_type": q.QuestionType,
			"order_key":     q.OrderKey,
			"is_active":     q.IsActive,
			"version":       q.Version,
		}).Error
}

// ReplaceChoices deletes a question's choices and inserts the given set.
// Runs on the handle it is given, so wrap it in a transaction with the
// question update.
func ReplaceChoices(ctx context.Context, db *gorm.DB, questionID string, choices []domain.QuestionChoice) error {
	if err := db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Delete(&domain.QuestionChoice{}).Error; err != nil {
		return err
	}
	if len(choices) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range choices {
		if choices[i].ID == "" {
			choices[i].ID = uuid.NewString()
		}
		choices[i].QuestionID = questionID
		choices[i].CreatedAt = now
	}
	return db.WithContext(ctx).Create(&choices).Error
}

// DeactivateQuestion soft-deletes a question. Returns ErrNotFound if no row
// was touched.
func DeactivateQuestion(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListQuestionsByIDs returns the questions for the given ids keyed by id.
// Missing ids are simply absent from the map; the caller decides whether
// that is an error. Inactive questions are included: answers reference
// questions by id and must resolve even after a soft delete.
func ListQuestionsByIDs(ctx context.Context, db *gorm.DB, ids []string) (map[string]domain.Question, error) {
	out := make(map[string]domain.Question, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Question
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, q := range rows {
		out[q.ID] = q
	}
	return out, nil
}

// ListChoicesByIDs returns the choices for the given ids keyed by id.
func ListChoicesByIDs(ctx context.Context, db *gorm.DB, ids []string) (map[string]domain.QuestionChoice, error) {
	out := make(map[string]domain.QuestionChoice, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.QuestionChoice
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, c := range rows {
		out[c.ID] = c
	}
	return out, nil
}

// ListAllChoices returns every choice keyed by id, for scoring lookups.
func ListAllChoices(ctx context.Context, db *gorm.DB) (map[string]domain.QuestionChoice, error) {
	var rows []domain.QuestionChoice
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]domain.QuestionChoice, len(rows))
	for _, c := range rows {
		out[c.ID] = c
	}
	return out, nil
}

// ListQuestionOrderKeys returns every question's ordering key keyed by
// question id, for scoring lookups.
func ListQuestionOrderKeys(ctx context.Context, db *gorm.DB) (map[string]int, error) {
	var rows []domain.Question
	if err := db.WithContext(ctx).Select("id", "order_key").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, q := range rows {
		out[q.ID] = q.OrderKey
	}
	return out, nil
}
