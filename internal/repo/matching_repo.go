// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Matching
// and Participant models.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a row is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetlog/go-matching-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateMatching inserts a new Matching in the waiting state with the given
// join code. The ID is a randomly generated UUID and CreatedAt is set to UTC.
// A code collision surfaces as the driver's unique-constraint error.
func CreateMatching(ctx context.Context, db *gorm.DB, code string) (*domain.Matching, error) {
	m := &domain.Matching{
		ID:        uuid.NewString(),
		Code:      code,
		Status:    domain.MatchingWaiting,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// GetMatchingByCode fetches a matching by its join code, or ErrNotFound.
func GetMatchingByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Matching, error) {
	var m domain.Matching
	err := db.WithContext(ctx).
		Where("code = ?", code).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMatchingByID fetches a matching by its primary key, or ErrNotFound.
func GetMatchingByID(ctx context.Context, db *gorm.DB, id string) (*domain.Matching, error) {
	var m domain.Matching
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MatchingCodeExists reports whether any matching, historical or live, holds
// the given code. Codes are never reused.
func MatchingCodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Matching{}).
		Where("code = ?", code).
		Count(&n).Error
	return n > 0, err
}

// CountParticipants returns the number of participants in a matching.
func CountParticipants(ctx context.Context, db *gorm.DB, matchingID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Participant{}).
		Where("matching_id = ?", matchingID).
		Count(&n).Error
	return n, err
}

// CreateParticipant inserts a participant for a matching with the given
// participant code.
func CreateParticipant(ctx context.Context, db *gorm.DB, matchingID, participantCode string) (*domain.Participant, error) {
	p := &domain.Participant{
		ID:              uuid.NewString(),
		MatchingID:      matchingID,
		ParticipantCode: participantCode,
		JoinedAt:        time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetParticipantByCode fetches a participant by their opaque submission
// handle, or ErrNotFound.
func GetParticipantByCode(ctx context.Context, db *gorm.DB, participantCode string) (*domain.Participant, error) {
	var p domain.Participant
	err := db.WithContext(ctx).
		Where("participant_code = ?", participantCode).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateMatchingStatus moves a matching to the given status. Returns
// ErrNotFound if no row was touched.
func UpdateMatchingStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Matching{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CompleteMatching stamps a matching completed with the given completion
// time. Returns ErrNotFound if no row was touched.
func CompleteMatching(ctx context.Context, db *gorm.DB, id string, at time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Matching{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       domain.MatchingCompleted,
			"completed_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
