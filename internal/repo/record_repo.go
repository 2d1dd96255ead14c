// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Record
// model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetlog/go-matching-backend/internal/domain"
)

// RecordFilter narrows ListRecordsPage/CountRecords. Nil fields are ignored.
type RecordFilter struct {
	MinTemperature *float64
	MaxTemperature *float64
	IsActive       *bool
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

func (f RecordFilter) apply(q *gorm.DB) *gorm.DB {
	if f.MinTemperature != nil {
		q = q.Where("temperature >= ?", *f.MinTemperature)
	}
	if f.MaxTemperature != nil {
		q = q.Where("temperature <= ?", *f.MaxTemperature)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		q = q.Where("created_at <= ?", *f.CreatedTo)
	}
	return q
}

// CreateRecord inserts the scored record. The unique index on matching_id
// makes a concurrent double-create fail with a constraint violation, which
// the service maps to its conflict error.
func CreateRecord(ctx context.Context, db *gorm.DB, rec *domain.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(rec).Error
}

// GetRecordByRecordID fetches a record by its external id, or ErrNotFound.
func GetRecordByRecordID(ctx context.Context, db *gorm.DB, recordID string) (*domain.Record, error) {
	var rec domain.Record
	err := db.WithContext(ctx).
		Where("record_id = ?", recordID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetRecordByMatchingID fetches the record of a matching, or ErrNotFound.
func GetRecordByMatchingID(ctx context.Context, db *gorm.DB, matchingID string) (*domain.Record, error) {
	var rec domain.Record
	err := db.WithContext(ctx).
		Where("matching_id = ?", matchingID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecordExistsForMatching reports whether a matching already has a record.
func RecordExistsForMatching(ctx context.Context, db *gorm.DB, matchingID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Record{}).
		Where("matching_id = ?", matchingID).
		Count(&n).Error
	return n > 0, err
}

// DeactivateRecord sets is_active=false on a record by its external id.
// Returns ErrNotFound if no row was touched.
func DeactivateRecord(ctx context.Context, db *gorm.DB, recordID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Record{}).
		Where("record_id = ?", recordID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountRecords returns the number of records matching the filter.
func CountRecords(ctx context.Context, db *gorm.DB, f RecordFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.Record{})).Count(&total).Error
	return total, err
}

// ListRecordsPage returns a filtered page of records ordered by creation
// time descending. Use CountRecords to obtain the total for pagination
// metadata.
func ListRecordsPage(ctx context.Context, db *gorm.DB, f RecordFilter, offset, limit int) ([]domain.Record, error) {
	var out []domain.Record
	err := f.apply(db.WithContext(ctx).Model(&domain.Record{})).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
