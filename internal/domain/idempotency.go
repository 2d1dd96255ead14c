// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// Idempotency records a previously processed answer submission, keyed by
// (participant_code, key). It enables safe retries of POST
// /answers/submit/{participantCode}: a replayed Idempotency-Key is
// acknowledged without re-executing the replace.
type Idempotency struct {
	ID              string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	ParticipantCode string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_participant_key,priority:1"`
	Key             string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_participant_key,priority:2"`
	Status          int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt       time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt       time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
