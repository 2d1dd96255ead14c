// Package services defines the business logic for matchings, answers,
// questions, and records. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Matching-related errors.
var (
	// ErrMatchingNotFound indicates that no matching exists for the given
	// code or id.
	ErrMatchingNotFound = errors.New("matching not found")

	// ErrMatchingClosed is returned when a join is attempted on a matching
	// that has already left the waiting state.
	ErrMatchingClosed = errors.New("matching is no longer accepting participants")

	// ErrMatchingFull is returned when a join would exceed the participant
	// capacity of the matching.
	ErrMatchingFull = errors.New("matching is full")

	// ErrCodeExhausted is returned when the bounded code-generation loop
	// fails to find a free matching code.
	ErrCodeExhausted = errors.New("could not generate a unique matching code")
)

// Answer-related errors.
var (
	// ErrParticipantNotFound indicates that no participant exists for the
	// given participant code.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrEmptyAnswers is returned when a submission carries no answers.
	ErrEmptyAnswers = errors.New("answer list is empty")

	// ErrDuplicateQuestion is returned when a submission answers the same
	// question more than once.
	ErrDuplicateQuestion = errors.New("duplicate question in submission")

	// ErrQuestionNotFound indicates that a referenced question does not exist.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrChoiceNotFound indicates that a referenced choice does not exist.
	ErrChoiceNotFound = errors.New("choice not found")
)

// Question-catalog errors.
var (
	// ErrOrderTaken is returned when a create or update would give two active
	// questions the same ordering key.
	ErrOrderTaken = errors.New("ordering key already in use by an active question")

	// ErrNoChoices is returned when a question is created or updated without
	// any choices.
	ErrNoChoices = errors.New("question must have at least one choice")
)

// Record-related errors.
var (
	// ErrRecordNotFound indicates that the requested record does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordExists is returned when a record has already been created for
	// the matching, including when a concurrent creation won the race.
	ErrRecordExists = errors.New("record already exists for this matching")

	// ErrNoAnswers is returned when record creation is attempted before any
	// participant has submitted answers.
	ErrNoAnswers = errors.New("no answers submitted for this matching")
)

// isDuplicateKey reports whether err is a storage-level unique constraint
// violation. The pure-Go SQLite driver surfaces these as plain-text errors, so
// string matching is the portable check alongside gorm's translated sentinel.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "duplicate key")
}
