// Package domain defines the persistence models for matchings, participants,
// questions, answers, and records. These types are mapped with GORM and form
// the core data layer of the matching backend.
package domain

import (
	"time"
)

// Matching lifecycle states. Transitions are strictly forward:
// waiting → established → completed.
const (
	MatchingWaiting     = "waiting"
	MatchingEstablished = "established"
	MatchingCompleted   = "completed"
)

// Matching represents a short-lived pairing session identified by a short,
// human-enterable code. Up to two participants join a matching; once both
// have submitted their answers a single Record is derived from them.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Code: unique human-readable join code; the unique index is the final
//     arbiter of code uniqueness regardless of generator retries.
//   - Status: waiting | established | completed (enforced by DB constraint).
//   - CreatedAt: timestamp managed by GORM.
//   - CompletedAt: set when the record is created; nil before that.
type Matching struct {
	ID          string     `json:"id"           gorm:"type:char(36);primaryKey"`
	Code        string     `json:"code"         gorm:"type:varchar(10);not null;uniqueIndex:ux_matchings_code"`
	Status      string     `json:"status"       gorm:"type:varchar(20);not null;default:'waiting';check:status IN ('waiting','established','completed')"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Participants are owned by the matching and removed with it.
	Participants []Participant `json:"-" gorm:"foreignKey:MatchingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Matching.
func (Matching) TableName() string { return "matchings" }

// Participant is one side of a matching. The participant code is an opaque
// bearer credential: anyone holding it may submit or overwrite that
// participant's answers.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - MatchingID: foreign key to the owning matching (indexed).
//   - ParticipantCode: unique opaque submission handle (UUID-class randomness).
//   - JoinedAt: timestamp managed by GORM.
type Participant struct {
	ID              string    `json:"id"               gorm:"type:char(36);primaryKey"`
	MatchingID      string    `json:"matching_id"      gorm:"type:char(36);not null;index:idx_matching_participants"`
	ParticipantCode string    `json:"participant_code" gorm:"type:char(36);not null;uniqueIndex:ux_participants_code"`
	JoinedAt        time.Time `json:"joined_at"        gorm:"autoCreateTime"`

	// Answers are owned by the participant and removed with it.
	Answers []Answer `json:"-" gorm:"foreignKey:ParticipantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Participant.
func (Participant) TableName() string { return "participants" }

// Question is a questionnaire entry. Questions are soft-deleted via IsActive
// so historical answers keep a resolvable reference; the ordering key doubles
// as the lookup key into the scoring coefficient table. At most one active
// question may occupy a given ordering key, enforced by the service layer
// inside the create/update transactions.
type Question struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	QuestionText string    `json:"question_text" gorm:"type:text;not null"`
	QuestionType string    `json:"question_type" gorm:"type:varchar(50);not null"`
	OrderKey     int       `json:"order_key"     gorm:"column:order_key;not null;index"`
	IsActive     bool      `json:"is_active"     gorm:"not null;default:true"`
	Version      int       `json:"version"       gorm:"not null;default:1"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Choices are owned by the question and removed with it.
	Choices []QuestionChoice `json:"choices" gorm:"foreignKey:QuestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Question.
func (Question) TableName() string { return "questions" }

// QuestionChoice is one selectable option of a question. TemperatureWeight is
// author-supplied; the scorer must not assume it is normalized.
type QuestionChoice struct {
	ID                string    `json:"id"                 gorm:"type:char(36);primaryKey"`
	QuestionID        string    `json:"question_id"        gorm:"type:char(36);not null;index:idx_question_choices"`
	ChoiceText        string    `json:"choice_text"        gorm:"type:text;not null"`
	ChoiceValue       string    `json:"choice_value"       gorm:"type:varchar(100);not null"`
	OrderKey          int       `json:"order_key"          gorm:"column:order_key;not null"`
	TemperatureWeight float64   `json:"temperature_weight" gorm:"not null;default:0"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName returns the database table name for QuestionChoice.
func (QuestionChoice) TableName() string { return "question_choices" }

// Answer links a participant to the choice they picked for a question.
// Submission is a full replace, so after a submission completes there is at
// most one answer per (participant, question) pair; the unique index backs
// that up at the storage layer.
//
// Question and Choice are non-owning references: answers must survive
// question edits, which soft-delete rather than remove rows.
type Answer struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	ParticipantID string    `json:"participant_id" gorm:"type:char(36);not null;uniqueIndex:ux_answers_participant_question,priority:1"`
	QuestionID    string    `json:"question_id"    gorm:"type:char(36);not null;uniqueIndex:ux_answers_participant_question,priority:2"`
	ChoiceID      string    `json:"choice_id"      gorm:"type:char(36);not null;index"`
	CreatedAt     time.Time `json:"created_at"`

	Question Question       `json:"-" gorm:"foreignKey:QuestionID;references:ID"`
	Choice   QuestionChoice `json:"-" gorm:"foreignKey:ChoiceID;references:ID"`
}

// TableName returns the database table name for Answer.
func (Answer) TableName() string { return "answers" }

// AnswerSummary captures the question/choice text of one answer at record
// creation time, keyed by "Q<orderKey>" in RecordSummary.
type AnswerSummary struct {
	QuestionText string `json:"question_text"`
	ChoiceText   string `json:"choice_text"`
	QuestionType string `json:"question_type"`
}

// RecordSummary maps "Q<orderKey>" to the answered question/choice pair.
// When both participants answered the same question the later row wins; the
// summary is informational and plays no part in scoring.
type RecordSummary map[string]AnswerSummary

// Record is the immutable scored outcome of a matching. RecordID is an
// opaque external identifier, distinct from the database primary key and safe
// to expose to clients. The unique index on MatchingID enforces that a record
// is created at most once per matching, even under concurrent creation.
//
// Records are immutable after creation except for the IsActive flag.
type Record struct {
	ID              string        `json:"-"                gorm:"type:char(36);primaryKey"`
	RecordID        string        `json:"record_id"        gorm:"type:char(36);not null;uniqueIndex:ux_records_record_id"`
	MatchingID      string        `json:"matching_id"      gorm:"type:char(36);not null;uniqueIndex:ux_records_matching"`
	Temperature     float64       `json:"temperature"`
	TemperatureDiff float64       `json:"temperature_diff"`
	IsActive        bool          `json:"is_active"        gorm:"not null;default:true"`
	CreatedAt       time.Time     `json:"created_at"`
	Summary         RecordSummary `json:"summary"          gorm:"serializer:json"`

	Matching Matching `json:"-" gorm:"foreignKey:MatchingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Record.
func (Record) TableName() string { return "records" }
