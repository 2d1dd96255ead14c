// Package services – MatchingService
//
// This file implements the MatchingService, which owns the matching
// lifecycle: creating a matching with a unique join code, admitting up to the
// configured number of participants, and projecting lifecycle status for
// polling clients.
//
// The join path runs inside one transaction so the count-check-then-insert
// sequence cannot interleave with a concurrent join; a post-insert re-count
// rolls back any overshoot the database failed to serialize.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meetlog/go-matching-backend/internal/codes"
	"github.com/meetlog/go-matching-backend/internal/domain"
	"github.com/meetlog/go-matching-backend/internal/repo"
)

// MatchingStatus is the lifecycle projection served to polling clients.
type MatchingStatus struct {
	Code             string `json:"code"`
	Status           string `json:"status"`
	ParticipantCount int    `json:"participant_count"`
	MaxParticipants  int    `json:"max_participants"`
}

// MatchingService provides matching lifecycle operations.
type MatchingService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Codes generates matching and participant codes.
	Codes *codes.Generator

	// MaxParticipants caps how many participants may join one matching.
	MaxParticipants int
	// MaxCodeAttempts bounds the code-generation retry loop.
	MaxCodeAttempts int
}

// NewMatchingService constructs a MatchingService with sane defaults.
func NewMatchingService(db *gorm.DB, gen *codes.Generator) *MatchingService {
	return &MatchingService{
		DB:              db,
		Codes:           gen,
		MaxParticipants: 2,
		MaxCodeAttempts: 10,
	}
}

// Create generates a unique join code and inserts a new waiting matching.
// The generator retry loop is bounded; the unique index on the code column is
// the final arbiter, so a losing race simply consumes one attempt.
func (s *MatchingService) Create(ctx context.Context) (*domain.Matching, error) {
	tr := otel.Tracer("services/MatchingService")
	ctx, span := tr.Start(ctx, "Create")
	defer span.End()

	for attempt := 0; attempt < s.MaxCodeAttempts; attempt++ {
		code, err := s.Codes.MatchingCode()
		if err != nil {
			return nil, err
		}
		exists, err := repo.MatchingCodeExists(ctx, s.DB, code)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		m, err := repo.CreateMatching(ctx, s.DB, code)
		if err != nil {
			if isDuplicateKey(err) {
				// Concurrent creation grabbed the code between the probe and
				// the insert; spend another attempt.
				continue
			}
			return nil, err
		}
		span.SetAttributes(attribute.String("matching.code", m.Code))
		return m, nil
	}
	return nil, ErrCodeExhausted
}

// Join admits one participant into a waiting matching and flips the status to
// established when the matching reaches capacity. The loser of a concurrent
// join against the last free slot gets ErrMatchingFull.
func (s *MatchingService) Join(ctx context.Context, code string) (*domain.Participant, error) {
	tr := otel.Tracer("services/MatchingService")
	ctx, span := tr.Start(ctx, "Join",
		trace.WithAttributes(attribute.String("matching.code", code)),
	)
	defer span.End()

	var participant *domain.Participant
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.GetMatchingByCode(ctx, tx, code)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMatchingNotFound
			}
			return err
		}
		if m.Status != domain.MatchingWaiting {
			return ErrMatchingClosed
		}

		count, err := repo.CountParticipants(ctx, tx, m.ID)
		if err != nil {
			return err
		}
		if count >= int64(s.MaxParticipants) {
			return ErrMatchingFull
		}

		p, err := repo.CreateParticipant(ctx, tx, m.ID, codes.ParticipantCode())
		if err != nil {
			return err
		}

		// Guard against an overshoot the engine failed to serialize: a
		// re-count above capacity rolls the whole join back.
		count, err = repo.CountParticipants(ctx, tx, m.ID)
		if err != nil {
			return err
		}
		if count > int64(s.MaxParticipants) {
			return ErrMatchingFull
		}
		if count == int64(s.MaxParticipants) {
			if err := repo.UpdateMatchingStatus(ctx, tx, m.ID, domain.MatchingEstablished); err != nil {
				return err
			}
		}

		participant = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participant, nil
}

// Get fetches a matching by its join code.
func (s *MatchingService) Get(ctx context.Context, code string) (*domain.Matching, error) {
	m, err := repo.GetMatchingByCode(ctx, s.DB, code)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMatchingNotFound
		}
		return nil, err
	}
	return m, nil
}

// Status projects the matching lifecycle for polling clients.
func (s *MatchingService) Status(ctx context.Context, code string) (*MatchingStatus, error) {
	m, err := repo.GetMatchingByCode(ctx, s.DB, code)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMatchingNotFound
		}
		return nil, err
	}
	count, err := repo.CountParticipants(ctx, s.DB, m.ID)
	if err != nil {
		return nil, err
	}
	return &MatchingStatus{
		Code:             m.Code,
		Status:           m.Status,
		ParticipantCount: int(count),
		MaxParticipants:  s.MaxParticipants,
	}, nil
}
