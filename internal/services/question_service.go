// Package services – QuestionService
//
// This file implements QuestionService, the catalog manager for questionnaire
// questions. Reads of the active catalog go through the Redis cache; every
// write invalidates it. Deletion is soft (is_active=false) so historical
// answers keep a resolvable reference, and at most one active question may
// occupy a given ordering key.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/meetlog/go-matching-backend/internal/cache"
	"github.com/meetlog/go-matching-backend/internal/domain"
	"github.com/meetlog/go-matching-backend/internal/repo"
)

// ChoiceInput is one selectable option of a question create/update request.
type ChoiceInput struct {
	ChoiceText        string  `json:"choice_text"  binding:"required"`
	ChoiceValue       string  `json:"choice_value" binding:"required"`
	OrderKey          int     `json:"order_key"    binding:"required"`
	TemperatureWeight float64 `json:"temperature_weight"`
}

// CreateQuestionInput is the payload for creating a question.
type CreateQuestionInput struct {
	QuestionText string        `json:"question_text" binding:"required"`
	QuestionType string        `json:"question_type" binding:"required"`
	OrderKey     int           `json:"order_key"     binding:"required"`
	Choices      []ChoiceInput `json:"choices"       binding:"required"`
}

// UpdateQuestionInput is the payload for updating a question. Nil fields are
// left unchanged; a non-nil Choices slice replaces the full choice set.
type UpdateQuestionInput struct {
	QuestionText *string       `json:"question_text"`
	QuestionType *string       `json:"question_type"`
	OrderKey     *int          `json:"order_key"`
	IsActive     *bool         `json:"is_active"`
	Choices      []ChoiceInput `json:"choices"`
}

// QuestionService manages the question catalog.
type QuestionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Cache is the active-catalog cache; nil-safe when Redis is disabled.
	Cache *cache.QuestionCache
}

// NewQuestionService constructs a QuestionService.
func NewQuestionService(db *gorm.DB, c *cache.QuestionCache) *QuestionService {
	return &QuestionService{DB: db, Cache: c}
}

// ListActive returns the active catalog, preferring the cache.
func (s *QuestionService) ListActive(ctx context.Context) ([]domain.Question, error) {
	if cached, ok := s.Cache.GetActive(ctx); ok {
		return cached, nil
	}
	questions, err := repo.ListActiveQuestions(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	s.Cache.SetActive(ctx, questions)
	return questions, nil
}

// Get fetches one question, active or not, with its choices.
func (s *QuestionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	q, err := repo.GetQuestion(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// Create inserts a new active question at version 1, rejecting an ordering
// key already held by another active question.
func (s *QuestionService) Create(ctx context.Context, in CreateQuestionInput) (*domain.Question, error) {
	if err := validateChoices(in.Choices); err != nil {
		return nil, err
	}

	var created *domain.Question
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := repo.ActiveOrderKeyExists(ctx, tx, in.OrderKey, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrOrderTaken
		}

		q := &domain.Question{
			QuestionText: strings.TrimSpace(in.QuestionText),
			QuestionType: strings.TrimSpace(in.QuestionType),
			OrderKey:     in.OrderKey,
			Choices:      toChoices(in.Choices),
		}
		if err := repo.CreateQuestion(ctx, tx, q); err != nil {
			return err
		}
		created = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx)
	return s.Get(ctx, created.ID)
}

// Update applies a partial update, bumps the version, and replaces the choice
// set when one is provided. A changed ordering key must not collide with
// another active question.
func (s *QuestionService) Update(ctx context.Context, id string, in UpdateQuestionInput) (*domain.Question, error) {
	if in.Choices != nil {
		if err := validateChoices(in.Choices); err != nil {
			return nil, err
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := repo.GetQuestion(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}

		if in.OrderKey != nil && *in.OrderKey != q.OrderKey {
			taken, err := repo.ActiveOrderKeyExists(ctx, tx, *in.OrderKey, q.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrOrderTaken
			}
			q.OrderKey = *in.OrderKey
		}
		if in.QuestionText != nil {
			q.QuestionText = strings.TrimSpace(*in.QuestionText)
		}
		if in.QuestionType != nil {
			q.QuestionType = strings.TrimSpace(*in.QuestionType)
		}
		if in.IsActive != nil {
			q.IsActive = *in.IsActive
		}
		q.Version++

		if err := repo.SaveQuestion(ctx, tx, q); err != nil {
			return err
		}
		if in.Choices != nil {
			if err := repo.ReplaceChoices(ctx, tx, q.ID, toChoices(in.Choices)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx)
	return s.Get(ctx, id)
}

// Delete soft-deletes a question, releasing its ordering key.
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	err := repo.DeactivateQuestion(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrQuestionNotFound
	}
	if err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}

func validateChoices(choices []ChoiceInput) error {
	if len(choices) == 0 {
		return ErrNoChoices
	}
	return nil
}

func toChoices(in []ChoiceInput) []domain.QuestionChoice {
	out := make([]domain.QuestionChoice, 0, len(in))
	for _, c := range in {
		out = append(out, domain.QuestionChoice{
			ChoiceText:        strings.TrimSpace(c.ChoiceText),
			ChoiceValue:       strings.TrimSpace(c.ChoiceValue),
			OrderKey:          c.OrderKey,
			TemperatureWeight: c.TemperatureWeight,
		})
	}
	return out
}
