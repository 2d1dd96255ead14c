// Matching HTTP handlers.
//
// This file exposes REST endpoints for the matching lifecycle:
//   - POST /matching/create         (create a matching with a join code)
//   - POST /matching/join/{code}    (join a matching)
//   - GET  /matching/{code}         (fetch a matching)
//   - GET  /matching/status/{code}  (lifecycle projection for polling)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate domain/service errors into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meetlog/go-matching-backend/internal/domain"
	"github.com/meetlog/go-matching-backend/internal/repo"
	"github.com/meetlog/go-matching-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// MatchingService defines matching lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MatchingService interface {
	// Create generates a unique join code and starts a waiting matching.
	Create(ctx context.Context) (*domain.Matching, error)
	// Join admits one participant into a waiting matching.
	Join(ctx context.Context, code string) (*domain.Participant, error)
	// Get fetches a matching by its join code.
	Get(ctx context.Context, code string) (*domain.Matching, error)
	// Status projects the lifecycle state for polling clients.
	Status(ctx context.Context, code string) (*services.MatchingStatus, error)
}

// AnswerService defines questionnaire submission operations.
type AnswerService interface {
	// Submit replaces the participant's full answer set.
	Submit(ctx context.Context, participantCode string, items []services.AnswerSubmission) error
	// GetByParticipant returns the participant's current answer set.
	GetByParticipant(ctx context.Context, participantCode string) ([]domain.Answer, error)
}

// RecordService defines record derivation and retrieval operations.
type RecordService interface {
	// Create scores the matching and persists its immutable record.
	Create(ctx context.Context, matchingID string) (*domain.Record, error)
	// Get fetches a record by its external id.
	Get(ctx context.Context, recordID string) (*domain.Record, error)
	// GetByMatching fetches the record of a matching.
	GetByMatching(ctx context.Context, matchingID string) (*domain.Record, error)
	// Deactivate soft-deactivates a record.
	Deactivate(ctx context.Context, recordID string) error
	// ListPage returns a filtered page of records plus the total count.
	ListPage(ctx context.Context, f repo.RecordFilter, page, pageSize int) ([]domain.Record, int64, error)
}

// QuestionService defines question catalog operations.
type QuestionService interface {
	// ListActive returns the active catalog, cache-first.
	ListActive(ctx context.Context) ([]domain.Question, error)
	// Get fetches one question with its choices.
	Get(ctx context.Context, id string) (*domain.Question, error)
	// Create inserts a new active question.
	Create(ctx context.Context, in services.CreateQuestionInput) (*domain.Question, error)
	// Update applies a partial update and bumps the version.
	Update(ctx context.Context, id string, in services.UpdateQuestionInput) (*domain.Question, error)
	// Delete soft-deletes a question.
	Delete(ctx context.Context, id string) error
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for matchings, answers, records, and
// questions. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	matchingSvc MatchingService
	answerSvc   AnswerService
	recordSvc   RecordService
	questionSvc QuestionService

	// idemTTL bounds how long a stored Idempotency-Key stays replayable.
	// Zero falls back to 24h.
	idemTTL time.Duration
}

// New constructs and returns a Handlers instance bound to the given services.
func New(m MatchingService, a AnswerService, r RecordService, q QuestionService) *Handlers {
	return &Handlers{matchingSvc: m, answerSvc: a, recordSvc: r, questionSvc: q}
}

// SetIdempotencyTTL overrides the replay window for stored idempotency keys.
func (h *Handlers) SetIdempotencyTTL(d time.Duration) { h.idemTTL = d }

//
// Handlers
//

// CreateMatching godoc
// @ID          createMatching
// @Summary     Create a matching
// @Description Creates a new matching in the waiting state with a fresh join code.
// @Tags        Matching
// @Produce     json
//
// @Success     200  {object}  domain.Matching
// @Failure     500  {object}  handlers.ErrorResponse "Code generation exhausted / internal error"
// @Router      /matching/create [post]
func (h *Handlers) CreateMatching(c *gin.Context) {
	m, err := h.matchingSvc.Create(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrCodeExhausted) {
			fail(c, http.StatusInternalServerError, ErrCodeCodeExhausted, "could not generate a unique matching code")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, m)
}

// JoinMatching godoc
// @ID          joinMatching
// @Summary     Join a matching
// @Description Admits one participant into a waiting matching and returns the participant's bearer code.
// @Tags        Matching
// @Produce     json
//
// @Param       code  path  string  true  "Matching join code"  example(K7NQ2X)
//
// @Success     200  {object}  domain.Participant
// @Failure     400  {object}  handlers.ErrorResponse "Matching full or closed"
// @Failure     404  {object}  handlers.ErrorResponse "Matching not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /matching/join/{code} [post]
func (h *Handlers) JoinMatching(c *gin.Context) {
	p, err := h.matchingSvc.Join(c.Request.Context(), c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMatchingNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "matching not found")
		case errors.Is(err, services.ErrMatchingFull):
			fail(c, http.StatusBadRequest, ErrCodeMatchingFull, "matching is full")
		case errors.Is(err, services.ErrMatchingClosed):
			fail(c, http.StatusBadRequest, ErrCodeMatchingClosed, "matching is no longer accepting participants")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, p)
}

// GetMatching godoc
// @ID          getMatching
// @Summary     Fetch a matching
// @Tags        Matching
// @Produce     json
//
// @Param       code  path  string  true  "Matching join code"  example(K7NQ2X)
//
// @Success     200  {object}  domain.Matching
// @Failure     404  {object}  handlers.ErrorResponse "Matching not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /matching/{code} [get]
func (h *Handlers) GetMatching(c *gin.Context) {
	m, err := h.matchingSvc.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrMatchingNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "matching not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, m)
}

// GetMatchingStatus godoc
// @ID          getMatchingStatus
// @Summary     Fetch matching lifecycle status
// @Description Returns the status, participant count, and capacity for polling clients.
// @Tags        Matching
// @Produce     json
//
// @Param       code  path  string  true  "Matching join code"  example(K7NQ2X)
//
// @Success     200  {object}  services.MatchingStatus
// @Failure     404  {object}  handlers.ErrorResponse "Matching not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /matching/status/{code} [get]
func (h *Handlers) GetMatchingStatus(c *gin.Context) {
	st, err := h.matchingSvc.Status(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrMatchingNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "matching not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, st)
}
