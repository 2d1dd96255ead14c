// Answer HTTP handlers.
//
// This file exposes REST endpoints for questionnaire submissions:
//   - POST /answers/submit/{participantCode}  (full-replace submission)
//   - GET  /answers/{participantCode}         (current answer set)
//
// A submission replaces the participant's entire previous answer set; there is
// no partial save. The participant code is the bearer credential: anyone
// holding it may submit or read that participant's answers.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meetlog/go-matching-backend/internal/http/middleware"
	"github.com/meetlog/go-matching-backend/internal/repo"
	"github.com/meetlog/go-matching-backend/internal/services"
)

// SubmitAnswersRequest is the JSON payload for an answer submission.
type SubmitAnswersRequest struct {
	// Answers lists one (question, choice) pair per answered question.
	Answers []services.AnswerSubmission `json:"answers" binding:"required"`
}

// SubmitAnswers godoc
// @ID          submitAnswers
// @Summary     Submit answers
// @Description Replaces the participant's full answer set atomically.
// @Tags        Answers
// @Accept      json
// @Produce     json
//
// @Param       participantCode  path  string  true  "Participant bearer code"  format(uuid)
// @Param       body             body  handlers.SubmitAnswersRequest  true  "Answer payload"
//
// @Success     200  {string} string "OK (empty body)"
// @Failure     400  {object} handlers.ErrorResponse "Empty or duplicate answers"
// @Failure     404  {object} handlers.ErrorResponse "Unknown participant, question, or choice"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /answers/submit/{participantCode} [post]
func (h *Handlers) SubmitAnswers(c *gin.Context) {
	ctx := c.Request.Context()
	participantCode := c.Param("participantCode")

	var req SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	// Idempotency (replay path). A submission replaces the whole answer set,
	// so a replayed key is acknowledged without re-running the write.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" {
		if svc, okSvc := h.answerSvc.(*services.AnswerService); okSvc && svc.DB != nil {
			if rec, err := repo.GetIdempotency(ctx, svc.DB, participantCode, idemKey, time.Now().UTC()); err == nil && rec != nil {
				c.Header("Idempotency-Replayed", "true")
				okEmpty(c)
				return
			}
		}
	}

	err := h.answerSvc.Submit(ctx, participantCode, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyAnswers):
			fail(c, http.StatusBadRequest, ErrCodeEmptyAnswers, "answer list is empty")
		case errors.Is(err, services.ErrDuplicateQuestion):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrParticipantNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "participant not found")
		case errors.Is(err, services.ErrQuestionNotFound),
			errors.Is(err, services.ErrChoiceNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	// Idempotency (store path), best effort.
	if idemKey != "" {
		if svc, okSvc := h.answerSvc.(*services.AnswerService); okSvc && svc.DB != nil {
			ttl := h.idemTTL
			if ttl <= 0 {
				ttl = 24 * time.Hour
			}
			_, _ = repo.CreateIdempotency(ctx, svc.DB, participantCode, idemKey, http.StatusOK, ttl)
		}
	}

	okEmpty(c)
}

// GetAnswers godoc
// @ID          getAnswers
// @Summary     Fetch a participant's answers
// @Tags        Answers
// @Produce     json
//
// @Param       participantCode  path  string  true  "Participant bearer code"  format(uuid)
//
// @Success     200  {array}  domain.Answer
// @Failure     404  {object} handlers.ErrorResponse "Participant not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /answers/{participantCode} [get]
func (h *Handlers) GetAnswers(c *gin.Context) {
	answers, err := h.answerSvc.GetByParticipant(c.Request.Context(), c.Param("participantCode"))
	if err != nil {
		if errors.Is(err, services.ErrParticipantNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "participant not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, answers)
}
