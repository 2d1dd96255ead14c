// Question HTTP handlers.
//
// This file exposes REST endpoints for the question catalog:
//   - GET    /questions       (active catalog with choices, cache-first)
//   - GET    /questions/{id}  (question detail, active or not)
//   - POST   /questions       (create question with choices)
//   - PUT    /questions/{id}  (partial update, replaces choices when given)
//   - DELETE /questions/{id}  (soft delete)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetlog/go-matching-backend/internal/services"
)

// ListQuestions godoc
// @ID          listQuestions
// @Summary     List active questions
// @Description Returns the active question catalog with choices, ordered by ordering key.
// @Tags        Questions
// @Produce     json
//
// @Success     200  {array}  domain.Question
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	questions, err := h.questionSvc.ListActive(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, questions)
}

// GetQuestion godoc
// @ID          getQuestion
// @Summary     Fetch a question
// @Tags        Questions
// @Produce     json
//
// @Param       id  path  string  true  "Question ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Question
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id} [get]
func (h *Handlers) GetQuestion(c *gin.Context) {
	q, err := h.questionSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "question not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, q)
}

// CreateQuestion godoc
// @ID          createQuestion
// @Summary     Create a question
// @Description Creates an active question with its choices at version 1.
// @Tags        Questions
// @Accept      json
// @Produce     json
//
// @Param       body  body  services.CreateQuestionInput  true  "Question payload"
//
// @Success     201  {object} domain.Question
// @Failure     400  {object} handlers.ErrorResponse "Invalid payload or ordering key taken"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /questions [post]
func (h *Handlers) CreateQuestion(c *gin.Context) {
	var in services.CreateQuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	q, err := h.questionSvc.Create(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderTaken):
			fail(c, http.StatusBadRequest, ErrCodeOrderTaken, "ordering key already in use by an active question")
		case errors.Is(err, services.ErrNoChoices):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question must have at least one choice")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, q)
}

// UpdateQuestion godoc
// @ID          updateQuestion
// @Summary     Update a question
// @Description Applies a partial update, bumps the version, and replaces the choice set when one is provided.
// @Tags        Questions
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Question ID (UUID)"  format(uuid)
// @Param       body  body  services.UpdateQuestionInput  true  "Update payload"
//
// @Success     200  {object} domain.Question
// @Failure     400  {object} handlers.ErrorResponse "Invalid payload or ordering key taken"
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id} [put]
func (h *Handlers) UpdateQuestion(c *gin.Context) {
	var in services.UpdateQuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	q, err := h.questionSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestionNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "question not found")
		case errors.Is(err, services.ErrOrderTaken):
			fail(c, http.StatusBadRequest, ErrCodeOrderTaken, "ordering key already in use by an active question")
		case errors.Is(err, services.ErrNoChoices):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question must have at least one choice")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, q)
}

// DeleteQuestion godoc
// @ID          deleteQuestion
// @Summary     Soft-delete a question
// @Description Flags the question inactive; historical answers keep resolving.
// @Tags        Questions
// @Produce     json
//
// @Param       id  path  string  true  "Question ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id} [delete]
func (h *Handlers) DeleteQuestion(c *gin.Context) {
	if err := h.questionSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "question not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
