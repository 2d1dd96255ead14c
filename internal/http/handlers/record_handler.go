// Record HTTP handlers.
//
// This file exposes REST endpoints for scored records:
//   - POST /records/create/{matchingId}   (score and finalize a matching)
//   - GET  /records/{recordId}            (fetch by external id)
//   - GET  /records/matching/{matchingId} (fetch by matching)
//   - PUT  /records/{recordId}/deactivate (soft-deactivate)
//   - GET  /records                       (paginated listing, filters, ETag)
//
// Records are immutable after creation except for the is_active flag, so the
// listing endpoint supports a weak ETag computed from the record count and
// newest creation timestamp.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meetlog/go-matching-backend/internal/domain"
	"github.com/meetlog/go-matching-backend/internal/repo"
	"github.com/meetlog/go-matching-backend/internal/services"
	"github.com/meetlog/go-matching-backend/internal/utils"
)

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListRecordsResponse wraps a page of records and pagination information.
type ListRecordsResponse struct {
	Records    []domain.Record `json:"records"`
	Pagination Pagination      `json:"pagination"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// recordFilter builds the repository filter from the listing query params.
func recordFilter(c *gin.Context) repo.RecordFilter {
	return repo.RecordFilter{
		MinTemperature: utils.FloatPtr(c.Query("min_temp")),
		MaxTemperature: utils.FloatPtr(c.Query("max_temp")),
		IsActive:       utils.BoolPtr(c.Query("is_active")),
		CreatedFrom:    utils.TimePtr(c.Query("start_date")),
		CreatedTo:      utils.TimePtr(c.Query("end_date")),
	}
}

// CreateRecord godoc
// @ID          createRecord
// @Summary     Score and finalize a matching
// @Description Derives the temperature record from all submitted answers and completes the matching.
// @Tags        Records
// @Produce     json
//
// @Param       matchingId  path  string  true  "Matching ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Record
// @Failure     400  {object} handlers.ErrorResponse "No answers or already scored"
// @Failure     404  {object} handlers.ErrorResponse "Matching not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /records/create/{matchingId} [post]
func (h *Handlers) CreateRecord(c *gin.Context) {
	rec, err := h.recordSvc.Create(c.Request.Context(), c.Param("matchingId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMatchingNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "matching not found")
		case errors.Is(err, services.ErrNoAnswers):
			fail(c, http.StatusBadRequest, ErrCodeNoAnswers, "no answers submitted for this matching")
		case errors.Is(err, services.ErrRecordExists):
			fail(c, http.StatusBadRequest, ErrCodeConflict, "record already exists for this matching")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, rec)
}

// GetRecord godoc
// @ID          getRecord
// @Summary     Fetch a record
// @Tags        Records
// @Produce     json
//
// @Param       recordId  path  string  true  "Record ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Record
// @Failure     404  {object} handlers.ErrorResponse "Record not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /records/{recordId} [get]
func (h *Handlers) GetRecord(c *gin.Context) {
	rec, err := h.recordSvc.Get(c.Request.Context(), c.Param("recordId"))
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "record not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, rec)
}

// GetRecordByMatching godoc
// @ID          getRecordByMatching
// @Summary     Fetch the record of a matching
// @Tags        Records
// @Produce     json
//
// @Param       matchingId  path  string  true  "Matching ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Record
// @Failure     404  {object} handlers.ErrorResponse "Record not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /records/matching/{matchingId} [get]
func (h *Handlers) GetRecordByMatching(c *gin.Context) {
	rec, err := h.recordSvc.GetByMatching(c.Request.Context(), c.Param("matchingId"))
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "record not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, rec)
}

// DeactivateRecord godoc
// @ID          deactivateRecord
// @Summary     Soft-deactivate a record
// @Description Flags the record inactive; scores and summary remain untouched.
// @Tags        Records
// @Produce     json
//
// @Param       recordId  path  string  true  "Record ID (UUID)"  format(uuid)
//
// @Success     200  {string} string "OK (empty body)"
// @Failure     404  {object} handlers.ErrorResponse "Record not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /records/{recordId}/deactivate [put]
func (h *Handlers) DeactivateRecord(c *gin.Context) {
	if err := h.recordSvc.Deactivate(c.Request.Context(), c.Param("recordId")); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "record not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	okEmpty(c)
}

// ListRecords godoc
// @ID          listRecords
// @Summary     List records (paginated)
// @Description Returns a page of records, newest first, with optional temperature, activity, and date filters. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Records
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Param       min_temp       query   number  false "Minimum temperature"
// @Param       max_temp       query   number  false "Maximum temperature"
// @Param       is_active      query   bool    false "Filter on the active flag"
// @Param       start_date     query   string  false "Created at or after (RFC 3339 or YYYY-MM-DD)"
// @Param       end_date       query   string  false "Created at or before (RFC 3339 or YYYY-MM-DD)"
//
// @Success     200  {object} handlers.ListRecordsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /records [get]
func (h *Handlers) ListRecords(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)
	filter := recordFilter(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isConcrete := h.recordSvc.(*services.RecordService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.RecordsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"records:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.recordSvc.ListPage(ctx, filter, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListRecordsResponse{
		Records: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
