package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"

	"github.com/meetlog/go-matching-backend/internal/codes"
	"github.com/meetlog/go-matching-backend/internal/domain"
	"github.com/meetlog/go-matching-backend/internal/services"
)

// scoredMatching seeds a question at order 3, creates a matching with two
// participants, and submits one answer each (choice indices a and b).
func scoredMatching(t *testing.T, db *gorm.DB, a, b int) (*domain.Matching, *domain.Question) {
	t.Helper()
	ctx := context.Background()

	q := seedWeightedQuestion(t, db, 3, 0.2, 0.8)

	ms := services.NewMatchingService(db, codes.New(6, ""))
	as := services.NewAnswerService(db)

	m, err := ms.Create(ctx)
	if err != nil {
		t.Fatalf("create matching: %v", err)
	}
	for _, idx := range []int{a, b} {
		p, err := ms.Join(ctx, m.Code)
		if err != nil {
			t.Fatalf("join: %v", err)
		}
		err = as.Submit(ctx, p.ParticipantCode, []services.AnswerSubmission{
			{QuestionID: q.ID, ChoiceID: q.Choices[idx].ID},
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	return m, q
}

func TestCreateRecord_FullFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	h := newTestHandlers(t, db)
	m, _ := scoredMatching(t, db, 1, 0) // temps 0.8 and 0.2

	r := gin.New()
	r.POST("/records/create/:matchingId", h.CreateRecord)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/records/create/"+m.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("create record -> %d body=%s", w.Code, w.Body.String())
	}
	var rec domain.Record
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("json: %v", err)
	}
	if math.Abs(rec.Temperature-0.5) > 1e-9 || math.Abs(rec.TemperatureDiff-0.6) > 1e-9 {
		t.Fatalf("temps got (%v, %v)", rec.Temperature, rec.TemperatureDiff)
	}
	if rec.RecordID == "" || !rec.IsActive {
		t.Fatalf("unexpected record: %#v", rec)
	}
	if _, okQ := rec.Summary["Q3"]; !okQ {
		t.Fatalf("summary missing Q3: %#v", rec.Summary)
	}

	// The matching is completed in the same transaction.
	var got domain.Matching
	if err := db.First(&got, "id = ?", m.ID).Error; err != nil {
		t.Fatalf("reload matching: %v", err)
	}
	if got.Status != domain.MatchingCompleted || got.CompletedAt == nil {
		t.Fatalf("matching not completed: %#v", got)
	}

	// Second create -> 400 conflict, first record untouched.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/records/create/"+m.ID, nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second create -> %d", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Code != ErrCodeConflict {
		t.Fatalf("error code = %q", body.Code)
	}
}

func TestCreateRecord_NotFoundAndNoAnswers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	h := newTestHandlers(t, db)

	r := gin.New()
	r.POST("/records/create/:matchingId", h.CreateRecord)

	// Unknown matching -> 404.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/records/create/33333333-3333-4333-8333-333333333333", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown matching -> %d", w.Code)
	}

	// Matching without answers -> 400 no_answers.
	ms := services.NewMatchingService(db, codes.New(6, ""))
	m, err := ms.Create(context.Background())
	if err != nil {
		t.Fatalf("create matching: %v", err)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/records/create/"+m.ID, nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("no answers -> %d", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Code != ErrCodeNoAnswers {
		t.Fatalf("error code = %q", body.Code)
	}
}

func TestRecordFetchAndDeactivate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	h := newTestHandlers(t, db)
	m, _ := scoredMatching(t, db, 1, 1)

	r := gin.New()
	r.POST("/records/create/:matchingId", h.CreateRecord)
	r.GET("/records/matching/:matchingId", h.GetRecordByMatching)
	r.PUT("/records/:recordId/deactivate", h.DeactivateRecord)
	r.GET("/records/:recordId", h.GetRecord)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/records/create/"+m.ID, nil))
	var rec domain.Record
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("json: %v", err)
	}

	// By matching id.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records/matching/"+m.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("by matching -> %d", w.Code)
	}

	// Deactivate -> 200 with empty body.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/records/"+rec.RecordID+"/deactivate", nil))
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Fatalf("deactivate -> %d body=%q", w.Code, w.Body.String())
	}

	// Scores survive deactivation.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records/"+rec.RecordID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get -> %d", w.Code)
	}
	var after domain.Record
	if err := json.Unmarshal(w.Body.Bytes(), &after); err != nil {
		t.Fatalf("json: %v", err)
	}
	if after.IsActive {
		t.Fatalf("record still active")
	}
	if math.Abs(after.Temperature-rec.Temperature) > 1e-9 {
		t.Fatalf("temperature changed on deactivate")
	}

	// Unknown ids -> 404.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records/44444444-4444-4444-8444-444444444444", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown record -> %d", w.Code)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/records/44444444-4444-4444-8444-444444444444/deactivate", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown deactivate -> %d", w.Code)
	}
}

func TestListRecords_Pagination_And_ETag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	h := newTestHandlers(t, db)

	r := gin.New()
	r.POST("/records/create/:matchingId", h.CreateRecord)
	r.GET("/records", h.ListRecords)

	// Empty listing still carries pagination and an ETag.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("empty list -> %d", w.Code)
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}

	// Unchanged data + If-None-Match -> 304.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified {
		t.Fatalf("if-none-match -> %d", w.Code)
	}

	// Create a record; the ETag must rotate and listings include it.
	m, _ := scoredMatching(t, db, 1, 0)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/records/create/"+m.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("create record -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/records?page=1&page_size=10", nil)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stale etag list -> %d", w.Code)
	}
	var out ListRecordsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.Pagination.Total != 1 || len(out.Records) != 1 {
		t.Fatalf("unexpected page: %#v", out.Pagination)
	}
	if out.Pagination.HasNext {
		t.Fatalf("single page must not have next")
	}

	// Temperature filter excludes the record.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records?min_temp=0.9", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("filtered list -> %d", w.Code)
	}
	out = ListRecordsResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.Pagination.Total != 0 || len(out.Records) != 0 {
		t.Fatalf("filter leaked records: %#v", out.Pagination)
	}
}
