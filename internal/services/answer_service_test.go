package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/meetlog/go-matching-backend/internal/domain"
	"github.com/meetlog/go-matching-backend/internal/repo"
)

// seedPair creates a waiting matching with two joined participants and
// returns their codes.
func seedPair(t *testing.T, db *gorm.DB, ms *MatchingService) (matching *domain.Matching, codeA, codeB string) {
	t.Helper()
	ctx := context.Background()

	m, err := ms.Create(ctx)
	if err != nil {
		t.Fatalf("create matching: %v", err)
	}
	pA, err := ms.Join(ctx, m.Code)
	if err != nil {
		t.Fatalf("join A: %v", err)
	}
	pB, err := ms.Join(ctx, m.Code)
	if err != nil {
		t.Fatalf("join B: %v", err)
	}
	return m, pA.ParticipantCode, pB.ParticipantCode
}

// seedScoredQuestion inserts a question with one choice per weight given.
func seedScoredQuestion(t *testing.T, db *gorm.DB, orderKey int, weights ...float64) *domain.Question {
	t.Helper()
	q := &domain.Question{
		QuestionText: "scored question",
		QuestionType: "sentiment",
		OrderKey:     orderKey,
	}
	for i, w := range weights {
		q.Choices = append(q.Choices, domain.QuestionChoice{
			ChoiceText:        "choice",
			ChoiceValue:       "value",
			OrderKey:          i + 1,
			TemperatureWeight: w,
		})
	}
	if err := repo.CreateQuestion(context.Background(), db, q); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return q
}

func TestAnswerService_Submit_EmptyList(t *testing.T) {
	db := newSvcDB(t)
	s := NewAnswerService(db)
	err := s.Submit(context.Background(), "whatever", nil)
	if !errors.Is(err, ErrEmptyAnswers) {
		t.Fatalf("expected ErrEmptyAnswers, got %v", err)
	}
}

func TestAnswerService_Submit_UnknownParticipant(t *testing.T) {
	db := newSvcDB(t)
	s := NewAnswerService(db)
	q := seedScoredQuestion(t, db, 3, 0.5)

	err := s.Submit(context.Background(), "ghost", []AnswerSubmission{
		{QuestionID: q.ID, ChoiceID: q.Choices[0].ID},
	})
	if !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestAnswerService_Submit_UnknownQuestionAndChoice(t *testing.T) {
	db := newSvcDB(t)
	ms := newTestMatchingService(db)
	s := NewAnswerService(db)
	ctx := context.Background()

	_, codeA, _ := seedPair(t, db, ms)
	q := seedScoredQuestion(t, db, 3, 0.5)

	err := s.Submit(ctx, codeA, []AnswerSubmission{
		{QuestionID: "missing-question", ChoiceID: q.Choices[0].ID},
	})
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}

	err = s.Submit(ctx, codeA, []AnswerSubmission{
		{QuestionID: q.ID, ChoiceID: "missing-choice"},
	})
	if !errors.Is(err, ErrChoiceNotFound) {
		t.Fatalf("expected ErrChoiceNotFound, got %v", err)
	}

	// Nothing was written along the way.
	answers, err := s.GetByParticipant(ctx, codeA)
	if err != nil {
		t.Fatalf("GetByParticipant: %v", err)
	}
	if len(answers) != 0 {
		t.Fatalf("failed submission must not persist answers, got %+v", answers)
	}
}

func TestAnswerService_Submit_DuplicateQuestion(t *testing.T) {
	db := newSvcDB(t)
	ms := newTestMatchingService(db)
	s := NewAnswerService(db)

	_, codeA, _ := seedPair(t, db, ms)
	q := seedScoredQuestion(t, db, 3, 0.5, 0.7)

	err := s.Submit(context.Background(), codeA, []AnswerSubmission{
		{QuestionID: q.ID, ChoiceID: q.Choices[0].ID},
		{QuestionID: q.ID, ChoiceID: q.Choices[1].ID},
	})
	if !errors.Is(err, ErrDuplicateQuestion) {
		t.Fatalf("expected ErrDuplicateQuestion, got %v", err)
	}
}

func TestAnswerService_Submit_ReplacesPreviousSet(t *testing.T) {
	db := newSvcDB(t)
	ms := newTestMatchingService(db)
	s := NewAnswerService(db)
	ctx := context.Background()

	_, codeA, _ := seedPair(t, db, ms)
	q3 := seedScoredQuestion(t, db, 3, 0.2, 0.9)
	q4 := seedScoredQuestion(t, db, 4, 0.4)

	first := []AnswerSubmission{
		{QuestionID: q3.ID, ChoiceID: q3.Choices[0].ID},
		{QuestionID: q4.ID, ChoiceID: q4.Choices[0].ID},
	}
	if err := s.Submit(ctx, codeA, first); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	second := []AnswerSubmission{
		{QuestionID: q3.ID, ChoiceID: q3.Choices[1].ID},
	}
	if err := s.Submit(ctx, codeA, second); err != nil {
		t.Fatalf("second Submit: %v", err)
	}

	answers, err := s.GetByParticipant(ctx, codeA)
	if err != nil {
		t.Fatalf("GetByParticipant: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("expected exactly the second payload, got %d answers", len(answers))
	}
	if answers[0].QuestionID != q3.ID || answers[0].ChoiceID != q3.Choices[1].ID {
		t.Fatalf("unexpected surviving answer: %+v", answers[0])
	}
}

func TestAnswerService_GetByParticipant_UnknownCode(t *testing.T) {
	db := newSvcDB(t)
	s := NewAnswerService(db)
	if _, err := s.GetByParticipant(context.Background(), "ghost"); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestAnswerService_GetByMatching(t *testing.T) {
	db := newSvcDB(t)
	ms := newTestMatchingService(db)
	s := NewAnswerService(db)
	ctx := context.Background()

	if _, err := s.GetByMatching(ctx, "missing"); !errors.Is(err, ErrMatchingNotFound) {
		t.Fatalf("expected ErrMatchingNotFound, got %v", err)
	}

	m, codeA, codeB := seedPair(t, db, ms)
	q := seedScoredQuestion(t, db, 3, 0.5, 0.7)

	if err := s.Submit(ctx, codeA, []AnswerSubmission{{QuestionID: q.ID, ChoiceID: q.Choices[0].ID}}); err != nil {
		t.Fatalf("submit A: %v", err)
	}
	if err := s.Submit(ctx, codeB, []AnswerSubmission{{QuestionID: q.ID, ChoiceID: q.Choices[1].ID}}); err != nil {
		t.Fatalf("submit B: %v", err)
	}

	answers, err := s.GetByMatching(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByMatching: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	for _, a := range answers {
		if a.Question.ID != q.ID || a.Choice.ID == "" {
			t.Fatalf("expected preloaded associations, got %+v", a)
		}
	}
}
