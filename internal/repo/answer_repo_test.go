package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/meetlog/go-matching-backend/internal/domain"
)

func newAnswerRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("answer_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedAnswerFixture creates a matching with two participants and one question
// with two choices, returning the pieces tests need.
func seedAnswerFixture(t *testing.T, db *gorm.DB) (m *domain.Matching, p1, p2 *domain.Participant, q *domain.Question) {
	t.Helper()
	ctx := context.Background()

	m, err := CreateMatching(ctx, db, "ANSW22")
	if err != nil {
		t.Fatalf("seed matching: %v", err)
	}
	p1, err = CreateParticipant(ctx, db, m.ID, "p1-code")
	if err != nil {
		t.Fatalf("seed p1: %v", err)
	}
	p2, err = CreateParticipant(ctx, db, m.ID, "p2-code")
	if err != nil {
		t.Fatalf("seed p2: %v", err)
	}

	q = &domain.Question{
		QuestionText: "How is it going?",
		QuestionType: "sentiment",
		OrderKey:     3,
		Choices: []domain.QuestionChoice{
			{ChoiceText: "Fine", ChoiceValue: "fine", OrderKey: 1, TemperatureWeight: 0.5},
			{ChoiceText: "Great", ChoiceValue: "great", OrderKey: 2, TemperatureWeight: 0.9},
		},
	}
	if err := CreateQuestion(ctx, db, q); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return m, p1, p2, q
}

func TestCreateAnswers_EmptyIsNoop(t *testing.T) {
	db := newAnswerRepoDB(t)
	if err := CreateAnswers(context.Background(), db, nil); err != nil {
		t.Fatalf("CreateAnswers(nil): %v", err)
	}
}

func TestCreateAnswers_AssignsIDsAndPersists(t *testing.T) {
	db := newAnswerRepoDB(t)
	_, p1, _, q := seedAnswerFixture(t, db)

	answers := []domain.Answer{
		{ParticipantID: p1.ID, QuestionID: q.ID, ChoiceID: q.Choices[0].ID},
	}
	if err := CreateAnswers(context.Background(), db, answers); err != nil {
		t.Fatalf("CreateAnswers: %v", err)
	}
	if answers[0].ID == "" {
		t.Fatalf("expected assigned ID")
	}

	got, err := ListAnswersByParticipant(context.Background(), db, p1.ID)
	if err != nil {
		t.Fatalf("ListAnswersByParticipant: %v", err)
	}
	if len(got) != 1 || got[0].ChoiceID != q.Choices[0].ID {
		t.Fatalf("unexpected answers: %+v", got)
	}
}

func TestCreateAnswers_DuplicateQuestionForParticipant(t *testing.T) {
	db := newAnswerRepoDB(t)
	_, p1, _, q := seedAnswerFixture(t, db)
	ctx := context.Background()

	first := []domain.Answer{{ParticipantID: p1.ID, QuestionID: q.ID, ChoiceID: q.Choices[0].ID}}
	if err := CreateAnswers(ctx, db, first); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	second := []domain.Answer{{ParticipantID: p1.ID, QuestionID: q.ID, ChoiceID: q.Choices[1].ID}}
	if err := CreateAnswers(ctx, db, second); err == nil {
		t.Fatalf("expected unique constraint violation for same (participant, question)")
	}
}

func TestDeleteAnswersByParticipant_ScopedToParticipant(t *testing.T) {
	db := newAnswerRepoDB(t)
	_, p1, p2, q := seedAnswerFixture(t, db)
	ctx := context.Background()

	both := []domain.Answer{
		{ParticipantID: p1.ID, QuestionID: q.ID, ChoiceID: q.Choices[0].ID},
		{ParticipantID: p2.ID, QuestionID: q.ID, ChoiceID: q.Choices[1].ID},
	}
	if err := CreateAnswers(ctx, db, both); err != nil {
		t.Fatalf("seed answers: %v", err)
	}

	if err := DeleteAnswersByParticipant(ctx, db, p1.ID); err != nil {
		t.Fatalf("DeleteAnswersByParticipant: %v", err)
	}

	gone, err := ListAnswersByParticipant(ctx, db, p1.ID)
	if err != nil {
		t.Fatalf("list p1: %v", err)
	}
	if len(gone) != 0 {
		t.Fatalf("expected p1 answers deleted, got %+v", gone)
	}
	kept, err := ListAnswersByParticipant(ctx, db, p2.ID)
	if err != nil {
		t.Fatalf("list p2: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected p2 answers untouched, got %+v", kept)
	}
}

func TestListAnswersByMatching_PreloadsAndScopes(t *testing.T) {
	db := newAnswerRepoDB(t)
	m, p1, p2, q := seedAnswerFixture(t, db)
	ctx := context.Background()

	// A second matching whose answers must not leak into the first.
	other, err := CreateMatching(ctx, db, "OTHR33")
	if err != nil {
		t.Fatalf("seed other matching: %v", err)
	}
	po, err := CreateParticipant(ctx, db, other.ID, "po-code")
	if err != nil {
		t.Fatalf("seed other participant: %v", err)
	}

	all := []domain.Answer{
		{ParticipantID: p1.ID, QuestionID: q.ID, ChoiceID: q.Choices[0].ID},
		{ParticipantID: p2.ID, QuestionID: q.ID, ChoiceID: q.Choices[1].ID},
		{ParticipantID: po.ID, QuestionID: q.ID, ChoiceID: q.Choices[0].ID},
	}
	if err := CreateAnswers(ctx, db, all); err != nil {
		t.Fatalf("seed answers: %v", err)
	}

	got, err := ListAnswersByMatching(ctx, db, m.ID)
	if err != nil {
		t.Fatalf("ListAnswersByMatching: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 answers for matching, got %d", len(got))
	}
	for _, a := range got {
		if a.ParticipantID == po.ID {
			t.Fatalf("answer from other matching leaked: %+v", a)
		}
		if a.Question.ID != q.ID {
			t.Fatalf("expected Question preloaded, got %+v", a.Question)
		}
		if a.Choice.ID == "" {
			t.Fatalf("expected Choice preloaded, got %+v", a.Choice)
		}
	}
}
