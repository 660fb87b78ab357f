package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

func TestSessionFactory_NewQuick_Defaults(t *testing.T) {
	s, err := newTestFactory().NewQuick(NewQuickInput{
		SlpID:     uuid.New().String(),
		StudentID: uuid.New().String(),
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsActive() {
		t.Error("new session should be active")
	}
	if s.IsFinished() {
		t.Error("new session should not be finished")
	}
	if s.TotalTrials() != 0 {
		t.Error("new session should have no trials")
	}
	if s.Notes() != nil {
		t.Error("new session should have no notes")
	}
	if s.Seed().Value() < 0 || s.Seed().Value() >= valueobject.SeedUpperBound {
		t.Errorf("seed out of range: %d", s.Seed().Value())
	}
	if s.CreatedAt().Time().UnixMilli() != testNowMs {
		t.Errorf("createdAt should come from the clock, got %v", s.CreatedAt().Time())
	}
}

func TestSessionFactory_NewQuick_ExplicitSeedAndBlankNotes(t *testing.T) {
	seed := int64(42)
	blank := "  "

	s, err := newTestFactory().NewQuick(NewQuickInput{
		SlpID:     uuid.New().String(),
		StudentID: uuid.New().String(),
		Seed:      &seed,
		Notes:     &blank,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Seed().Value() != 42 {
		t.Errorf("got seed %d, want 42", s.Seed().Value())
	}
	if s.Notes() != nil {
		t.Error("blank notes should normalize to nil")
	}
}

func TestSessionFactory_NewQuick_SameParticipantIsNotCheckedHere(t *testing.T) {
	id := uuid.New().String()

	_, err := newTestFactory().NewQuick(NewQuickInput{SlpID: id, StudentID: id})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionFactory_NewQuick_MalformedStudentID(t *testing.T) {
	_, err := newTestFactory().NewQuick(NewQuickInput{SlpID: uuid.New().String(), StudentID: "nope"})

	if err == nil {
		t.Fatal("expected error")
	}
	if field := apperror.AsAppError(err).Details[0].Field; field != "studentId" {
		t.Errorf("got field %q, want studentId", field)
	}
}

func TestSessionFactory_FromPrimitives_FinishedInFuture_ReturnsError(t *testing.T) {
	s := newTestSession(t)
	p := s.ToPrimitives()
	future := valueobject.EpochMsToTime(testNowMs).Add(time.Minute)
	p.FinishedAt = &future

	_, err := newTestFactory().FromPrimitives(p)

	if err == nil {
		t.Fatal("expected error")
	}
	if code := apperror.AsAppError(err).Details[0].Code; code != valueobject.CodeTimestampInFuture {
		t.Errorf("got %q, want %q", code, valueobject.CodeTimestampInFuture)
	}
}

func TestSessionFactory_FromPrimitives_FirstErrorWins(t *testing.T) {
	p := SessionPrimitives{
		ID:        "bad-id",
		SlpID:     "also-bad",
		StudentID: uuid.New().String(),
		CreatedAt: valueobject.EpochMsToTime(testNowMs),
	}

	_, err := newTestFactory().FromPrimitives(p)

	appErr := apperror.AsAppError(err)
	if len(appErr.Details) != 1 || appErr.Details[0].Field != "id" {
		t.Errorf("expected single error on id, got %+v", appErr.Details)
	}
}

func TestSessionFactory_FromPrimitives_CoercesTrialTimestamps(t *testing.T) {
	p := newTestSession(t).ToPrimitives()
	p.Trials = []TrialPrimitives{{Correct: true, TsEpochMs: 20.7}, {Correct: false, TsEpochMs: 10.2}}

	s, err := newTestFactory().FromPrimitives(p)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	trials := s.Trials()
	if trials[0].TsEpochMs != 20 || trials[1].TsEpochMs != 10 {
		t.Errorf("unexpected trials: %+v", trials)
	}
}
