package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

const testNowMs int64 = 1_714_564_800_000 // 2024-05-01T12:00:00Z

func newTestFactory() *SessionFactory {
	return NewSessionFactory(service.FixedClock(testNowMs), 0)
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := newTestFactory().NewQuick(NewQuickInput{
		SlpID:     uuid.New().String(),
		StudentID: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return s
}

func TestSession_WithTrial_AppendsAndLeavesOriginalUntouched(t *testing.T) {
	s := newTestSession(t)

	next := s.WithTrial(true, 1000.9)

	if s.TotalTrials() != 0 {
		t.Errorf("original should have 0 trials, got %d", s.TotalTrials())
	}
	if next.TotalTrials() != 1 {
		t.Fatalf("expected 1 trial, got %d", next.TotalTrials())
	}
	if got := next.Trials()[0].TsEpochMs; got != 1000 {
		t.Errorf("timestamp should be truncated, got %d", got)
	}
}

func TestSession_AccuracyPercent_NoTrials_IsZero(t *testing.T) {
	s := newTestSession(t)

	if s.AccuracyPercent() != 0 {
		t.Errorf("got %d, want 0", s.AccuracyPercent())
	}
}

func TestSession_AccuracyPercent_MatchesRoundedRatio(t *testing.T) {
	sequence := []bool{true, false, true, true, false, false, true}
	s := newTestSession(t)
	correct := 0

	for i, c := range sequence {
		s = s.WithTrial(c, float64(testNowMs+int64(i)))
		if c {
			correct++
		}
		total := i + 1
		if s.TotalTrials() != total {
			t.Fatalf("step %d: total %d, want %d", i, s.TotalTrials(), total)
		}
		want := AccuracyPercent(correct, total)
		if s.AccuracyPercent() != want {
			t.Errorf("step %d: accuracy %d, want %d", i, s.AccuracyPercent(), want)
		}
	}
}

func TestAccuracyPercent_RoundsHalfUp(t *testing.T) {
	cases := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{3, 3, 100},
	}
	for _, tc := range cases {
		if got := AccuracyPercent(tc.correct, tc.total); got != tc.want {
			t.Errorf("AccuracyPercent(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}

func TestSession_WithNotes_BlankClears(t *testing.T) {
	text := "needs practice"
	s, err := newTestSession(t).WithNotes(&text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blank := "   "
	cleared, err := s.WithNotes(&blank)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared.Notes() != nil {
		t.Errorf("expected notes to be cleared, got %q", *cleared.Notes())
	}
	if s.Notes() == nil || *s.Notes() != text {
		t.Error("original notes should be unchanged")
	}
}

func TestSession_WithNotes_TooLong_ReturnsError(t *testing.T) {
	long := strings.Repeat("x", valueobject.NotesMaxLength+1)

	_, err := newTestSession(t).WithNotes(&long)

	if err == nil {
		t.Fatal("expected error")
	}
	if code := apperror.AsAppError(err).Details[0].Code; code != valueobject.CodeStringTooLong {
		t.Errorf("got %q, want %q", code, valueobject.CodeStringTooLong)
	}
}

func TestSession_Finish_SetsFinishedAt(t *testing.T) {
	s := newTestSession(t)
	now := valueobject.EpochMsToTime(testNowMs)
	at, _ := valueobject.NewFinishedAt(now, now)

	finished := s.Finish(at)

	if s.IsFinished() {
		t.Error("original should not be finished")
	}
	if !finished.IsFinished() {
		t.Fatal("expected finished session")
	}
	if !finished.FinishedAt().Time().Equal(now) {
		t.Errorf("got %v, want %v", finished.FinishedAt().Time(), now)
	}
}

func TestSession_RoleOf(t *testing.T) {
	s := newTestSession(t)

	if r, ok := s.RoleOf(s.SlpID()); !ok || r != valueobject.TurnSLP {
		t.Errorf("slp role: got %q, %v", r, ok)
	}
	if r, ok := s.RoleOf(s.StudentID()); !ok || r != valueobject.TurnStudent {
		t.Errorf("student role: got %q, %v", r, ok)
	}
	if s.HasParticipant(valueobject.GenerateIdentifier()) {
		t.Error("stranger should not be a participant")
	}
}

func TestSession_ToPrimitives_IsDeepCopy(t *testing.T) {
	notes := "n"
	s, _ := newTestSession(t).WithTrial(true, 1).WithNotes(&notes)

	p := s.ToPrimitives()
	p.Trials[0].Correct = false
	*p.Notes = "changed"

	if !s.Trials()[0].Correct {
		t.Error("mutating primitives should not affect the trial")
	}
	if *s.Notes() != "n" {
		t.Error("mutating primitives should not affect the notes")
	}
}

func TestSession_PrimitivesRoundTrip(t *testing.T) {
	f := newTestFactory()
	notes := "great focus"
	s := newTestSession(t).WithTrial(true, float64(testNowMs-10)).WithTrial(false, float64(testNowMs-5))
	s, _ = s.WithNotes(&notes)
	now := valueobject.EpochMsToTime(testNowMs)
	at, _ := valueobject.NewFinishedAt(now.Add(-time.Second), now)
	s = s.Finish(at)

	restored, err := f.FromPrimitives(s.ToPrimitives())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, b := s.ToPrimitives(), restored.ToPrimitives()
	if a.ID != b.ID || a.SlpID != b.SlpID || a.StudentID != b.StudentID || a.Seed != b.Seed || a.IsActive != b.IsActive {
		t.Errorf("identity fields differ: %+v vs %+v", a, b)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) || !a.FinishedAt.Equal(*b.FinishedAt) {
		t.Error("timestamps differ")
	}
	if *a.Notes != *b.Notes {
		t.Error("notes differ")
	}
	if len(a.Trials) != len(b.Trials) {
		t.Fatalf("trial count differs")
	}
	for i := range a.Trials {
		if a.Trials[i] != b.Trials[i] {
			t.Errorf("trial %d differs: %+v vs %+v", i, a.Trials[i], b.Trials[i])
		}
	}
}
