package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

func newSessionAt(t *testing.T, ms int64, slpID, studentID string) *entity.Session {
	t.Helper()
	s, err := entity.NewSessionFactory(service.FixedClock(ms), 0).NewQuick(entity.NewQuickInput{
		SlpID:     slpID,
		StudentID: studentID,
	})
	require.NoError(t, err)
	return s
}

func TestSessionRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	s := newSessionAt(t, 1000, uuid.New().String(), uuid.New().String())

	require.NoError(t, repo.Save(ctx, s))
	found, err := repo.FindByID(ctx, s.ID())

	require.NoError(t, err)
	assert.Same(t, s, found)

	missing, err := repo.FindByID(ctx, valueobject.GenerateIdentifier())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionRepository_Save_OverwritesByID(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	s := newSessionAt(t, 1000, uuid.New().String(), uuid.New().String())

	require.NoError(t, repo.Save(ctx, s))
	require.NoError(t, repo.Save(ctx, s.WithTrial(true, 2000)))

	found, _ := repo.FindByID(ctx, s.ID())
	assert.Equal(t, 1, found.TotalTrials())
	assert.Equal(t, 1, repo.Count())
}

func TestSessionRepository_ListByStudent_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	slp := uuid.New().String()
	student := uuid.New().String()
	oldest := newSessionAt(t, 1000, slp, student)
	middle := newSessionAt(t, 2000, slp, student)
	newest := newSessionAt(t, 3000, slp, student)
	other := newSessionAt(t, 4000, slp, uuid.New().String())
	for _, s := range []*entity.Session{middle, oldest, other, newest} {
		require.NoError(t, repo.Save(ctx, s))
	}

	list, err := repo.ListByStudent(ctx, valueobject.MustIdentifier(student), 2)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Same(t, newest, list[0])
	assert.Same(t, middle, list[1])

	bySlp, err := repo.ListBySlp(ctx, valueobject.MustIdentifier(slp), 10)
	require.NoError(t, err)
	assert.Len(t, bySlp, 4)
	assert.Same(t, other, bySlp[0])
}

func TestUserRepository_FindStudentsBySlp(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	slp := uuid.New().String()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	teacher, err := entity.NewTeacher(entity.UserProps{ID: slp, FirstName: "Sara", LastName: "Lopez", Email: "sara@example.com", IsActive: true, CreatedAt: created})
	require.NoError(t, err)
	mine, err := entity.NewStudent(entity.UserProps{ID: uuid.New().String(), FirstName: "Leo", LastName: "Paz", Email: "leo@example.com", IsActive: true, CreatedAt: created, SlpID: &slp})
	require.NoError(t, err)
	otherSlp := uuid.New().String()
	notMine, err := entity.NewStudent(entity.UserProps{ID: uuid.New().String(), FirstName: "Ivy", LastName: "Sol", Email: "ivy@example.com", IsActive: true, CreatedAt: created, SlpID: &otherSlp})
	require.NoError(t, err)

	for _, u := range []*entity.User{teacher, mine, notMine} {
		require.NoError(t, repo.Save(ctx, u))
	}

	students, err := repo.FindStudentsBySlp(ctx, valueobject.MustIdentifier(slp))

	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Same(t, mine, students[0])
}

func TestLiveState_TurnLifecycle(t *testing.T) {
	ctx := context.Background()
	state := NewLiveState()

	_, ok, err := state.Turn(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	turn, err := state.InitTurn(ctx, "s1", valueobject.TurnSLP)
	require.NoError(t, err)
	assert.Equal(t, valueobject.TurnSLP, turn)

	require.NoError(t, state.SetTurn(ctx, "s1", valueobject.TurnStudent))

	turn, err = state.InitTurn(ctx, "s1", valueobject.TurnSLP)
	require.NoError(t, err)
	assert.Equal(t, valueobject.TurnStudent, turn, "InitTurn must not reset an existing turn")
}

func TestLiveState_MatchedCards_UnionSorted(t *testing.T) {
	ctx := context.Background()
	state := NewLiveState()

	require.NoError(t, state.AddMatchedCards(ctx, "s1", "dog-b", "dog-a"))
	require.NoError(t, state.AddMatchedCards(ctx, "s1", "cat-a", "dog-a"))

	cards, err := state.MatchedCards(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat-a", "dog-a", "dog-b"}, cards)

	empty, err := state.MatchedCards(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
