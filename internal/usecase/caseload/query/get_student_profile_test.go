package query_test

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
	"github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/caseload/query"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
	"github.com/demianvselko/empatspeech-demo-sub000/tests/testutil/mocks"
)

type studentProfileTestDeps struct {
	sessionRepo *mocks.MockSessionRepository
	userRepo    *mocks.MockUserRepository
}

func newStudentProfileTestDeps(t *testing.T) *studentProfileTestDeps {
	t.Helper()
	return &studentProfileTestDeps{
		sessionRepo: mocks.NewMockSessionRepository(t),
		userRepo:    mocks.NewMockUserRepository(t),
	}
}

func (d *studentProfileTestDeps) newQuery() *query.GetStudentProfileQuery {
	return query.NewGetStudentProfileQuery(d.sessionRepo, d.userRepo)
}

func newStudentSession(t *testing.T, studentID string, trials ...bool) *entity.Session {
	t.Helper()
	s, err := entity.NewSessionFactory(service.FixedClock(1_714_564_800_000), 0).NewQuick(entity.NewQuickInput{
		SlpID:     uuid.New().String(),
		StudentID: studentID,
	})
	require.NoError(t, err)
	for i, c := range trials {
		s = s.WithTrial(c, float64(i))
	}
	return s
}

func newTestStudent(t *testing.T, id, first, last string, active bool) *entity.User {
	t.Helper()
	u, err := entity.NewStudent(entity.UserProps{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     first + "@example.com",
		IsActive:  active,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return u
}

func TestGetStudentProfileQuery_Execute_AggregatesAccuracy(t *testing.T) {
	ctx := context.Background()
	deps := newStudentProfileTestDeps(t)
	studentID := uuid.New().String()
	sid := valueobject.MustIdentifier(studentID)
	sessions := []*entity.Session{
		newStudentSession(t, studentID, true, true, false),
		newStudentSession(t, studentID, false),
	}

	deps.sessionRepo.On("ListByStudent", ctx, sid, query.DefaultProfileLimit).Return(sessions, nil)
	deps.userRepo.On("FindByID", ctx, sid).Return(newTestStudent(t, studentID, "Mateo", "Ruiz", true), nil)

	output, err := deps.newQuery().Execute(ctx, query.GetStudentProfileInput{StudentID: studentID})

	require.NoError(t, err)
	require.Len(t, output.Sessions, 2)
	assert.Equal(t, 4, output.TotalTrials)
	assert.Equal(t, 50, output.OverallAccuracyPercent)
	assert.Equal(t, 67, output.Sessions[0].AccuracyPercent)
	require.NotNil(t, output.StudentName)
	assert.Equal(t, "Mateo Ruiz", *output.StudentName)
}

func TestGetStudentProfileQuery_Execute_UnknownStudent_EmptyProfile(t *testing.T) {
	ctx := context.Background()
	deps := newStudentProfileTestDeps(t)
	sid := valueobject.GenerateIdentifier()

	deps.sessionRepo.On("ListByStudent", ctx, sid, query.DefaultProfileLimit).Return([]*entity.Session{}, nil)
	deps.userRepo.On("FindByID", ctx, sid).Return(nil, nil)

	output, err := deps.newQuery().Execute(ctx, query.GetStudentProfileInput{StudentID: sid.String()})

	require.NoError(t, err)
	assert.Empty(t, output.Sessions)
	assert.Nil(t, output.StudentName)
	assert.Equal(t, 0, output.OverallAccuracyPercent)
}

func TestGetStudentProfileQuery_Execute_ClampsLimit(t *testing.T) {
	cases := []struct {
		name  string
		in    int
		limit int
	}{
		{"default", 0, 10},
		{"negative", -5, 1},
		{"withinRange", 25, 25},
		{"tooLarge", 500, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			deps := newStudentProfileTestDeps(t)
			sid := valueobject.GenerateIdentifier()

			deps.sessionRepo.On("ListByStudent", ctx, sid, tc.limit).Return([]*entity.Session{}, nil)
			deps.userRepo.On("FindByID", ctx, sid).Return(nil, nil)

			_, err := deps.newQuery().Execute(ctx, query.GetStudentProfileInput{StudentID: sid.String(), Limit: tc.in})

			require.NoError(t, err)
		})
	}
}

func TestGetStudentProfileQuery_Execute_MalformedID_ValidationError(t *testing.T) {
	ctx := context.Background()
	deps := newStudentProfileTestDeps(t)

	_, err := deps.newQuery().Execute(ctx, query.GetStudentProfileInput{StudentID: "x"})

	assert.Equal(t, apperror.CodeValidationError, apperror.CodeOf(err))
}
