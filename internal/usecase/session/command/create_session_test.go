package command_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/command"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
	"github.com/demianvselko/empatspeech-demo-sub000/tests/testutil/mocks"
)

type createSessionTestDeps struct {
	sessionRepo *mocks.MockSessionRepository
	publisher   *mocks.MockSessionEventPublisher
}

func newCreateSessionTestDeps(t *testing.T) *createSessionTestDeps {
	t.Helper()
	return &createSessionTestDeps{
		sessionRepo: mocks.NewMockSessionRepository(t),
		publisher:   mocks.NewMockSessionEventPublisher(t),
	}
}

func (d *createSessionTestDeps) newCommand() *command.CreateSessionCommand {
	return command.NewCreateSessionCommand(d.sessionRepo, newTestFactory(), d.publisher)
}

func TestCreateSessionCommand_Execute_ValidInput_PersistsAndPublishes(t *testing.T) {
	ctx := context.Background()
	deps := newCreateSessionTestDeps(t)
	slpID := uuid.New().String()
	studentID := uuid.New().String()

	deps.sessionRepo.On("Save", ctx, mock.MatchedBy(func(s *entity.Session) bool {
		return s.SlpID().String() == slpID && s.StudentID().String() == studentID && s.TotalTrials() == 0
	})).Return(nil)
	deps.publisher.On("Publish", ctx, mock.MatchedBy(func(e service.SessionEvent) bool {
		return e.Type == service.SessionEventCreated && e.SlpID == slpID
	})).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.CreateSessionInput{
		SlpID:     slpID,
		StudentID: studentID,
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.NotEmpty(t, output.SessionID)
	assert.GreaterOrEqual(t, output.Seed, int64(0))
	assert.Less(t, output.Seed, int64(valueobject.SeedUpperBound))
	assert.Equal(t, "2024-05-01T12:00:00.000Z", output.CreatedAtISO)
}

func TestCreateSessionCommand_Execute_ExplicitSeed_IsKept(t *testing.T) {
	ctx := context.Background()
	deps := newCreateSessionTestDeps(t)
	seed := 1234.0

	deps.sessionRepo.On("Save", ctx, mock.AnythingOfType("*entity.Session")).Return(nil)
	deps.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.CreateSessionInput{
		SlpID:     uuid.New().String(),
		StudentID: uuid.New().String(),
		Seed:      &seed,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1234), output.Seed)
}

func TestCreateSessionCommand_Execute_SameParticipant_ReturnsError(t *testing.T) {
	ctx := context.Background()
	deps := newCreateSessionTestDeps(t)
	id := uuid.New().String()

	output, err := deps.newCommand().Execute(ctx, command.CreateSessionInput{
		SlpID:     id,
		StudentID: id,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, apperror.CodeSameParticipant, apperror.CodeOf(err))
	deps.sessionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateSessionCommand_Execute_SameParticipantDifferentCase_ReturnsError(t *testing.T) {
	ctx := context.Background()
	deps := newCreateSessionTestDeps(t)
	id := uuid.New().String()
	upper := []byte(id)
	for i, b := range upper {
		if b >= 'a' && b <= 'f' {
			upper[i] = b - 32
		}
	}

	_, err := deps.newCommand().Execute(ctx, command.CreateSessionInput{
		SlpID:     id,
		StudentID: string(upper),
	})

	assert.Equal(t, apperror.CodeSameParticipant, apperror.CodeOf(err))
}

func TestCreateSessionCommand_Execute_InvalidSeed_ReturnsInvalidSeed(t *testing.T) {
	cases := map[string]float64{
		"negative":    -1,
		"fractional":  2.5,
		"nan":         math.NaN(),
		"positiveInf": math.Inf(1),
	}

	for name, seed := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			deps := newCreateSessionTestDeps(t)
			seed := seed

			_, err := deps.newCommand().Execute(ctx, command.CreateSessionInput{
				SlpID:     uuid.New().String(),
				StudentID: uuid.New().String(),
				Seed:      &seed,
			})

			assert.Equal(t, apperror.CodeInvalidSeed, apperror.CodeOf(err))
		})
	}
}

func TestCreateSessionCommand_Execute_MalformedSlpID_ValidationError(t *testing.T) {
	ctx := context.Background()
	deps := newCreateSessionTestDeps(t)

	_, err := deps.newCommand().Execute(ctx, command.CreateSessionInput{
		SlpID:     "not-a-uuid",
		StudentID: uuid.New().String(),
	})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidationError, appErr.Code)
	assert.Equal(t, "slpId", appErr.Details[0].Field)
	assert.Equal(t, valueobject.CodeInvalidIdentifier, appErr.Details[0].Code)
}

func TestCreateSessionCommand_Execute_SaveFails_ReturnsError(t *testing.T) {
	ctx := context.Background()
	deps := newCreateSessionTestDeps(t)

	deps.sessionRepo.On("Save", ctx, mock.AnythingOfType("*entity.Session")).Return(errors.New("db error"))

	output, err := deps.newCommand().Execute(ctx, command.CreateSessionInput{
		SlpID:     uuid.New().String(),
		StudentID: uuid.New().String(),
	})

	require.Error(t, err)
	assert.Nil(t, output)
	deps.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateSessionCommand_Execute_PublishFails_StillSucceeds(t *testing.T) {
	ctx := context.Background()
	deps := newCreateSessionTestDeps(t)

	deps.sessionRepo.On("Save", ctx, mock.AnythingOfType("*entity.Session")).Return(nil)
	deps.publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))

	output, err := deps.newCommand().Execute(ctx, command.CreateSessionInput{
		SlpID:     uuid.New().String(),
		StudentID: uuid.New().String(),
	})

	require.NoError(t, err)
	assert.NotNil(t, output)
}
