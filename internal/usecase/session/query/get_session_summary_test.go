package query_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/query"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
	"github.com/demianvselko/empatspeech-demo-sub000/tests/testutil/mocks"
)

func TestGetSessionSummaryQuery_Execute_OwnSession_ReturnsSummary(t *testing.T) {
	ctx := context.Background()
	sessionRepo := mocks.NewMockSessionRepository(t)
	slpID := uuid.New().String()
	notes := "good session"
	session, err := newTestSession(t, slpID).
		WithTrial(true, 1).WithTrial(true, 2).WithTrial(false, 3).
		WithNotes(&notes)
	require.NoError(t, err)

	sessionRepo.On("FindByID", ctx, session.ID()).Return(session, nil)

	output, err := query.NewGetSessionSummaryQuery(sessionRepo).Execute(ctx, query.GetSessionSummaryInput{
		SessionID: session.ID().String(),
		SlpID:     slpID,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, output.TotalTrials)
	assert.Equal(t, 2, output.CorrectTrials)
	assert.Equal(t, 1, output.IncorrectTrials)
	assert.Equal(t, 67, output.AccuracyPercent)
	assert.Equal(t, 33, output.ErrorPercent)
	assert.Nil(t, output.FinishedAtISO)
	require.NotNil(t, output.Notes)
	assert.Equal(t, notes, *output.Notes)
}

func TestGetSessionSummaryQuery_Execute_NoTrials_ZeroPercentages(t *testing.T) {
	ctx := context.Background()
	sessionRepo := mocks.NewMockSessionRepository(t)
	slpID := uuid.New().String()
	session := newTestSession(t, slpID)

	sessionRepo.On("FindByID", ctx, session.ID()).Return(session, nil)

	output, err := query.NewGetSessionSummaryQuery(sessionRepo).Execute(ctx, query.GetSessionSummaryInput{
		SessionID: session.ID().String(),
		SlpID:     slpID,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, output.AccuracyPercent)
	assert.Equal(t, 0, output.ErrorPercent)
}

func TestGetSessionSummaryQuery_Execute_OtherSlp_ReturnsSessionNotFound(t *testing.T) {
	ctx := context.Background()
	sessionRepo := mocks.NewMockSessionRepository(t)
	session := newTestSession(t, uuid.New().String())

	sessionRepo.On("FindByID", ctx, session.ID()).Return(session, nil)

	output, err := query.NewGetSessionSummaryQuery(sessionRepo).Execute(ctx, query.GetSessionSummaryInput{
		SessionID: session.ID().String(),
		SlpID:     uuid.New().String(),
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, apperror.CodeSessionNotFound, apperror.CodeOf(err))
}

func TestGetSessionSummaryQuery_Execute_Missing_ReturnsSessionNotFound(t *testing.T) {
	ctx := context.Background()
	sessionRepo := mocks.NewMockSessionRepository(t)
	id := valueobject.GenerateIdentifier()

	sessionRepo.On("FindByID", ctx, id).Return(nil, nil)

	_, err := query.NewGetSessionSummaryQuery(sessionRepo).Execute(ctx, query.GetSessionSummaryInput{
		SessionID: id.String(),
		SlpID:     uuid.New().String(),
	})

	assert.Equal(t, apperror.CodeSessionNotFound, apperror.CodeOf(err))
}

func TestGetSessionQuery_Execute(t *testing.T) {
	ctx := context.Background()
	sessionRepo := mocks.NewMockSessionRepository(t)
	session := newTestSession(t, uuid.New().String())
	missing := valueobject.GenerateIdentifier()

	sessionRepo.On("FindByID", ctx, session.ID()).Return(session, nil)
	sessionRepo.On("FindByID", ctx, missing).Return(nil, nil)

	q := query.NewGetSessionQuery(sessionRepo)

	output, err := q.Execute(ctx, query.GetSessionInput{SessionID: session.ID().String()})
	require.NoError(t, err)
	assert.Same(t, session, output.Session)

	_, err = q.Execute(ctx, query.GetSessionInput{SessionID: missing.String()})
	assert.Equal(t, apperror.CodeSessionNotFound, apperror.CodeOf(err))

	_, err = q.Execute(ctx, query.GetSessionInput{SessionID: "nope"})
	assert.Equal(t, apperror.CodeValidationError, apperror.CodeOf(err))
}
