package command_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

const testNowMs int64 = 1_714_564_800_000

func newTestClock() service.Clock {
	return service.FixedClock(testNowMs)
}

func newTestFactory() *entity.SessionFactory {
	return entity.NewSessionFactory(newTestClock(), 0)
}

func newTestSession(t *testing.T) *entity.Session {
	t.Helper()
	s, err := newTestFactory().NewQuick(entity.NewQuickInput{
		SlpID:     uuid.New().String(),
		StudentID: uuid.New().String(),
	})
	require.NoError(t, err)
	return s
}

func finishedTestSession(t *testing.T) *entity.Session {
	t.Helper()
	now := valueobject.EpochMsToTime(testNowMs)
	at, err := valueobject.NewFinishedAt(now, now)
	require.NoError(t, err)
	return newTestSession(t).Finish(at)
}
