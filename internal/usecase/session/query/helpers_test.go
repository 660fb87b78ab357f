package query_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
)

const testNowMs int64 = 1_714_564_800_000

func newTestSession(t *testing.T, slpID string) *entity.Session {
	t.Helper()
	s, err := entity.NewSessionFactory(service.FixedClock(testNowMs), 0).NewQuick(entity.NewQuickInput{
		SlpID:     slpID,
		StudentID: uuid.New().String(),
	})
	require.NoError(t, err)
	return s
}
