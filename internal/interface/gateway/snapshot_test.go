package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

func TestBuildSnapshot_FreshSession(t *testing.T) {
	deps := newCoordinatorTestDeps(t)

	snap := BuildSnapshot(deps.session, valueobject.TurnSLP, nil, "hard")

	assert.Equal(t, deps.sessionID(), snap.SessionID)
	assert.Equal(t, deps.slpID, snap.SlpID)
	assert.Equal(t, deps.studentID, snap.StudentID)
	assert.Equal(t, "slp", snap.CurrentTurn)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", snap.CreatedAtISO)
	assert.Equal(t, "hard", snap.Difficulty)
	assert.Nil(t, snap.Notes)
	assert.Nil(t, snap.FinishedAtISO)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, []any{}, fields["matchedCardIds"])
	assert.NotContains(t, fields, "notes")
	assert.NotContains(t, fields, "finishedAtIso")
}

func TestBuildSnapshot_FinishedWithTrialsAndNotes(t *testing.T) {
	deps := newCoordinatorTestDeps(t)
	now := valueobject.EpochMsToTime(testNowMs)
	at, err := valueobject.NewFinishedAt(now, now)
	require.NoError(t, err)

	s := deps.session.WithTrial(true, float64(testNowMs)).WithTrial(false, float64(testNowMs)).WithTrial(true, float64(testNowMs))
	s, err = s.WithNotes(strPtr("good focus"))
	require.NoError(t, err)
	s = s.Finish(at)

	snap := BuildSnapshot(s, valueobject.TurnStudent, []string{"a", "b"}, DefaultDifficulty)

	assert.Equal(t, 3, snap.TotalTrials)
	assert.Equal(t, 67, snap.AccuracyPercent)
	assert.Equal(t, "student", snap.CurrentTurn)
	require.NotNil(t, snap.Notes)
	assert.Equal(t, "good focus", *snap.Notes)
	require.NotNil(t, snap.FinishedAtISO)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", *snap.FinishedAtISO)
	assert.Equal(t, []string{"a", "b"}, snap.MatchedCardIDs)
}
