package gateway

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/memory"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/command"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/query"
)

const testNowMs int64 = 1_714_564_800_000

type coordinatorTestDeps struct {
	sessions  *memory.SessionRepository
	live      *memory.LiveState
	hub       *Hub
	session   *entity.Session
	slpID     string
	studentID string
}

func newCoordinatorTestDeps(t *testing.T) *coordinatorTestDeps {
	t.Helper()

	clock := service.FixedClock(testNowMs)
	factory := entity.NewSessionFactory(clock, 0)
	slpID, studentID := uuid.NewString(), uuid.NewString()
	session, err := factory.NewQuick(entity.NewQuickInput{SlpID: slpID, StudentID: studentID})
	require.NoError(t, err)

	sessions := memory.NewSessionRepository()
	require.NoError(t, sessions.Save(context.Background(), session))

	return &coordinatorTestDeps{
		sessions:  sessions,
		live:      memory.NewLiveState(),
		hub:       NewHub(),
		session:   session,
		slpID:     slpID,
		studentID: studentID,
	}
}

func (d *coordinatorTestDeps) newCoordinator(limiter MoveLimiter) *Coordinator {
	return d.newCoordinatorWithLive(d.live, limiter)
}

func (d *coordinatorTestDeps) newCoordinatorWithLive(live repository.LiveStateRepository, limiter MoveLimiter) *Coordinator {
	clock := service.FixedClock(testNowMs)
	tx := memory.NewTxManager()
	return NewCoordinator(CoordinatorDeps{
		Hub:         d.hub,
		LiveState:   live,
		GetSession:  query.NewGetSessionQuery(d.sessions),
		AppendTrial: command.NewAppendTrialCommand(d.sessions, tx, clock, nil),
		PatchNotes:  command.NewPatchNotesCommand(d.sessions, tx),
		Finish:      command.NewFinishSessionCommand(d.sessions, tx, clock, nil),
		Limiter:     limiter,
	})
}

func (d *coordinatorTestDeps) sessionID() string {
	return d.session.ID().String()
}

func (d *coordinatorTestDeps) storedTrials(t *testing.T) int {
	t.Helper()
	s, err := d.sessions.FindByID(context.Background(), d.session.ID())
	require.NoError(t, err)
	return s.TotalTrials()
}

func sendEvent(t *testing.T, co *Coordinator, c *Client, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	frame, err := json.Marshal(Envelope{Event: event, Data: raw})
	require.NoError(t, err)
	co.Dispatch(context.Background(), c, frame)
}

func nextFrame(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case frame, ok := <-c.Outbound():
		require.True(t, ok, "client channel closed")
		var env Envelope
		require.NoError(t, json.Unmarshal(frame, &env))
		return env
	default:
		t.Fatal("expected a queued frame")
		return Envelope{}
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case frame := <-c.Outbound():
		t.Fatalf("unexpected frame: %s", frame)
	default:
	}
}

func nextState(t *testing.T, c *Client) Snapshot {
	t.Helper()
	env := nextFrame(t, c)
	require.Equal(t, EventState, env.Event)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	return snap
}

func nextError(t *testing.T, c *Client) ErrorPayload {
	t.Helper()
	env := nextFrame(t, c)
	require.Equal(t, EventError, env.Event)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	return payload
}

func errorCodes(p ErrorPayload) []string {
	codes := make([]string, len(p.Errors))
	for i, e := range p.Errors {
		codes[i] = e.Code
	}
	return codes
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
