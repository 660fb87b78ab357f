package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/command"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/query"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/logger"
)

// DefaultDifficulty はボード難易度のデフォルト値です
const DefaultDifficulty = "easy"

type sessionGetter interface {
	Execute(ctx context.Context, input query.GetSessionInput) (*query.GetSessionOutput, error)
}

type trialAppender interface {
	Execute(ctx context.Context, input command.AppendTrialInput) (*command.AppendTrialOutput, error)
}

type notesPatcher interface {
	Execute(ctx context.Context, input command.PatchNotesInput) (*command.PatchNotesOutput, error)
}

type sessionFinisher interface {
	Execute(ctx context.Context, input command.FinishSessionInput) (*command.FinishSessionOutput, error)
}

// MoveLimiter はユーザーごとの手の頻度を制限します
type MoveLimiter interface {
	AllowMove(ctx context.Context, userID string) (bool, error)
}

// CoordinatorDeps はCoordinatorの依存関係です
type CoordinatorDeps struct {
	Hub         *Hub
	LiveState   repository.LiveStateRepository
	GetSession  sessionGetter
	AppendTrial trialAppender
	PatchNotes  notesPatcher
	Finish      sessionFinisher
	Limiter     MoveLimiter // nilの場合は制限しません
	Difficulty  string
}

// Coordinator はライブセッションのイベントを処理します
// 同一セッションのイベントはセッション単位のロックで直列化されます
type Coordinator struct {
	hub         *Hub
	locks       *sessionLocks
	live        repository.LiveStateRepository
	getSession  sessionGetter
	appendTrial trialAppender
	patchNotes  notesPatcher
	finish      sessionFinisher
	limiter     MoveLimiter
	difficulty  string
}

// NewCoordinator は新しいCoordinatorを作成します
func NewCoordinator(deps CoordinatorDeps) *Coordinator {
	difficulty := deps.Difficulty
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	hub := deps.Hub
	if hub == nil {
		hub = NewHub()
	}
	return &Coordinator{
		hub:         hub,
		locks:       newSessionLocks(),
		live:        deps.LiveState,
		getSession:  deps.GetSession,
		appendTrial: deps.AppendTrial,
		patchNotes:  deps.PatchNotes,
		finish:      deps.Finish,
		limiter:     deps.Limiter,
		difficulty:  difficulty,
	}
}

// Hub はルーム管理を返します
func (co *Coordinator) Hub() *Hub { return co.hub }

// Dispatch は受信フレームを解釈してイベントを処理します
// 失敗はエラーイベントとして送信元にのみ通知します
func (co *Coordinator) Dispatch(ctx context.Context, c *Client, frame []byte) {
	ctx = logger.ContextWithClientID(ctx, c.ID())

	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		co.reject(ctx, c, "", apperror.NewInvalidRequestError("malformed frame"))
		return
	}

	var err error
	switch env.Event {
	case EventJoin:
		var p JoinPayload
		if err = decodePayload(env.Data, &p); err == nil {
			err = co.Join(ctx, c, p)
		}
	case EventMove:
		var p MovePayload
		if err = decodePayload(env.Data, &p); err == nil {
			err = co.Move(ctx, c, p)
		}
	case EventNote:
		var p NotePayload
		if err = decodePayload(env.Data, &p); err == nil {
			err = co.Note(ctx, c, p)
		}
	case EventFinish:
		var p FinishPayload
		if err = decodePayload(env.Data, &p); err == nil {
			err = co.FinishSession(ctx, c, p)
		}
	default:
		err = apperror.NewInvalidRequestError(fmt.Sprintf("%s: %q", errUnknownEvent, env.Event))
	}

	if err != nil {
		co.reject(ctx, c, env.Event, err)
		return
	}
	logger.Debug(ctx, "websocket event handled", "event", env.Event)
}

func decodePayload(data json.RawMessage, dst any) error {
	if len(data) == 0 {
		return apperror.NewInvalidRequestError("missing event data")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperror.NewInvalidRequestError("malformed event data")
	}
	return nil
}

// Join はクライアントをセッションのルームに参加させます
func (co *Coordinator) Join(ctx context.Context, c *Client, p JoinPayload) error {
	sessionID, userID, err := parseEventIDs(p.SessionID, p.UserID)
	if err != nil {
		return err
	}
	sid := sessionID.String()

	unlock := co.locks.lock(sid)
	defer unlock()

	session, _, err := co.loadParticipant(ctx, c, sid, userID)
	if err != nil {
		return err
	}

	turn, err := co.live.InitTurn(ctx, sid, valueobject.TurnSLP)
	if err != nil {
		return err
	}
	frame, err := co.stateFrame(ctx, session, turn)
	if err != nil {
		return err
	}

	// ルームへの追加は状態の取得に成功した後に限ります
	co.hub.Join(sid, c)
	logger.Info(logger.ContextWithSessionID(ctx, sid), "client joined session",
		"event", EventJoin,
		"user_id", userID.String(),
	)
	co.hub.Broadcast(sid, frame)
	return nil
}

// Move は手番の参加者の試行を記録します
// 不正解の場合は手番を相手に渡し、正解の場合はカードをマッチ済みにします
func (co *Coordinator) Move(ctx context.Context, c *Client, p MovePayload) error {
	sessionID, userID, err := parseEventIDs(p.SessionID, p.UserID)
	if err != nil {
		return err
	}
	if p.Correct == nil {
		return apperror.NewFieldValidationError("correct", "REQUIRED", "correct is required")
	}
	if err := validateCards(p.Cards); err != nil {
		return err
	}
	sid := sessionID.String()
	correct := *p.Correct

	unlock := co.locks.lock(sid)
	defer unlock()

	_, role, err := co.loadParticipant(ctx, c, sid, userID)
	if err != nil {
		return err
	}

	if co.limiter != nil {
		allowed, err := co.limiter.AllowMove(ctx, userID.String())
		if err != nil {
			return err
		}
		if !allowed {
			return apperror.NewTooManyRequestsError("too many moves")
		}
	}

	turn, err := co.live.InitTurn(ctx, sid, valueobject.TurnSLP)
	if err != nil {
		return err
	}
	if role != turn {
		return apperror.NewNotYourTurnError(turn.String())
	}

	if _, err := co.appendTrial.Execute(ctx, command.AppendTrialInput{
		SessionID:   sid,
		Correct:     correct,
		PerformedBy: turn,
	}); err != nil {
		return err
	}

	// 試行は永続化済みのため、ライブ状態の更新失敗はログに残してルームへの配信を続けます
	sctx := logger.ContextWithSessionID(ctx, sid)
	if correct {
		if len(p.Cards) > 0 {
			if err := co.live.AddMatchedCards(ctx, sid, p.Cards...); err != nil {
				logger.WithError(sctx, err).Error("failed to record matched cards", "event", EventMove)
			}
		}
	} else {
		if err := co.live.SetTurn(ctx, sid, turn.Other()); err != nil {
			logger.WithError(sctx, err).Error("failed to pass turn", "event", EventMove)
		} else {
			turn = turn.Other()
		}
	}

	return co.refreshAndBroadcast(ctx, sid, turn)
}

// Note はセッションのメモを更新します
func (co *Coordinator) Note(ctx context.Context, c *Client, p NotePayload) error {
	sessionID, userID, err := parseEventIDs(p.SessionID, p.UserID)
	if err != nil {
		return err
	}
	sid := sessionID.String()

	unlock := co.locks.lock(sid)
	defer unlock()

	if _, _, err := co.loadParticipant(ctx, c, sid, userID); err != nil {
		return err
	}

	if _, err := co.patchNotes.Execute(ctx, command.PatchNotesInput{
		SessionID: sid,
		Notes:     p.Notes,
	}); err != nil {
		return err
	}

	turn, err := co.live.InitTurn(ctx, sid, valueobject.TurnSLP)
	if err != nil {
		return err
	}
	return co.refreshAndBroadcast(ctx, sid, turn)
}

// FinishSession はセッションを終了します
func (co *Coordinator) FinishSession(ctx context.Context, c *Client, p FinishPayload) error {
	sessionID, userID, err := parseEventIDs(p.SessionID, p.UserID)
	if err != nil {
		return err
	}
	sid := sessionID.String()

	unlock := co.locks.lock(sid)
	defer unlock()

	if _, _, err := co.loadParticipant(ctx, c, sid, userID); err != nil {
		return err
	}

	if _, err := co.finish.Execute(ctx, command.FinishSessionInput{SessionID: sid}); err != nil {
		return err
	}

	turn, err := co.live.InitTurn(ctx, sid, valueobject.TurnSLP)
	if err != nil {
		return err
	}

	logger.Info(logger.ContextWithSessionID(ctx, sid), "session finished over websocket",
		"event", EventFinish,
		"user_id", userID.String(),
	)
	return co.refreshAndBroadcast(ctx, sid, turn)
}

// Disconnect はクライアントを全てのルームから外して閉じます
// 手番とマッチ済みカードは保持されます
func (co *Coordinator) Disconnect(ctx context.Context, c *Client) {
	left := co.hub.Leave(c)
	c.Close()
	if len(left) > 0 {
		logger.Debug(logger.ContextWithClientID(ctx, c.ID()), "client left rooms", "sessions", left)
	}
}

func parseEventIDs(rawSessionID, rawUserID string) (valueobject.Identifier, valueobject.Identifier, error) {
	sessionID, sessionErr := valueobject.NewIdentifierFor("sessionId", rawSessionID)
	userID, userErr := valueobject.NewIdentifierFor("userId", rawUserID)
	if err := apperror.Collect(sessionErr, userErr); err != nil {
		return valueobject.Identifier{}, valueobject.Identifier{}, err
	}
	return sessionID, userID, nil
}

// loadParticipant はセッションを取得し、ユーザーが参加者であることを確認します
// 認証済み接続ではペイロードのuserIdがトークン主体と一致しなければなりません
func (co *Coordinator) loadParticipant(
	ctx context.Context,
	c *Client,
	sessionID string,
	userID valueobject.Identifier,
) (*entity.Session, valueobject.TurnRole, error) {
	out, err := co.getSession.Execute(ctx, query.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return nil, "", err
	}

	role, ok := out.Session.RoleOf(userID)
	if !ok {
		return nil, "", apperror.NewNotParticipantError()
	}
	if c.IsAuthenticated() {
		subject, err := valueobject.NewIdentifier(c.Subject())
		if err != nil || !subject.Equals(userID) {
			return nil, "", apperror.NewForbiddenError("userId does not match authenticated user")
		}
	}
	return out.Session, role, nil
}

func (co *Coordinator) refreshAndBroadcast(ctx context.Context, sessionID string, turn valueobject.TurnRole) error {
	out, err := co.getSession.Execute(ctx, query.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return err
	}
	return co.broadcastState(ctx, out.Session, turn)
}

func (co *Coordinator) broadcastState(ctx context.Context, s *entity.Session, turn valueobject.TurnRole) error {
	frame, err := co.stateFrame(ctx, s, turn)
	if err != nil {
		return err
	}
	co.hub.Broadcast(s.ID().String(), frame)
	return nil
}

// stateFrame はライブ状態を合わせたスナップショットのフレームを作成します
func (co *Coordinator) stateFrame(ctx context.Context, s *entity.Session, turn valueobject.TurnRole) ([]byte, error) {
	matched, err := co.live.MatchedCards(ctx, s.ID().String())
	if err != nil {
		return nil, err
	}

	frame, err := encodeFrame(EventState, BuildSnapshot(s, turn, matched, co.difficulty))
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}
	return frame, nil
}

func (co *Coordinator) reject(ctx context.Context, c *Client, event string, err error) {
	payload := errorPayloadFrom(err)
	if payload.Message != "" {
		logger.WithError(ctx, err).Error("websocket event failed", "event", event)
	} else {
		logger.Info(ctx, "websocket event rejected",
			"event", event,
			"code", string(apperror.CodeOf(err)),
		)
	}

	frame, encErr := encodeFrame(EventError, payload)
	if encErr != nil {
		logger.WithError(ctx, encErr).Error("failed to encode error frame")
		return
	}
	c.trySend(frame)
}
