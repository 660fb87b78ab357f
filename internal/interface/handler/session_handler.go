package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/dto/request"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/dto/response"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/middleware"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/presenter"
	sessioncmd "github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/command"
	sessionqry "github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/query"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// SessionHandler はセッション関連のHTTPハンドラーです
type SessionHandler struct {
	// Commands
	createSessionCommand *sessioncmd.CreateSessionCommand
	appendTrialCommand   *sessioncmd.AppendTrialCommand
	finishSessionCommand *sessioncmd.FinishSessionCommand
	patchNotesCommand    *sessioncmd.PatchNotesCommand

	// Queries
	getSessionQuery        *sessionqry.GetSessionQuery
	getSessionSummaryQuery *sessionqry.GetSessionSummaryQuery
}

// NewSessionHandler は新しいSessionHandlerを作成します
func NewSessionHandler(
	createSessionCommand *sessioncmd.CreateSessionCommand,
	appendTrialCommand *sessioncmd.AppendTrialCommand,
	finishSessionCommand *sessioncmd.FinishSessionCommand,
	patchNotesCommand *sessioncmd.PatchNotesCommand,
	getSessionQuery *sessionqry.GetSessionQuery,
	getSessionSummaryQuery *sessionqry.GetSessionSummaryQuery,
) *SessionHandler {
	return &SessionHandler{
		createSessionCommand:   createSessionCommand,
		appendTrialCommand:     appendTrialCommand,
		finishSessionCommand:   finishSessionCommand,
		patchNotesCommand:      patchNotesCommand,
		getSessionQuery:        getSessionQuery,
		getSessionSummaryQuery: getSessionSummaryQuery,
	}
}

// CreateSession はセッションを作成します
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c echo.Context) error {
	var req request.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := middleware.RequireActor(c, req.SlpID); err != nil {
		return err
	}

	output, err := h.createSessionCommand.Execute(c.Request().Context(), sessioncmd.CreateSessionInput{
		SlpID:     req.SlpID,
		StudentID: req.StudentID,
		Seed:      req.Seed,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToCreateSessionResponse(output))
}

// GetSession はセッションを取得します
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c echo.Context) error {
	output, err := h.getSessionQuery.Execute(c.Request().Context(), sessionqry.GetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		return err
	}
	if !actorCanView(c, output.Session) {
		return apperror.NewSessionNotFoundError(output.Session.ID().String())
	}

	return presenter.OK(c, response.ToSessionResponse(output.Session))
}

// GetSessionSummary はSLP向けのセッションサマリーを取得します
// GET /api/v1/sessions/:id/summary?slpId=
func (h *SessionHandler) GetSessionSummary(c echo.Context) error {
	var req request.SessionSummaryRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid query parameters")
	}

	// 認証済みの場合はトークン主体をSLPとして扱う
	slpID := req.SlpID
	if actor := middleware.GetUserID(c); actor != "" {
		slpID = actor
	}

	output, err := h.getSessionSummaryQuery.Execute(c.Request().Context(), sessionqry.GetSessionSummaryInput{
		SessionID: c.Param("id"),
		SlpID:     slpID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToSessionSummaryResponse(output))
}

// AppendTrial は試行を追加します
// POST /api/v1/sessions/:id/trials
func (h *SessionHandler) AppendTrial(c echo.Context) error {
	var req request.AppendTrialRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.authorizeParticipant(c); err != nil {
		return err
	}

	output, err := h.appendTrialCommand.Execute(c.Request().Context(), sessioncmd.AppendTrialInput{
		SessionID:   c.Param("id"),
		Correct:     *req.Correct,
		PerformedBy: valueobject.TurnRole(req.PerformedBy),
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.AppendTrialResponse{
		SessionID:       output.SessionID,
		TotalTrials:     output.TotalTrials,
		AccuracyPercent: output.AccuracyPercent,
	})
}

// FinishSession はセッションを終了します
// POST /api/v1/sessions/:id/finish
func (h *SessionHandler) FinishSession(c echo.Context) error {
	if err := h.authorizeParticipant(c); err != nil {
		return err
	}

	output, err := h.finishSessionCommand.Execute(c.Request().Context(), sessioncmd.FinishSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.FinishSessionResponse{
		SessionID:     output.SessionID,
		FinishedAtISO: output.FinishedAtISO,
	})
}

// PatchNotes はセッションのメモを更新します
// PATCH /api/v1/sessions/:id/notes
func (h *SessionHandler) PatchNotes(c echo.Context) error {
	var req request.PatchNotesRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	if err := h.authorizeParticipant(c); err != nil {
		return err
	}

	output, err := h.patchNotesCommand.Execute(c.Request().Context(), sessioncmd.PatchNotesInput{
		SessionID: c.Param("id"),
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.NotesResponse{
		SessionID: output.SessionID,
		Notes:     output.Notes,
	})
}

// authorizeParticipant は認証済みユーザーがパスのセッションの参加者であることを確認します
// 参加者でない場合は存在を漏らさないようSESSION_NOT_FOUNDを返します
func (h *SessionHandler) authorizeParticipant(c echo.Context) error {
	if middleware.GetUserID(c) == "" {
		return nil
	}
	output, err := h.getSessionQuery.Execute(c.Request().Context(), sessionqry.GetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		return err
	}
	if !actorCanView(c, output.Session) {
		return apperror.NewSessionNotFoundError(output.Session.ID().String())
	}
	return nil
}

// actorCanView は認証済みユーザーがセッション参加者かを返します
// 認証が無効な場合は常に許可します
func actorCanView(c echo.Context, s *entity.Session) bool {
	if middleware.GetUserID(c) == "" {
		return true
	}
	return middleware.IsActor(c, s.SlpID().String()) || middleware.IsActor(c, s.StudentID().String())
}
