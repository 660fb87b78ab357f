package response

import (
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/command"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/query"
)

// CreateSessionResponse はセッション作成レスポンスです
type CreateSessionResponse struct {
	SessionID    string `json:"sessionId"`
	Seed         int64  `json:"seed"`
	CreatedAtISO string `json:"createdAtIso"`
}

// TrialResponse は試行レスポンスです
type TrialResponse struct {
	Correct   bool  `json:"correct"`
	TsEpochMs int64 `json:"tsEpochMs"`
}

// SessionResponse はセッションレスポンスです
type SessionResponse struct {
	SessionID       string          `json:"sessionId"`
	SlpID           string          `json:"slpId"`
	StudentID       string          `json:"studentId"`
	Seed            int64           `json:"seed"`
	IsActive        bool            `json:"isActive"`
	CreatedAtISO    string          `json:"createdAtIso"`
	FinishedAtISO   *string         `json:"finishedAtIso,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	TotalTrials     int             `json:"totalTrials"`
	CorrectTrials   int             `json:"correctTrials"`
	AccuracyPercent int             `json:"accuracyPercent"`
	Trials          []TrialResponse `json:"trials"`
}

// SessionSummaryResponse はセッションサマリーレスポンスです
type SessionSummaryResponse struct {
	SessionID       string  `json:"sessionId"`
	SlpID           string  `json:"slpId"`
	StudentID       string  `json:"studentId"`
	Seed            int64   `json:"seed"`
	CreatedAtISO    string  `json:"createdAtIso"`
	FinishedAtISO   *string `json:"finishedAtIso,omitempty"`
	TotalTrials     int     `json:"totalTrials"`
	CorrectTrials   int     `json:"correctTrials"`
	IncorrectTrials int     `json:"incorrectTrials"`
	AccuracyPercent int     `json:"accuracyPercent"`
	ErrorPercent    int     `json:"errorPercent"`
	Notes           *string `json:"notes,omitempty"`
}

// AppendTrialResponse は試行追加レスポンスです
type AppendTrialResponse struct {
	SessionID       string `json:"sessionId"`
	TotalTrials     int    `json:"totalTrials"`
	AccuracyPercent int    `json:"accuracyPercent"`
}

// FinishSessionResponse はセッション終了レスポンスです
type FinishSessionResponse struct {
	SessionID     string `json:"sessionId"`
	FinishedAtISO string `json:"finishedAtIso"`
}

// NotesResponse はメモ更新レスポンスです
type NotesResponse struct {
	SessionID string  `json:"sessionId"`
	Notes     *string `json:"notes,omitempty"`
}

// ToCreateSessionResponse は出力からレスポンスに変換します
func ToCreateSessionResponse(out *command.CreateSessionOutput) CreateSessionResponse {
	return CreateSessionResponse{
		SessionID:    out.SessionID,
		Seed:         out.Seed,
		CreatedAtISO: out.CreatedAtISO,
	}
}

// ToSessionResponse はエンティティからレスポンスに変換します
func ToSessionResponse(s *entity.Session) SessionResponse {
	trials := s.Trials()
	items := make([]TrialResponse, len(trials))
	for i, t := range trials {
		items[i] = TrialResponse{Correct: t.Correct, TsEpochMs: t.TsEpochMs}
	}

	var finishedAt *string
	if f := s.FinishedAt(); f != nil {
		iso := f.ISO()
		finishedAt = &iso
	}

	return SessionResponse{
		SessionID:       s.ID().String(),
		SlpID:           s.SlpID().String(),
		StudentID:       s.StudentID().String(),
		Seed:            s.Seed().Value(),
		IsActive:        s.IsActive(),
		CreatedAtISO:    s.CreatedAt().ISO(),
		FinishedAtISO:   finishedAt,
		Notes:           s.Notes(),
		TotalTrials:     s.TotalTrials(),
		CorrectTrials:   s.CorrectTrials(),
		AccuracyPercent: s.AccuracyPercent(),
		Trials:          items,
	}
}

// ToSessionSummaryResponse は出力からレスポンスに変換します
func ToSessionSummaryResponse(out *query.GetSessionSummaryOutput) SessionSummaryResponse {
	return SessionSummaryResponse{
		SessionID:       out.SessionID,
		SlpID:           out.SlpID,
		StudentID:       out.StudentID,
		Seed:            out.Seed,
		CreatedAtISO:    out.CreatedAtISO,
		FinishedAtISO:   out.FinishedAtISO,
		TotalTrials:     out.TotalTrials,
		CorrectTrials:   out.CorrectTrials,
		IncorrectTrials: out.IncorrectTrials,
		AccuracyPercent: out.AccuracyPercent,
		ErrorPercent:    out.ErrorPercent,
		Notes:           out.Notes,
	}
}
