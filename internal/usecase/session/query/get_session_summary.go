package query

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// GetSessionSummaryInput はセッションサマリー取得の入力を定義します
type GetSessionSummaryInput struct {
	SessionID string
	SlpID     string
}

// GetSessionSummaryOutput はセッションサマリー取得の出力を定義します
type GetSessionSummaryOutput struct {
	SessionID       string
	SlpID           string
	StudentID       string
	Seed            int64
	CreatedAtISO    string
	FinishedAtISO   *string
	TotalTrials     int
	CorrectTrials   int
	IncorrectTrials int
	AccuracyPercent int
	ErrorPercent    int
	Notes           *string
}

// GetSessionSummaryQuery はセッションサマリー取得クエリです
type GetSessionSummaryQuery struct {
	sessionRepo repository.SessionRepository
}

// NewGetSessionSummaryQuery は新しいGetSessionSummaryQueryを作成します
func NewGetSessionSummaryQuery(sessionRepo repository.SessionRepository) *GetSessionSummaryQuery {
	return &GetSessionSummaryQuery{sessionRepo: sessionRepo}
}

// Execute はセッションサマリー取得を実行します
// 他のSLPのセッションは存在しないものとして扱います
func (q *GetSessionSummaryQuery) Execute(ctx context.Context, input GetSessionSummaryInput) (*GetSessionSummaryOutput, error) {
	sessionID, err := valueobject.NewIdentifierFor("sessionId", input.SessionID)
	if err != nil {
		return nil, err
	}
	slpID, err := valueobject.NewIdentifierFor("slpId", input.SlpID)
	if err != nil {
		return nil, err
	}

	session, err := q.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.SlpID().Equals(slpID) {
		return nil, apperror.NewSessionNotFoundError(sessionID.String())
	}

	total := session.TotalTrials()
	correct := session.CorrectTrials()
	accuracy := session.AccuracyPercent()
	errorPercent := 0
	if total > 0 {
		errorPercent = 100 - accuracy
	}

	output := &GetSessionSummaryOutput{
		SessionID:       session.ID().String(),
		SlpID:           session.SlpID().String(),
		StudentID:       session.StudentID().String(),
		Seed:            session.Seed().Value(),
		CreatedAtISO:    session.CreatedAt().ISO(),
		TotalTrials:     total,
		CorrectTrials:   correct,
		IncorrectTrials: total - correct,
		AccuracyPercent: accuracy,
		ErrorPercent:    errorPercent,
		Notes:           session.Notes(),
	}
	if f := session.FinishedAt(); f != nil {
		iso := f.ISO()
		output.FinishedAtISO = &iso
	}

	return output, nil
}
