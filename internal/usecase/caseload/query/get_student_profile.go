package query

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

const (
	DefaultProfileLimit = 10
	MaxProfileLimit     = 100
)

// GetStudentProfileInput は生徒プロフィール取得の入力を定義します
type GetStudentProfileInput struct {
	StudentID string
	Limit     int // 0は既定値
}

// StudentSessionSummary はプロフィール内のセッション要約です
type StudentSessionSummary struct {
	SessionID       string
	CreatedAtISO    string
	FinishedAtISO   *string
	TotalTrials     int
	AccuracyPercent int
}

// GetStudentProfileOutput は生徒プロフィール取得の出力を定義します
type GetStudentProfileOutput struct {
	StudentID              string
	StudentName            *string
	Sessions               []StudentSessionSummary
	TotalTrials            int
	OverallAccuracyPercent int
}

// GetStudentProfileQuery は生徒プロフィール取得クエリです
type GetStudentProfileQuery struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
}

// NewGetStudentProfileQuery は新しいGetStudentProfileQueryを作成します
func NewGetStudentProfileQuery(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
) *GetStudentProfileQuery {
	return &GetStudentProfileQuery{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

// Execute は生徒プロフィール取得を実行します
func (q *GetStudentProfileQuery) Execute(ctx context.Context, input GetStudentProfileInput) (*GetStudentProfileOutput, error) {
	studentID, err := valueobject.NewIdentifierFor("studentId", input.StudentID)
	if err != nil {
		return nil, err
	}

	limit := clampLimit(input.Limit)

	sessions, err := q.sessionRepo.ListByStudent(ctx, studentID, limit)
	if err != nil {
		return nil, err
	}

	user, err := q.userRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	output := &GetStudentProfileOutput{
		StudentID: studentID.String(),
		Sessions:  make([]StudentSessionSummary, 0, len(sessions)),
	}
	if user != nil && user.IsStudent() {
		name := user.FullName()
		output.StudentName = &name
	}

	correct := 0
	for _, s := range sessions {
		output.Sessions = append(output.Sessions, toStudentSessionSummary(s))
		output.TotalTrials += s.TotalTrials()
		correct += s.CorrectTrials()
	}
	output.OverallAccuracyPercent = entity.AccuracyPercent(correct, output.TotalTrials)

	return output, nil
}

func clampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultProfileLimit
	case limit < 1:
		return 1
	case limit > MaxProfileLimit:
		return MaxProfileLimit
	default:
		return limit
	}
}

func toStudentSessionSummary(s *entity.Session) StudentSessionSummary {
	summary := StudentSessionSummary{
		SessionID:       s.ID().String(),
		CreatedAtISO:    s.CreatedAt().ISO(),
		TotalTrials:     s.TotalTrials(),
		AccuracyPercent: s.AccuracyPercent(),
	}
	if f := s.FinishedAt(); f != nil {
		iso := f.ISO()
		summary.FinishedAtISO = &iso
	}
	return summary
}
