package response

import (
	"github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/caseload/query"
)

// StudentSessionResponse は生徒プロフィール内のセッション要約です
type StudentSessionResponse struct {
	SessionID       string  `json:"sessionId"`
	CreatedAtISO    string  `json:"createdAtIso"`
	FinishedAtISO   *string `json:"finishedAtIso,omitempty"`
	TotalTrials     int     `json:"totalTrials"`
	AccuracyPercent int     `json:"accuracyPercent"`
}

// StudentProfileResponse は生徒プロフィールレスポンスです
type StudentProfileResponse struct {
	StudentID              string                   `json:"studentId"`
	StudentName            *string                  `json:"studentName,omitempty"`
	Sessions               []StudentSessionResponse `json:"sessions"`
	TotalTrials            int                      `json:"totalTrials"`
	OverallAccuracyPercent int                      `json:"overallAccuracyPercent"`
}

// CaseloadStudentResponse は担当生徒レスポンスです
type CaseloadStudentResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
}

// CaseloadResponse は担当生徒一覧レスポンスです
type CaseloadResponse struct {
	SlpID    string                    `json:"slpId"`
	Students []CaseloadStudentResponse `json:"students"`
}

// ToStudentProfileResponse は出力からレスポンスに変換します
func ToStudentProfileResponse(out *query.GetStudentProfileOutput) StudentProfileResponse {
	sessions := make([]StudentSessionResponse, len(out.Sessions))
	for i, s := range out.Sessions {
		sessions[i] = StudentSessionResponse{
			SessionID:       s.SessionID,
			CreatedAtISO:    s.CreatedAtISO,
			FinishedAtISO:   s.FinishedAtISO,
			TotalTrials:     s.TotalTrials,
			AccuracyPercent: s.AccuracyPercent,
		}
	}
	return StudentProfileResponse{
		StudentID:              out.StudentID,
		StudentName:            out.StudentName,
		Sessions:               sessions,
		TotalTrials:            out.TotalTrials,
		OverallAccuracyPercent: out.OverallAccuracyPercent,
	}
}

// ToCaseloadResponse は出力からレスポンスに変換します
func ToCaseloadResponse(out *query.ListCaseloadOutput) CaseloadResponse {
	students := make([]CaseloadStudentResponse, len(out.Students))
	for i, s := range out.Students {
		students[i] = CaseloadStudentResponse{
			ID:       s.ID,
			FullName: s.FullName,
			Email:    s.Email,
			Active:   s.Active,
		}
	}
	return CaseloadResponse{SlpID: out.SlpID, Students: students}
}
