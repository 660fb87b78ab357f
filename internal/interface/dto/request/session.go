package request

// CreateSessionRequest はセッション作成リクエストです
// 識別子の形式はドメイン層で検証します
type CreateSessionRequest struct {
	SlpID     string   `json:"slpId" validate:"required"`
	StudentID string   `json:"studentId" validate:"required"`
	Seed      *float64 `json:"seed"`
	Notes     *string  `json:"notes"`
}

// AppendTrialRequest は試行追加リクエストです
type AppendTrialRequest struct {
	Correct     *bool  `json:"correct" validate:"required"`
	PerformedBy string `json:"performedBy" validate:"omitempty,turnrole"`
}

// PatchNotesRequest はメモ更新リクエストです
// notesの省略・null・空白のみはメモのクリアです
type PatchNotesRequest struct {
	Notes *string `json:"notes"`
}

// SessionSummaryRequest はセッションサマリー取得リクエストです
type SessionSummaryRequest struct {
	SlpID string `query:"slpId"`
}
