package entity

import "time"

// TrialPrimitives は永続化・転送用の試行データです
type TrialPrimitives struct {
	Correct   bool    `json:"correct"`
	TsEpochMs float64 `json:"tsEpochMs"`
}

// SessionPrimitives は永続化・転送用のセッションデータです
type SessionPrimitives struct {
	ID         string            `json:"id"`
	IsActive   bool              `json:"isActive"`
	CreatedAt  time.Time         `json:"createdAt"`
	SlpID      string            `json:"slpId"`
	StudentID  string            `json:"studentId"`
	Seed       int64             `json:"seed"`
	FinishedAt *time.Time        `json:"finishedAt,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
	Trials     []TrialPrimitives `json:"trials"`
}

// ToPrimitives はセッションのディープコピーを返します
func (s *Session) ToPrimitives() SessionPrimitives {
	p := SessionPrimitives{
		ID:        s.id.String(),
		IsActive:  s.isActive,
		CreatedAt: s.createdAt.Time(),
		SlpID:     s.slpID.String(),
		StudentID: s.studentID.String(),
		Seed:      s.seed.Value(),
		Notes:     s.Notes(),
		Trials:    make([]TrialPrimitives, len(s.trials)),
	}
	if s.finishedAt != nil {
		t := s.finishedAt.Time()
		p.FinishedAt = &t
	}
	for i, t := range s.trials {
		p.Trials[i] = TrialPrimitives{Correct: t.Correct, TsEpochMs: float64(t.TsEpochMs)}
	}
	return p
}
