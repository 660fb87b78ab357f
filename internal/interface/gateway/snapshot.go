package gateway

import (
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// Snapshot はクライアントに配信するゲーム状態です
// 試行履歴そのものは含めず、累積値のみを返します
type Snapshot struct {
	SessionID       string   `json:"sessionId"`
	SlpID           string   `json:"slpId"`
	StudentID       string   `json:"studentId"`
	CurrentTurn     string   `json:"currentTurn"`
	TotalTrials     int      `json:"totalTrials"`
	AccuracyPercent int      `json:"accuracyPercent"`
	Notes           *string  `json:"notes,omitempty"`
	CreatedAtISO    string   `json:"createdAtIso"`
	FinishedAtISO   *string  `json:"finishedAtIso,omitempty"`
	MatchedCardIDs  []string `json:"matchedCardIds"`
	BoardSeed       int64    `json:"boardSeed"`
	Difficulty      string   `json:"difficulty"`
}

// BuildSnapshot は永続化されたセッションとライブ状態からスナップショットを作成します
func BuildSnapshot(s *entity.Session, turn valueobject.TurnRole, matched []string, difficulty string) Snapshot {
	if matched == nil {
		matched = []string{}
	}
	snap := Snapshot{
		SessionID:       s.ID().String(),
		SlpID:           s.SlpID().String(),
		StudentID:       s.StudentID().String(),
		CurrentTurn:     turn.String(),
		TotalTrials:     s.TotalTrials(),
		AccuracyPercent: s.AccuracyPercent(),
		Notes:           s.Notes(),
		CreatedAtISO:    s.CreatedAt().ISO(),
		MatchedCardIDs:  matched,
		BoardSeed:       s.Seed().Value(),
		Difficulty:      difficulty,
	}
	if f := s.FinishedAt(); f != nil {
		iso := f.ISO()
		snap.FinishedAtISO = &iso
	}
	return snap
}
