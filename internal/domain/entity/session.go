package entity

import (
	"math"
	"slices"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// Session はSLPと生徒の1回のmemotestセッションを表す集約です
// 状態を変更するメソッドは全て新しい値を返し、レシーバは変更しません
type Session struct {
	id         valueobject.Identifier
	isActive   bool
	createdAt  valueobject.CreatedAt
	slpID      valueobject.Identifier
	studentID  valueobject.Identifier
	seed       valueobject.Seed
	finishedAt *valueobject.FinishedAt
	notes      *string
	trials     []Trial
}

func (s *Session) clone() *Session {
	c := *s
	c.trials = slices.Clone(s.trials)
	if s.finishedAt != nil {
		f := *s.finishedAt
		c.finishedAt = &f
	}
	if s.notes != nil {
		n := *s.notes
		c.notes = &n
	}
	return &c
}

// WithTrial は試行を追加したセッションを返します
func (s *Session) WithTrial(correct bool, atEpochMs float64) *Session {
	c := s.clone()
	c.trials = append(c.trials, NewTrial(correct, atEpochMs))
	return c
}

// WithNotes はメモを差し替えたセッションを返します
// nilまたは空白のみの場合はメモをクリアします
func (s *Session) WithNotes(raw *string) (*Session, error) {
	notes, err := valueobject.NormalizeNotes(raw)
	if err != nil {
		return nil, err
	}
	c := s.clone()
	c.notes = notes
	return c, nil
}

// Finish は終了日時を設定したセッションを返します
// 二重終了の検出は呼び出し側の責務です
func (s *Session) Finish(at valueobject.FinishedAt) *Session {
	c := s.clone()
	c.finishedAt = &at
	return c
}

// ID はセッションIDを返します
func (s *Session) ID() valueobject.Identifier { return s.id }

// IsActive はセッションが有効かを返します
func (s *Session) IsActive() bool { return s.isActive }

// CreatedAt は作成日時を返します
func (s *Session) CreatedAt() valueobject.CreatedAt { return s.createdAt }

// SlpID は担当SLPのIDを返します
func (s *Session) SlpID() valueobject.Identifier { return s.slpID }

// StudentID は生徒のIDを返します
func (s *Session) StudentID() valueobject.Identifier { return s.studentID }

// Seed はカード配置のシード値を返します
func (s *Session) Seed() valueobject.Seed { return s.seed }

// FinishedAt は終了日時を返します（未終了はnil）
func (s *Session) FinishedAt() *valueobject.FinishedAt {
	if s.finishedAt == nil {
		return nil
	}
	f := *s.finishedAt
	return &f
}

// Notes はメモを返します（未設定はnil）
func (s *Session) Notes() *string {
	if s.notes == nil {
		return nil
	}
	n := *s.notes
	return &n
}

// Trials は試行履歴のコピーを返します
func (s *Session) Trials() []Trial {
	return slices.Clone(s.trials)
}

// IsFinished は終了済みかを判定します
func (s *Session) IsFinished() bool {
	return s.finishedAt != nil
}

// TotalTrials は試行数を返します
func (s *Session) TotalTrials() int {
	return len(s.trials)
}

// CorrectTrials は正解数を返します
func (s *Session) CorrectTrials() int {
	n := 0
	for _, t := range s.trials {
		if t.Correct {
			n++
		}
	}
	return n
}

// AccuracyPercent は正答率（0〜100の整数）を返します
func (s *Session) AccuracyPercent() int {
	return AccuracyPercent(s.CorrectTrials(), s.TotalTrials())
}

// HasParticipant はユーザーがセッション参加者かを判定します
func (s *Session) HasParticipant(userID valueobject.Identifier) bool {
	_, ok := s.RoleOf(userID)
	return ok
}

// RoleOf はユーザーのセッション内ロールを返します
func (s *Session) RoleOf(userID valueobject.Identifier) (valueobject.TurnRole, bool) {
	switch {
	case s.slpID.Equals(userID):
		return valueobject.TurnSLP, true
	case s.studentID.Equals(userID):
		return valueobject.TurnStudent, true
	default:
		return "", false
	}
}

// AccuracyPercent は正解数と試行数から四捨五入した正答率を計算します
func AccuracyPercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
