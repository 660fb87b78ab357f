package entity

import "math"

// Trial は1ターン分の正誤結果を表します
type Trial struct {
	Correct   bool
	TsEpochMs int64
}

// NewTrial はTrialを作成します。タイムスタンプはミリ秒未満を切り捨てます
func NewTrial(correct bool, atEpochMs float64) Trial {
	return Trial{Correct: correct, TsEpochMs: int64(math.Trunc(atEpochMs))}
}
