package service

// Clock は現在時刻を提供するドメインサービスインターフェースです
// タイムスタンプを生成する箇所は全てこのポートを経由します
type Clock interface {
	NowEpochMs() int64
}

// ClockFunc は関数をClockとして扱うアダプタです
type ClockFunc func() int64

// NowEpochMs はエポックミリ秒を返します
func (f ClockFunc) NowEpochMs() int64 {
	return f()
}

// FixedClock は常に同じ時刻を返すClockです
func FixedClock(epochMs int64) Clock {
	return ClockFunc(func() int64 { return epochMs })
}
