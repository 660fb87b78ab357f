package clock

import (
	"time"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
)

// System は実時間を返すClockです
type System struct{}

var _ service.Clock = System{}

// New は新しいSystemクロックを作成します
func New() System {
	return System{}
}

// NowEpochMs は現在のエポックミリ秒を返します
func (System) NowEpochMs() int64 {
	return time.Now().UnixMilli()
}
