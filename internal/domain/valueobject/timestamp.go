package valueobject

import (
	"strings"
	"time"
)

// DefaultCreatedAtTolerance は作成日時が未来であることを許容する幅です
const DefaultCreatedAtTolerance = 120 * time.Second

// CreatedAt は作成日時を表す値オブジェクトです
type CreatedAt struct {
	value time.Time
}

// NewCreatedAt は時刻からCreatedAtを生成します
// nowからtoleranceを超えて未来の時刻は拒否します
func NewCreatedAt(t time.Time, now time.Time, tolerance time.Duration) (CreatedAt, error) {
	if t.IsZero() {
		return CreatedAt{}, invalid("createdAt", CodeInvalidTimestamp, "createdAt must be a valid timestamp", nil)
	}
	if t.After(now.Add(tolerance)) {
		return CreatedAt{}, invalid("createdAt", CodeTimestampInFuture, "createdAt is too far in the future", map[string]any{
			"value":       t.UTC().Format(time.RFC3339Nano),
			"toleranceMs": tolerance.Milliseconds(),
		})
	}
	return CreatedAt{value: t.UTC()}, nil
}

// ParseCreatedAt はISO8601文字列からCreatedAtを生成します
func ParseCreatedAt(raw string, now time.Time, tolerance time.Duration) (CreatedAt, error) {
	t, err := parseTimestamp(raw)
	if err != nil {
		return CreatedAt{}, invalid("createdAt", CodeInvalidTimestamp, "createdAt must be a valid timestamp", map[string]any{"value": raw})
	}
	return NewCreatedAt(t, now, tolerance)
}

// Time は時刻を返します
func (c CreatedAt) Time() time.Time {
	return c.value
}

// ISO はISO8601（ミリ秒精度）文字列を返します
func (c CreatedAt) ISO() string {
	return formatISO(c.value)
}

// FinishedAt は終了日時を表す値オブジェクトです
type FinishedAt struct {
	value time.Time
}

// NewFinishedAt は時刻からFinishedAtを生成します
// 未来の時刻は許容しません
func NewFinishedAt(t time.Time, now time.Time) (FinishedAt, error) {
	if t.IsZero() {
		return FinishedAt{}, invalid("finishedAt", CodeInvalidTimestamp, "finishedAt must be a valid timestamp", nil)
	}
	if t.After(now) {
		return FinishedAt{}, invalid("finishedAt", CodeTimestampInFuture, "finishedAt cannot be in the future", map[string]any{
			"value": t.UTC().Format(time.RFC3339Nano),
		})
	}
	return FinishedAt{value: t.UTC()}, nil
}

// ParseFinishedAt はISO8601文字列からFinishedAtを生成します
func ParseFinishedAt(raw string, now time.Time) (FinishedAt, error) {
	t, err := parseTimestamp(raw)
	if err != nil {
		return FinishedAt{}, invalid("finishedAt", CodeInvalidTimestamp, "finishedAt must be a valid timestamp", map[string]any{"value": raw})
	}
	return NewFinishedAt(t, now)
}

// Time は時刻を返します
func (f FinishedAt) Time() time.Time {
	return f.value
}

// ISO はISO8601（ミリ秒精度）文字列を返します
func (f FinishedAt) ISO() string {
	return formatISO(f.value)
}

// isoLayout はクライアントへ返す時刻フォーマット（ミリ秒固定、UTC）
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func parseTimestamp(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
}

// EpochMsToTime はエポックミリ秒をtime.Timeに変換します
func EpochMsToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
