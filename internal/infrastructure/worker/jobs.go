package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// HealthCheck は名前付きの依存先チェックです
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthStatus は直近のヘルスチェック結果を保持します
type HealthStatus struct {
	mu        sync.RWMutex
	failures  map[string]string
	checkedAt time.Time
}

// NewHealthStatus は新しいHealthStatusを作成します
func NewHealthStatus() *HealthStatus {
	return &HealthStatus{failures: make(map[string]string)}
}

// Snapshot は失敗した依存先と最終確認時刻を返します
func (s *HealthStatus) Snapshot() (failures map[string]string, checkedAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.failures))
	for k, v := range s.failures {
		out[k] = v
	}
	return out, s.checkedAt
}

func (s *HealthStatus) record(failures map[string]string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = failures
	s.checkedAt = at
}

// RunHealthChecks は全チェックを実行し、失敗をまとめて返します
func RunHealthChecks(ctx context.Context, checks []HealthCheck) (map[string]string, error) {
	failures := make(map[string]string)
	var errs []error
	for _, hc := range checks {
		if err := hc.Check(ctx); err != nil {
			failures[hc.Name] = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", hc.Name, err))
		}
	}
	return failures, errors.Join(errs...)
}

// NewHealthCheckJob はヘルスチェックジョブを作成します（データベース・Redis接続確認など）
// statusがnilでなければ結果を記録します
func NewHealthCheckJob(checks []HealthCheck, status *HealthStatus, interval time.Duration) Job {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return Job{
		Name:     "health_check",
		Interval: interval,
		Fn: func(ctx context.Context) error {
			failures, err := RunHealthChecks(ctx, checks)
			if status != nil {
				status.record(failures, time.Now())
			}
			if err != nil {
				names := make([]string, 0, len(failures))
				for name := range failures {
					names = append(names, name)
				}
				sort.Strings(names)
				slog.Warn("health check failed", "dependencies", names)
				return err
			}
			return nil
		},
	}
}

// RoomStats はライブセッションの接続統計です
type RoomStats struct {
	Rooms   int
	Clients int
}

// NewRoomStatsJob はルーム統計を定期的にログ出力するジョブを作成します
func NewRoomStatsJob(statsFn func() RoomStats, interval time.Duration) Job {
	if interval <= 0 {
		interval = time.Minute
	}
	return Job{
		Name:     "room_stats",
		Interval: interval,
		Fn: func(ctx context.Context) error {
			stats := statsFn()
			slog.Info("live room stats", "rooms", stats.Rooms, "clients", stats.Clients)
			return nil
		},
	}
}
