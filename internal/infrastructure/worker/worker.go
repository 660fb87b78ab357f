package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job は定期実行ジョブを定義します
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration // 0の場合はIntervalを上限とします
	Fn       func(ctx context.Context) error
}

// Manager はバックグラウンドワーカーを管理します
type Manager struct {
	jobs   []Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager は新しいWorker Managerを作成します
func NewManager() *Manager {
	return &Manager{}
}

// Register は定期実行ジョブを登録します
func (m *Manager) Register(job Job) {
	m.jobs = append(m.jobs, job)
}

// Jobs は登録済みジョブ名を返します
func (m *Manager) Jobs() []string {
	names := make([]string, len(m.jobs))
	for i, job := range m.jobs {
		names[i] = job.Name
	}
	return names
}

// Start は全ジョブのワーカーを開始します
// parentがキャンセルされるかShutdownが呼ばれると停止します
func (m *Manager) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	m.cancel = cancel

	for _, job := range m.jobs {
		m.wg.Add(1)
		go m.runJob(ctx, job)
	}
	slog.Info("worker manager started", "jobs", len(m.jobs))
}

func (m *Manager) runJob(ctx context.Context, job Job) {
	defer m.wg.Done()

	slog.Info("worker started", "job", job.Name, "interval", job.Interval)

	// 最初の実行を即座に行う
	m.execute(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopping", "job", job.Name)
			return
		case <-ticker.C:
			m.execute(ctx, job)
		}
	}
}

// execute はジョブを1回実行します。panicはエラーとして記録します
func (m *Manager) execute(ctx context.Context, job Job) {
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = job.Interval
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return job.Fn(runCtx)
	}()
	if err != nil && ctx.Err() == nil {
		slog.Error("worker job failed", "job", job.Name, "error", err)
	}
}

// Shutdown はすべてのワーカーを安全に停止します
func (m *Manager) Shutdown(timeout time.Duration) {
	slog.Info("shutting down worker manager...")
	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("worker manager stopped gracefully")
	case <-time.After(timeout):
		slog.Warn("worker manager shutdown timed out")
	}
}
