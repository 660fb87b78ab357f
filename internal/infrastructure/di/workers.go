package di

import (
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/worker"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/gateway"
)

// NewWorkerManager はバックグラウンドジョブを登録したManagerを作成します
func NewWorkerManager(c *Container, hub *gateway.Hub) *worker.Manager {
	manager := worker.NewManager()

	var checks []worker.HealthCheck
	if c.PgClient != nil {
		checks = append(checks, worker.HealthCheck{Name: "postgres", Check: c.PgClient.Health})
	}
	if c.RedisClient != nil {
		checks = append(checks, worker.HealthCheck{Name: "redis", Check: c.RedisClient.Health})
	}
	if len(checks) > 0 {
		manager.Register(worker.NewHealthCheckJob(checks, c.HealthStatus, c.config.Worker.HealthCheckInterval))
	}

	if hub != nil {
		manager.Register(worker.NewRoomStatsJob(func() worker.RoomStats {
			stats := hub.Stats()
			return worker.RoomStats{Rooms: stats.Rooms, Clients: stats.Clients}
		}, c.config.Worker.RoomStatsInterval))
	}

	return manager
}
