package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/cache"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/clock"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/database"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/memory"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/messaging"
	infraRepo "github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/worker"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/config"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/jwt"
)

// ユーザーキャッシュの設定
const (
	userCacheNamespace = "user"
	userCacheTTL       = 5 * time.Minute
)

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	TxManager   repository.TransactionManager

	// Services
	Clock       service.Clock
	JWTService  *jwt.JWTService
	RateLimiter *cache.RateLimiter
	Publisher   service.SessionEventPublisher
	Factory     *entity.SessionFactory

	// HealthStatus はバックグラウンドのヘルスチェック結果です
	HealthStatus *worker.HealthStatus

	// Repositories
	SessionRepo   repository.SessionRepository
	UserRepo      repository.UserRepository
	LiveStateRepo repository.LiveStateRepository

	// UseCases
	Session  *SessionUseCases
	Caseload *CaseloadUseCases

	closers []func() error
	config  *config.Config
}

// Options はContainer作成時のオプションを定義します
type Options struct {
	PostgresPool *pgxpool.Pool
	RedisClient  *redis.Client
	Publisher    service.SessionEventPublisher
	Clock        service.Clock
	SessionRepo  repository.SessionRepository
	UserRepo     repository.UserRepository
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
// 接続先が設定されていない依存はインメモリ実装に置き換えます
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config:       cfg,
		Clock:        opts.Clock,
		HealthStatus: worker.NewHealthStatus(),
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	c.Factory = entity.NewSessionFactory(c.Clock, cfg.Session.CreatedAtTolerance)

	if err := c.initPostgres(ctx, opts); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initRedis(ctx, opts); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initPublisher(opts); err != nil {
		c.Close()
		return nil, err
	}

	if cfg.AuthEnabled() {
		jwtConfig := jwt.DefaultConfig()
		jwtConfig.SecretKey = cfg.JWT.SecretKey
		if cfg.JWT.Issuer != "" {
			jwtConfig.Issuer = cfg.JWT.Issuer
		}
		if len(cfg.JWT.Audience) > 0 {
			jwtConfig.Audience = cfg.JWT.Audience
		}
		if cfg.JWT.AccessTokenExpiry > 0 {
			jwtConfig.AccessTokenExpiry = cfg.JWT.AccessTokenExpiry
		}
		if err := jwtConfig.Validate(); err != nil {
			c.Close()
			return nil, fmt.Errorf("invalid JWT config: %w", err)
		}
		c.JWTService = jwt.NewJWTService(jwtConfig)
	} else {
		slog.Warn("JWT secret is not set, authentication is disabled")
	}

	c.Session = NewSessionUseCases(c)
	c.Caseload = NewCaseloadUseCases(c)

	return c, nil
}

func (c *Container) initPostgres(ctx context.Context, opts Options) error {
	switch {
	case opts.PostgresPool != nil:
		tx := database.NewTxManager(opts.PostgresPool)
		c.TxManager = tx
		c.SessionRepo = infraRepo.NewSessionRepository(tx, c.Factory)
		c.UserRepo = infraRepo.NewUserRepository(tx)
	case c.config.UsePostgres():
		slog.Info("connecting to PostgreSQL...")
		dbConfig := database.DefaultDBConfig()
		if c.config.Database.MaxConns > 0 {
			dbConfig.MaxConns = c.config.Database.MaxConns
		}
		if c.config.Database.MinConns > 0 {
			dbConfig.MinConns = c.config.Database.MinConns
		}
		pgClient, err := database.NewPostgresClientWithConfig(ctx, c.config.Database.URL, dbConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		slog.Info("connected to PostgreSQL")

		if c.config.Database.AutoMigrate {
			if err := pgClient.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate PostgreSQL: %w", err)
			}
			slog.Info("database schema is up to date")
		}

		tx := database.NewTxManager(pgClient.Pool())
		c.TxManager = tx
		c.SessionRepo = infraRepo.NewSessionRepository(tx, c.Factory)
		c.UserRepo = infraRepo.NewUserRepository(tx)
	default:
		slog.Info("DATABASE_URL is not set, using in-memory repositories")
		c.TxManager = memory.NewTxManager()
		c.SessionRepo = memory.NewSessionRepository()
		c.UserRepo = memory.NewUserRepository()
	}

	if opts.SessionRepo != nil {
		c.SessionRepo = opts.SessionRepo
	}
	if opts.UserRepo != nil {
		c.UserRepo = opts.UserRepo
	}
	return nil
}

func (c *Container) initRedis(ctx context.Context, opts Options) error {
	var client *redis.Client
	switch {
	case opts.RedisClient != nil:
		client = opts.RedisClient
	case c.config.UseRedis():
		slog.Info("connecting to Redis...")
		redisConfig := cache.DefaultConfig()
		redisConfig.URL = c.config.Redis.URL
		redisClient, err := cache.NewRedisClient(ctx, redisConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.RedisClient = redisClient
		client = redisClient.Client()
		slog.Info("connected to Redis")
	}

	if client == nil {
		c.LiveStateRepo = memory.NewLiveState()
		return nil
	}

	c.RateLimiter = cache.NewRateLimiter(client)
	c.UserRepo = cache.NewCachedUserRepository(c.UserRepo, cache.NewCache(client, userCacheNamespace, userCacheTTL))
	if c.config.Live.StateBackend == config.LiveStateRedis {
		c.LiveStateRepo = cache.NewLiveStateStore(client, c.config.Live.StateTTL)
	} else {
		c.LiveStateRepo = memory.NewLiveState()
	}
	return nil
}

func (c *Container) initPublisher(opts Options) error {
	switch {
	case opts.Publisher != nil:
		c.Publisher = opts.Publisher
	case c.config.UseKafka():
		publisher, err := messaging.NewKafkaPublisher(messaging.KafkaConfig{
			Brokers:      c.config.Kafka.Brokers,
			Topic:        c.config.Kafka.Topic,
			WriteTimeout: c.config.Kafka.WriteTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to create Kafka publisher: %w", err)
		}
		c.Publisher = publisher
		c.closers = append(c.closers, publisher.Close)
		slog.Info("publishing session events to Kafka", "topic", c.config.Kafka.Topic)
	default:
		c.Publisher = messaging.NoopPublisher{}
	}
	return nil
}

// Config はコンテナの設定を返します
func (c *Container) Config() *config.Config {
	return c.config
}

// Close はリソースをクリーンアップします
func (c *Container) Close() error {
	var errs []error

	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
		}
	}

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}
