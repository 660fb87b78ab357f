package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ライブ状態の保存先
const (
	LiveStateMemory = "memory"
	LiveStateRedis  = "redis"
)

// Config はアプリケーション全体の設定を定義します
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Live     LiveConfig     `yaml:"live"`
	Session  SessionConfig  `yaml:"session"`
	Security SecurityConfig `yaml:"security"`
	Logger   LoggerConfig   `yaml:"logger"`
	Worker   WorkerConfig   `yaml:"worker"`
}

// ServerConfig はサーバー設定を定義します
type ServerConfig struct {
	Port            int           `yaml:"port"`
	Debug           bool          `yaml:"debug"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig はデータベース設定を定義します
// URLが空の場合はインメモリストアを使います
type DatabaseConfig struct {
	URL         string `yaml:"url"`
	MaxConns    int32  `yaml:"max_conns"`
	MinConns    int32  `yaml:"min_conns"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// RedisConfig はRedis設定を定義します
// URLが空の場合はキャッシュとレート制限を無効にします
type RedisConfig struct {
	URL string `yaml:"url"`
}

// JWTConfig はJWT設定を定義します
// SecretKeyが空の場合は認証を行いません
type JWTConfig struct {
	SecretKey         string        `yaml:"secret_key"`
	Issuer            string        `yaml:"issuer"`
	Audience          []string      `yaml:"audience"`
	AccessTokenExpiry time.Duration `yaml:"access_token_expiry"`
}

// KafkaConfig はドメインイベント配信の設定を定義します
// Brokersが空の場合はイベントを配信しません
type KafkaConfig struct {
	Brokers      []string      `yaml:"brokers"`
	Topic        string        `yaml:"topic"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LiveConfig はライブセッションの設定を定義します
type LiveConfig struct {
	Difficulty     string        `yaml:"difficulty"`
	StateBackend   string        `yaml:"state_backend"`
	StateTTL       time.Duration `yaml:"state_ttl"`
	SendBuffer     int           `yaml:"send_buffer"`
	MoveRateLimit  int           `yaml:"move_rate_limit"`
	MoveRateWindow time.Duration `yaml:"move_rate_window"`
}

// SessionConfig はセッション集約の設定を定義します
type SessionConfig struct {
	CreatedAtTolerance time.Duration `yaml:"created_at_tolerance"`
}

// SecurityConfig はセキュリティ設定を定義します
type SecurityConfig struct {
	CORSOrigins      []string `yaml:"cors_origins"`
	EnableHSTS       bool     `yaml:"enable_hsts"`
	RateLimitEnabled bool     `yaml:"rate_limit_enabled"`
}

// LoggerConfig はログ設定を定義します
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// WorkerConfig はバックグラウンドジョブの設定を定義します
type WorkerConfig struct {
	HealthCheckInterval time.Duration `yaml:"health_check_interval"`
	RoomStatsInterval   time.Duration `yaml:"room_stats_interval"`
}

// Default はデフォルト設定を返します
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxConns: 10,
			MinConns: 2,
		},
		JWT: JWTConfig{
			Issuer:            "empatspeech",
			Audience:          []string{"empatspeech-api"},
			AccessTokenExpiry: 15 * time.Minute,
		},
		Kafka: KafkaConfig{
			Topic:        "session-events",
			WriteTimeout: 5 * time.Second,
		},
		Live: LiveConfig{
			Difficulty:     "easy",
			StateBackend:   LiveStateMemory,
			StateTTL:       24 * time.Hour,
			SendBuffer:     32,
			MoveRateLimit:  20,
			MoveRateWindow: 10 * time.Second,
		},
		Session: SessionConfig{
			CreatedAtTolerance: 120 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:      []string{"http://localhost:3000"},
			RateLimitEnabled: true,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Worker: WorkerConfig{
			HealthCheckInterval: 5 * time.Minute,
			RoomStatsInterval:   time.Minute,
		},
	}
}

// Load は設定を読み込みます
// デフォルト値にCONFIG_FILEのYAMLを重ね、さらに環境変数で上書きします
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv は設定済みの環境変数のみを反映します
func (c *Config) applyEnv(getenv func(string) string) error {
	e := envReader{getenv: getenv}

	e.int("SERVER_PORT", &c.Server.Port)
	e.bool("DEBUG", &c.Server.Debug)
	e.duration("SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)

	e.string("DATABASE_URL", &c.Database.URL)
	e.int32("DATABASE_MAX_CONNS", &c.Database.MaxConns)
	e.int32("DATABASE_MIN_CONNS", &c.Database.MinConns)
	e.bool("DATABASE_AUTO_MIGRATE", &c.Database.AutoMigrate)

	e.string("REDIS_URL", &c.Redis.URL)

	e.string("JWT_SECRET_KEY", &c.JWT.SecretKey)
	e.string("JWT_ISSUER", &c.JWT.Issuer)
	e.list("JWT_AUDIENCE", &c.JWT.Audience)
	e.duration("JWT_ACCESS_TOKEN_EXPIRY", &c.JWT.AccessTokenExpiry)

	e.list("KAFKA_BROKERS", &c.Kafka.Brokers)
	e.string("KAFKA_TOPIC", &c.Kafka.Topic)
	e.duration("KAFKA_WRITE_TIMEOUT", &c.Kafka.WriteTimeout)

	e.string("LIVE_DIFFICULTY", &c.Live.Difficulty)
	e.string("LIVE_STATE_BACKEND", &c.Live.StateBackend)
	e.duration("LIVE_STATE_TTL", &c.Live.StateTTL)
	e.int("LIVE_SEND_BUFFER", &c.Live.SendBuffer)
	e.int("LIVE_MOVE_RATE_LIMIT", &c.Live.MoveRateLimit)
	e.duration("LIVE_MOVE_RATE_WINDOW", &c.Live.MoveRateWindow)

	e.duration("SESSION_CREATED_AT_TOLERANCE", &c.Session.CreatedAtTolerance)

	e.list("CORS_ORIGINS", &c.Security.CORSOrigins)
	e.bool("ENABLE_HSTS", &c.Security.EnableHSTS)
	e.bool("RATE_LIMIT_ENABLED", &c.Security.RateLimitEnabled)

	e.string("LOG_LEVEL", &c.Logger.Level)
	e.string("LOG_FORMAT", &c.Logger.Format)
	e.string("LOG_OUTPUT", &c.Logger.Output)

	e.duration("WORKER_HEALTH_CHECK_INTERVAL", &c.Worker.HealthCheckInterval)
	e.duration("WORKER_ROOM_STATS_INTERVAL", &c.Worker.RoomStatsInterval)

	return errors.Join(e.errs...)
}

// Validate は設定を検証します
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port: %d", c.Server.Port))
	}
	switch c.Live.StateBackend {
	case LiveStateMemory:
	case LiveStateRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("LIVE_STATE_BACKEND=redis requires REDIS_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown live state backend: %q", c.Live.StateBackend))
	}
	if strings.TrimSpace(c.Live.Difficulty) == "" {
		errs = append(errs, errors.New("live difficulty must not be empty"))
	}
	if c.JWT.SecretKey != "" && len(c.JWT.SecretKey) < 32 {
		errs = append(errs, errors.New("JWT_SECRET_KEY must be at least 32 characters"))
	}
	if c.Session.CreatedAtTolerance < 0 {
		errs = append(errs, errors.New("session created_at tolerance must not be negative"))
	}
	return errors.Join(errs...)
}

// AuthEnabled はトークン検証が有効かを返します
func (c *Config) AuthEnabled() bool {
	return c.JWT.SecretKey != ""
}

// UsePostgres はPostgreSQLを永続化先に使うかを返します
func (c *Config) UsePostgres() bool {
	return c.Database.URL != ""
}

// UseRedis はRedisが設定されているかを返します
func (c *Config) UseRedis() bool {
	return c.Redis.URL != ""
}

// UseKafka はKafkaへのイベント配信が有効かを返します
func (c *Config) UseKafka() bool {
	return len(c.Kafka.Brokers) > 0
}

type envReader struct {
	getenv func(string) string
	errs   []error
}

func (e *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(e.getenv(key))
	return v, v != ""
}

func (e *envReader) string(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) int(key string, dst *int) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
		return
	}
	*dst = n
}

func (e *envReader) int32(key string, dst *int32) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
		return
	}
	*dst = int32(n)
}

func (e *envReader) bool(key string, dst *bool) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
		return
	}
	*dst = b
}

func (e *envReader) duration(key string, dst *time.Duration) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
		return
	}
	*dst = d
}

func (e *envReader) list(key string, dst *[]string) {
	if v, ok := e.lookup(key); ok {
		*dst = splitList(v)
	}
}

// splitList はカンマ区切りの文字列をスライスに変換します
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
