package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
)

// messageWriter はkafka.Writerのうち発行に使う部分です
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConfig はKafka発行の設定を定義します
type KafkaConfig struct {
	Brokers      []string
	Topic        string        // 既定のトピック
	WriteTimeout time.Duration // 1回の書き込みのタイムアウト
}

// writerBatchTimeout は1件の書き込みがバッチを待つ上限です
const writerBatchTimeout = 10 * time.Millisecond

// KafkaPublisher はセッションイベントをKafkaへ発行します
// パーティションキーはセッションIDで、同一セッションのイベント順序を保ちます
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

var _ service.SessionEventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher は新しいKafkaPublisherを作成します
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka publisher requires at least one broker")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka publisher requires a topic")
	}
	return newKafkaPublisher(newKafkaWriter(cfg), cfg.Topic, cfg.WriteTimeout), nil
}

// newKafkaWriter はイベント1件ごとに即時送信するWriterを作成します
func newKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.Hash{},
		BatchSize:              1,
		BatchTimeout:           writerBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

func newKafkaPublisher(w messageWriter, topic string, timeout time.Duration) *KafkaPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaPublisher{writer: w, topic: topic, timeout: timeout}
}

// Publish はイベントをJSONで発行します
func (p *KafkaPublisher) Publish(ctx context.Context, event service.SessionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal session event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SessionID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// Close は書き込みをフラッシュして接続を閉じます
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
