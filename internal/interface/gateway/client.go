package gateway

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultSendBuffer はクライアントごとの送信バッファ長です
const DefaultSendBuffer = 32

// Client はルームに参加する接続ハンドルです
// 送信はバッファ付きチャネル経由で行い、満杯の場合は送信に失敗します
type Client struct {
	id      string
	subject string

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// NewClient はクライアントを作成します
// subject は認証済み接続のトークン主体で、未認証の場合は空文字です
func NewClient(subject string, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Client{
		id:      uuid.NewString(),
		subject: subject,
		send:    make(chan []byte, buffer),
	}
}

// ID はクライアントIDを返します
func (c *Client) ID() string { return c.id }

// Subject はトークン主体を返します
func (c *Client) Subject() string { return c.subject }

// IsAuthenticated は認証済み接続かどうかを返します
func (c *Client) IsAuthenticated() bool { return c.subject != "" }

// Outbound は送信待ちフレームのチャネルを返します
func (c *Client) Outbound() <-chan []byte { return c.send }

// trySend はブロックせずにフレームをキューに積みます
func (c *Client) trySend(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// Close は送信チャネルを閉じます。複数回呼んでも安全です
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// IsClosed はクライアントが閉じられたかを返します
func (c *Client) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
