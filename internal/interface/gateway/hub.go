package gateway

import (
	"log/slog"
	"sync"
)

// Hub はセッションIDごとのルームを管理します
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

// NewHub はHubを作成します
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

// Join はクライアントをルームに追加します
func (h *Hub) Join(sessionID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[sessionID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[sessionID] = room
	}
	room[c] = struct{}{}
}

// Leave はクライアントを全てのルームから外します
// 空になったルームは破棄します
func (h *Hub) Leave(c *Client) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var left []string
	for sessionID, room := range h.rooms {
		if _, ok := room[c]; !ok {
			continue
		}
		delete(room, c)
		left = append(left, sessionID)
		if len(room) == 0 {
			delete(h.rooms, sessionID)
		}
	}
	return left
}

// Broadcast はルームの全クライアントにフレームを送信します
// 送信バッファが満杯のクライアントは切断します
func (h *Hub) Broadcast(sessionID string, frame []byte) int {
	h.mu.RLock()
	var slow []*Client
	delivered := 0
	for c := range h.rooms[sessionID] {
		if c.trySend(frame) {
			delivered++
			continue
		}
		slow = append(slow, c)
	}
	h.mu.RUnlock()

	for _, c := range slow {
		slog.Warn("dropping slow websocket client",
			"client_id", c.ID(),
			"session_id", sessionID,
		)
		h.Leave(c)
		c.Close()
	}
	return delivered
}

// Members はルームのクライアント数を返します
func (h *Hub) Members(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionID])
}

// Contains はクライアントがルームに参加しているかを返します
func (h *Hub) Contains(sessionID string, c *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[sessionID][c]
	return ok
}

// RoomStats はルーム数と接続数の集計です
type RoomStats struct {
	Rooms   int
	Clients int
}

// Stats は現在のルーム統計を返します
// 複数ルームに参加するクライアントは1回だけ数えます
func (h *Hub) Stats() RoomStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[*Client]struct{})
	for _, room := range h.rooms {
		for c := range room {
			seen[c] = struct{}{}
		}
	}
	return RoomStats{Rooms: len(h.rooms), Clients: len(seen)}
}
