package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/jwt"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
)

// TokenVerifier はアクセストークンを検証します
type TokenVerifier interface {
	ValidateAccessToken(token string) (*jwt.AccessTokenClaims, error)
}

// WSHandlerConfig はWebSocketハンドラーの設定です
type WSHandlerConfig struct {
	AllowedOrigins []string // 空または"*"を含む場合は全て許可
	SendBuffer     int
}

// WSHandler はWebSocket接続を受け付けてCoordinatorに接続します
type WSHandler struct {
	coordinator *Coordinator
	verifier    TokenVerifier
	upgrader    websocket.Upgrader
	sendBuffer  int
}

// NewWSHandler は新しいWSHandlerを作成します
// verifierがnilの場合は認証を行いません
func NewWSHandler(coordinator *Coordinator, verifier TokenVerifier, cfg WSHandlerConfig) *WSHandler {
	return &WSHandler{
		coordinator: coordinator,
		verifier:    verifier,
		sendBuffer:  cfg.SendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimRight(origin, "/")]
		return ok
	}
}

// Handle はGET /ws を処理します
func (h *WSHandler) Handle(c echo.Context) error {
	subject := ""
	if h.verifier != nil {
		token := tokenFromRequest(c.Request())
		if token == "" {
			return apperror.NewUnauthorizedError("missing access token")
		}
		claims, err := h.verifier.ValidateAccessToken(token)
		if err != nil {
			return apperror.NewUnauthorizedError("invalid access token")
		}
		subject = claims.Principal()
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgraderがエラーレスポンスを書き込み済み
		logger.Warn(c.Request().Context(), "websocket upgrade failed", "error", err.Error())
		return nil
	}

	client := NewClient(subject, h.sendBuffer)
	ctx := logger.ContextWithClientID(c.Request().Context(), client.ID())
	if subject != "" {
		ctx = logger.ContextWithUserID(ctx, subject)
	}
	logger.Info(ctx, "websocket connected")

	go h.writePump(conn, client)
	h.readPump(ctx, conn, client)

	logger.Info(ctx, "websocket disconnected")
	return nil
}

// tokenFromRequest はBearerヘッダーまたはtokenクエリからトークンを取り出します
func tokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}

func (h *WSHandler) readPump(ctx context.Context, conn *websocket.Conn, client *Client) {
	defer func() {
		h.coordinator.Disconnect(ctx, client)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn(ctx, "websocket read failed", "error", err.Error())
			}
			return
		}
		if !h.dispatch(ctx, client, data) {
			return
		}
	}
}

// dispatch はイベント処理中のpanicを回復し、接続を閉じるべきかを返します
func (h *WSHandler) dispatch(ctx context.Context, client *Client, data []byte) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "panic while handling websocket event", "panic", r)
			ok = false
		}
	}()
	h.coordinator.Dispatch(ctx, client, data)
	return true
}

func (h *WSHandler) writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case frame, ok := <-client.Outbound():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
