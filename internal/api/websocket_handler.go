package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/lord-game/internal/config"
	"github.com/wfunc/lord-game/internal/console"
	"github.com/wfunc/lord-game/internal/service"
	"go.uber.org/zap"
)

// WebSocketHandler 把文字游戏会话跑在WebSocket连接上
// 浏览器终端（如xterm.js）连上来后得到和本地终端一样的界面
type WebSocketHandler struct {
	auth     service.AuthService
	game     service.GameService
	reset    service.ResetService
	cfg      config.WebSocketConfig
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewWebSocketHandler 创建WebSocket处理器，cfg为nil时使用内置默认值
func NewWebSocketHandler(auth service.AuthService, game service.GameService, reset service.ResetService, cfg *config.WebSocketConfig, log *zap.Logger) *WebSocketHandler {
	wc := config.WebSocketConfig{}
	if cfg != nil {
		wc = *cfg
	}
	if wc.ReadBufferSize <= 0 {
		wc.ReadBufferSize = 1024
	}
	if wc.WriteBufferSize <= 0 {
		wc.WriteBufferSize = 1024
	}
	if wc.PingInterval <= 0 {
		wc.PingInterval = 30 * time.Second
	}
	if wc.PongTimeout <= 0 {
		wc.PongTimeout = 60 * time.Second
	}
	if wc.WriteTimeout <= 0 {
		wc.WriteTimeout = 10 * time.Second
	}

	return &WebSocketHandler{
		auth:  auth,
		game:  game,
		reset: reset,
		cfg:   wc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  wc.ReadBufferSize,
			WriteBufferSize: wc.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				// 生产环境应校验Origin
				return true
			},
		},
		log: log,
	}
}

// Play 升级连接并运行游戏会话
func (h *WebSocketHandler) Play(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("WebSocket升级失败", zap.Error(err))
		return
	}
	defer conn.Close()

	connID := uuid.New().String()
	h.log.Info("WebSocket会话建立",
		zap.String("conn_id", connID),
		zap.String("ip", c.ClientIP()))

	if h.cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(h.cfg.MaxMessageSize)
	}
	conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	})

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go h.pingLoop(ctx, conn)

	rw := &wsReadWriter{conn: conn, writeTimeout: h.cfg.WriteTimeout}
	session := console.NewSession(rw, h.auth, h.game, h.reset, h.log)

	if err := session.Run(ctx); err != nil && err != io.EOF && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.log.Warn("WebSocket会话结束",
			zap.String("conn_id", connID),
			zap.Error(err))
		return
	}

	h.log.Info("WebSocket会话关闭", zap.String("conn_id", connID))
}

// pingLoop 周期性发送ping探测，失败即退出
// WriteControl可与会话写并发调用
func (h *WebSocketHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.cfg.WriteTimeout)); err != nil {
				return
			}
		}
	}
}

// wsReadWriter 把WebSocket文本消息适配成io.ReadWriter
type wsReadWriter struct {
	conn         *websocket.Conn
	reader       io.Reader
	writeTimeout time.Duration
}

func (w *wsReadWriter) Read(p []byte) (int, error) {
	for {
		if w.reader == nil {
			msgType, r, err := w.conn.NextReader()
			if err != nil {
				return 0, err
			}
			if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
				continue
			}
			w.reader = r
		}
		n, err := w.reader.Read(p)
		if err == io.EOF {
			// 当前消息读完，下一次Read取下一条消息
			w.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (w *wsReadWriter) Write(p []byte) (int, error) {
	if w.writeTimeout > 0 {
		w.conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
	}
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
