package ws

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskshell/internal/domain/sandbox"
	"github.com/GriffinCanCode/deskshell/internal/domain/service"
	"github.com/GriffinCanCode/deskshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/deskshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/deskshell/internal/shared/id"
	"github.com/GriffinCanCode/deskshell/internal/shared/types"
	"github.com/GriffinCanCode/deskshell/internal/shared/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Handler manages WebSocket command connections
type Handler struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. Browsers connecting from an
// origin outside allowOrigins are refused; clients without an Origin header
// are accepted.
func NewHandler(registry *service.Registry, metrics *monitoring.Metrics, logger *zap.Logger, allowOrigins []string) *Handler {
	return &Handler{
		registry: registry,
		metrics:  metrics,
		logger:   logging.OrNop(logger),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"), allowOrigins)
			},
		},
	}
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, pattern := range allowed {
		switch {
		case pattern == "*", pattern == origin:
			return true
		case strings.HasSuffix(pattern, "*") && strings.HasPrefix(origin, strings.TrimSuffix(pattern, "*")):
			return true
		}
	}
	return false
}

// session is one live connection. Writes are serialized by mu.
type session struct {
	id   id.ConnectionID
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) writeFrame(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(messageType, data)
}

// HandleConnection upgrades the request and serves command frames until the
// client goes away.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	s := &session{id: id.NewConnectionID(), conn: conn}
	logger := h.logger.With(zap.String("connection_id", s.id.String()))

	ctx, cancel := context.WithCancel(c.Request.Context())
	var inflight sync.WaitGroup
	defer func() {
		cancel()
		inflight.Wait()
		conn.Close()
		if h.metrics != nil {
			h.metrics.DecWSConnections()
		}
		logger.Debug("WebSocket closed")
	}()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
	logger.Debug("WebSocket connected")

	conn.SetReadLimit(utils.MaxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go h.keepalive(ctx, s)

	h.send(s, types.WSResponse{
		Type:    "system",
		ID:      s.id.String(),
		Success: true,
		Message: "connected",
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.record("in", "malformed")
			h.sendError(s, "", types.KindInvalidArgument, "malformed frame: "+err.Error())
			continue
		}

		switch msg.Type {
		case "ping":
			h.record("in", "ping")
			h.send(s, types.WSResponse{Type: "pong", ID: msg.ID, Success: true})
		case "", "invoke":
			h.record("in", "invoke")
			if msg.Command == "" {
				h.sendError(s, msg.ID, types.KindInvalidArgument, "command is required")
				continue
			}
			inflight.Add(1)
			go func(msg types.WSMessage) {
				defer inflight.Done()
				h.dispatch(ctx, s, msg)
			}(msg)
		default:
			h.record("in", "unknown")
			h.sendError(s, msg.ID, types.KindInvalidArgument, "unknown message type: "+msg.Type)
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, s *session, msg types.WSMessage) {
	reqID := msg.ID
	if reqID == "" {
		reqID = id.NewRequestID().String()
	}
	origin := "ws"
	appCtx := &types.Context{RequestID: &reqID, Origin: &origin}

	result, err := h.registry.Invoke(ctx, msg.Command, msg.Args, appCtx)
	if result == nil {
		message := "command failed"
		if err != nil {
			message = err.Error()
		}
		h.sendError(s, msg.ID, sandbox.KindIOFailure.String(), message)
		return
	}

	h.send(s, types.WSResponse{
		Type:    "result",
		ID:      msg.ID,
		Success: result.Success,
		Value:   result.Value,
		Error:   result.Error,
		Kind:    result.Kind,
	})
}

func (h *Handler) keepalive(ctx context.Context, s *session) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.writeFrame(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) send(s *session, frame types.WSResponse) {
	data, err := sonic.Marshal(frame)
	if err != nil {
		h.logger.Error("Failed to encode frame", zap.Error(err))
		return
	}
	if err := s.writeFrame(websocket.TextMessage, data); err != nil {
		h.logger.Debug("WebSocket write failed", zap.String("connection_id", s.id.String()), zap.Error(err))
		return
	}
	h.record("out", frame.Type)
}

func (h *Handler) sendError(s *session, frameID, kind, message string) {
	msg := message
	h.send(s, types.WSResponse{
		Type:    "error",
		ID:      frameID,
		Success: false,
		Error:   &msg,
		Kind:    kind,
	})
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}
