package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwlog "github.com/msto63/lox/foundation/core/log"
	mdwlox "github.com/msto63/lox/foundation/lox"
	"github.com/msto63/lox/internal/history/store"
)

// WebSocket upgrader with permissive settings for local development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// messageOverhead is the room left in a message for the JSON envelope
const messageOverhead = 4096

// HandlerConfig configures the WebSocket handler
type HandlerConfig struct {
	IdleTimeout     time.Duration
	MaxSourceLength int
	StopOnError     bool
	Logger          *mdwlog.Logger
	History         store.Store
}

// WebSocketHandler runs one lox session per connection
type WebSocketHandler struct {
	config   HandlerConfig
	logger   *mdwlog.Logger
	sessions atomic.Int64
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cfg HandlerConfig) *WebSocketHandler {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultConfig().IdleTimeout
	}
	if cfg.MaxSourceLength <= 0 {
		cfg.MaxSourceLength = mdwlox.DefaultMaxSourceLength
	}
	if cfg.Logger == nil {
		cfg.Logger = mdwlog.GetDefault()
	}
	return &WebSocketHandler{
		config: cfg,
		logger: cfg.Logger.WithField("component", "lox-websocket"),
	}
}

// WSMessage represents a client message
type WSMessage struct {
	Type    string          `json:"type"`    // "run", "reset", "env", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSRunPayload is the payload of a run message
type WSRunPayload struct {
	Source string `json:"source"`
}

// WSResponse represents a server message
type WSResponse struct {
	Type    string      `json:"type"`              // "result", "reset", "env", "pong", "error"
	Payload interface{} `json:"payload,omitempty"` // Response-specific payload
}

// WSResultPayload reports the outcome of a run
type WSResultPayload struct {
	SessionID   string   `json:"session_id"`
	Status      string   `json:"status"`
	Output      []string `json:"output"`
	Diagnostics []string `json:"diagnostics"`
	Executed    int      `json:"executed"`
	DurationMS  float64  `json:"duration_ms"`
}

// WSEnvPayload lists the session bindings
type WSEnvPayload struct {
	SessionID string           `json:"session_id"`
	Bindings  []mdwlox.Binding `json:"bindings"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReadLimit returns the largest message a connection accepts. Escaping
// may double the source text inside the JSON string.
func (h *WebSocketHandler) ReadLimit() int64 {
	return 2*int64(h.config.MaxSourceLength) + messageOverhead
}

// ActiveSessions returns the number of open connections
func (h *WebSocketHandler) ActiveSessions() int64 {
	return h.sessions.Load()
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", mdwlog.Fields{"error": err.Error()})
		return
	}
	h.handleConnection(r.Context(), conn)
}

// connection is the per-connection state
type connection struct {
	conn    *websocket.Conn
	session *mdwlox.Session
	output  *bytes.Buffer
}

// handleConnection handles a single WebSocket connection
func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	output := &bytes.Buffer{}
	engine, err := mdwlox.NewEngine(mdwlox.Options{
		Logger:             h.config.Logger,
		Stdout:             output,
		MaxSourceLength:    h.config.MaxSourceLength,
		StopOnRuntimeError: h.config.StopOnError,
	})
	if err != nil {
		h.sendError(conn, string(mdwerror.CodeInternal), err.Error())
		return
	}
	c := &connection{
		conn:    conn,
		session: engine.NewSession(uuid.NewString()),
		output:  output,
	}

	h.sessions.Add(1)
	defer h.sessions.Add(-1)

	logger := h.logger.WithField("session", c.session.ID())
	logger.Info("WebSocket connection established", mdwlog.Fields{"remote": conn.RemoteAddr().String()})

	conn.SetReadLimit(h.ReadLimit())
	conn.SetReadDeadline(time.Now().Add(h.config.IdleTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(h.config.IdleTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", mdwlog.Fields{"error": err.Error()})
			} else {
				logger.Info("WebSocket connection closed", mdwlog.Fields{"runs": c.session.Runs()})
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(h.config.IdleTimeout))

		switch msg.Type {
		case "ping":
			h.sendResponse(conn, WSResponse{Type: "pong"})

		case "run":
			var payload WSRunPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(conn, "invalid_payload", "Invalid run payload")
				continue
			}
			h.handleRun(ctx, c, payload.Source)

		case "reset":
			c.session.Reset()
			h.sendResponse(conn, WSResponse{Type: "reset"})

		case "env":
			h.sendResponse(conn, WSResponse{
				Type:    "env",
				Payload: WSEnvPayload{SessionID: c.session.ID(), Bindings: c.session.Bindings()},
			})

		default:
			h.sendError(conn, "unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

// handleRun executes source in the connection session and reports the result
func (h *WebSocketHandler) handleRun(ctx context.Context, c *connection, source string) {
	c.output.Reset()

	result, err := c.session.Run(ctx, source)
	if result == nil {
		h.sendError(c.conn, string(mdwerror.GetCode(err)), err.Error())
		return
	}

	payload := WSResultPayload{
		SessionID:   c.session.ID(),
		Status:      string(result.Status),
		Output:      splitLines(c.output.String()),
		Diagnostics: make([]string, 0, len(result.Diagnostics)),
		Executed:    result.Executed,
		DurationMS:  float64(result.Duration.Microseconds()) / 1000,
	}
	for _, d := range result.Diagnostics {
		payload.Diagnostics = append(payload.Diagnostics, d.String())
	}

	if h.config.History != nil {
		err := h.config.History.Append(ctx, &store.Entry{
			SessionID: c.session.ID(),
			Source:    source,
			Output:    c.output.String(),
			Status:    store.Status(result.Status),
		})
		if err != nil {
			h.logger.Warn("failed to record history", mdwlog.Fields{"error": err.Error()})
		}
	}

	h.sendResponse(c.conn, WSResponse{Type: "result", Payload: payload})
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// sendResponse sends a response message via WebSocket
func (h *WebSocketHandler) sendResponse(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Warn("WebSocket send error", mdwlog.Fields{"error": err.Error()})
	}
}

// sendError sends an error response via WebSocket
func (h *WebSocketHandler) sendError(conn *websocket.Conn, code, message string) {
	h.sendResponse(conn, WSResponse{
		Type: "error",
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}
