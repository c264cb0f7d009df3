package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/tickerscan/internal/engine"
	"github.com/wonny/tickerscan/pkg/logger"
)

const (
	streamWriteWait  = 10 * time.Second
	streamMaxMessage = 1 << 20
)

// StreamHandler serves scans over a websocket: each text message from the
// client is scanned and answered with one JSON result, so interactive
// clients avoid per-request HTTP overhead.
type StreamHandler struct {
	engine   *engine.Engine
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewStreamHandler creates a new websocket scan handler
func NewStreamHandler(eng *engine.Engine, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		engine: eng,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		logger: log,
	}
}

// StreamResult is one scan answer on the websocket.
type StreamResult struct {
	ScanResponse
	Error string `json:"error,omitempty"`
}

// Serve upgrades the connection and scans incoming text messages
// GET /ws/scan
func (h *StreamHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(streamMaxMessage)

	for {
		msgType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			h.logger.WithError(err).Debug("Websocket read failed")
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var out StreamResult
		result, err := h.engine.Scan(string(message))
		if err != nil {
			out.Error = err.Error()
		} else {
			out.Portfolios = result.Portfolios
			out.Candidates = result.Candidates
			out.Metrics = result.Metrics
		}

		conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(out); err != nil {
			h.logger.WithError(err).Debug("Websocket write failed")
			return
		}
	}
}
