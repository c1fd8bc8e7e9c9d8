package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"kitchen-rush/server/internal/telemetry"
)

const writeWait = 10 * time.Second

// Session adapts one websocket connection to the game.Sender interface.
// Writes are serialized through a mutex and bounded by a deadline; a slow
// peer fails its own writes without stalling the room.
type Session struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	metrics telemetry.Metrics
}

func newSession(conn *websocket.Conn, metrics telemetry.Metrics) *Session {
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	return &Session{conn: conn, metrics: metrics}
}

// Send marshals msg and writes it with a deadline.
func (s *Session) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	s.metrics.Add("ws_bytes_sent", uint64(len(data)))
	s.metrics.Add("ws_messages_sent", 1)
	return nil
}

// Close sends a close frame, then drops the connection.
func (s *Session) Close(code int, reason string) {
	s.mu.Lock()
	message := websocket.FormatCloseMessage(code, reason)
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	s.conn.WriteMessage(websocket.CloseMessage, message)
	s.mu.Unlock()
	s.conn.Close()
}
