package ws

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"kitchen-rush/server/internal/game"
	"kitchen-rush/server/internal/net/proto"
	"kitchen-rush/server/internal/telemetry"
)

// HandlerConfig carries optional dependencies for the websocket surface.
type HandlerConfig struct {
	Logger  telemetry.Logger
	Metrics telemetry.Metrics
}

// Handler upgrades connections and bridges them into the room registry.
type Handler struct {
	registry *game.Registry
	logger   telemetry.Logger
	metrics  telemetry.Metrics
	upgrader websocket.Upgrader
}

// NewHandler wires the websocket endpoint to the registry.
func NewHandler(registry *game.Registry, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(nil)
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	return &Handler{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
	}
}

// Handle serves one connection for its whole lifetime: join, input loop,
// leave. Rejected joins receive an explicit roomFull message before the
// close frame.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = game.DefaultRoomID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed: %v", err)
		return
	}

	connID := uuid.NewString()
	session := newSession(conn, h.metrics)

	room, joinResp, err := h.registry.Join(roomID, connID, session)
	if err != nil {
		if errors.Is(err, game.ErrRoomFull) {
			session.Send(game.RoomFullMessage{Ver: game.ProtocolVersion, Type: "roomFull"})
		}
		session.Close(websocket.ClosePolicyViolation, "room full")
		return
	}

	if err := session.Send(joinResp); err != nil {
		h.registry.Leave(roomID, connID)
		conn.Close()
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.registry.Leave(roomID, connID)
			conn.Close()
			return
		}

		var msg proto.ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Printf("discarding malformed message from %s: %v", connID, err)
			continue
		}

		switch msg.Type {
		case proto.TypeKeys:
			room.UpdateIntent(connID, game.Intent{
				Up:     msg.Up,
				Down:   msg.Down,
				Left:   msg.Left,
				Right:  msg.Right,
				Action: msg.Action,
			})
		case proto.TypeInteract:
			room.Interact(connID)
		case proto.TypeHeartbeat:
			now := time.Now()
			ack := proto.HeartbeatAck{
				Ver:        game.ProtocolVersion,
				Type:       proto.TypeHeartbeat,
				ServerTime: now.UnixMilli(),
				ClientTime: msg.SentAt,
			}
			if msg.SentAt > 0 {
				if rtt := now.UnixMilli() - msg.SentAt; rtt > 0 {
					ack.RTTMillis = rtt
				}
			}
			if err := session.Send(ack); err != nil {
				h.registry.Leave(roomID, connID)
				conn.Close()
				return
			}
		default:
			h.logger.Printf("unknown message type %q from %s", msg.Type, connID)
		}
	}
}
