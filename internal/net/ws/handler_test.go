package ws

import (
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"kitchen-rush/server/internal/game"
	"kitchen-rush/server/internal/net/proto"
)

func newTestServer(t *testing.T) (*httptest.Server, *game.Registry) {
	t.Helper()
	registry := game.NewRegistry(game.Deps{})
	handler := NewHandler(registry, HandlerConfig{})
	srv := httptest.NewServer(nethttp.HandlerFunc(handler.Handle))
	t.Cleanup(func() {
		srv.Close()
		registry.Shutdown()
	})
	return srv, registry
}

func dial(t *testing.T, srv *httptest.Server, roomID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?room=" + roomID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func readTyped(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	var msg map[string]any
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestJoinReceivesInit(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "alpha")

	var init game.JoinResponse
	if err := conn.ReadJSON(&init); err != nil {
		t.Fatalf("read init: %v", err)
	}
	if init.Type != "init" || init.Ver != game.ProtocolVersion {
		t.Fatalf("unexpected init envelope %+v", init)
	}
	if init.Slot != 1 {
		t.Fatalf("first join should get slot 1, got %d", init.Slot)
	}
	if init.PlayerID == "" {
		t.Fatalf("init must assign a player id")
	}
	if len(init.Stations) != 7 {
		t.Fatalf("expected 7 stations, got %d", len(init.Stations))
	}
	board, ok := init.Stations["board1"]
	if !ok || board.ID != "board1" {
		t.Fatalf("stations must be keyed by id so snapshots can reference them: %+v", init.Stations)
	}
	if init.CanvasW != game.CanvasWidth || init.CanvasH != game.CanvasHeight {
		t.Fatalf("canvas constants missing: %+v", init)
	}
}

func TestSecondJoinNotifiesFirst(t *testing.T) {
	srv, _ := newTestServer(t)
	first := dial(t, srv, "beta")
	readTyped(t, first) // init

	second := dial(t, srv, "beta")
	var init game.JoinResponse
	if err := second.ReadJSON(&init); err != nil {
		t.Fatalf("read second init: %v", err)
	}
	if init.Slot != 2 {
		t.Fatalf("second join should get slot 2, got %d", init.Slot)
	}

	joined := readTyped(t, first)
	if joined["type"] != "playerJoined" {
		t.Fatalf("first player should hear playerJoined, got %v", joined)
	}
	if joined["total"] != float64(2) {
		t.Fatalf("expected total 2, got %v", joined["total"])
	}
}

func TestThirdJoinRejectedWithRoomFull(t *testing.T) {
	srv, registry := newTestServer(t)
	first := dial(t, srv, "gamma")
	readTyped(t, first)
	second := dial(t, srv, "gamma")
	readTyped(t, second)

	third := dial(t, srv, "gamma")
	msg := readTyped(t, third)
	if msg["type"] != "roomFull" {
		t.Fatalf("expected roomFull, got %v", msg)
	}
	if _, _, err := third.ReadMessage(); err == nil {
		t.Fatalf("rejected connection should be closed after roomFull")
	}

	room, ok := registry.Room("gamma")
	if !ok {
		t.Fatalf("room should still exist")
	}
	if got := room.DiagnosticsSnapshot().Players; got != 2 {
		t.Fatalf("rejected join must not enroll, got %d players", got)
	}
}

func TestHeartbeatAcked(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "delta")
	readTyped(t, conn) // init

	sentAt := time.Now().Add(-5 * time.Millisecond).UnixMilli()
	if err := conn.WriteJSON(proto.ClientMessage{Type: proto.TypeHeartbeat, SentAt: sentAt}); err != nil {
		t.Fatalf("write heartbeat: %v", err)
	}

	var ack proto.HeartbeatAck
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatalf("read ack: %v", err)
	}
	if ack.Type != proto.TypeHeartbeat || ack.ClientTime != sentAt {
		t.Fatalf("unexpected ack %+v", ack)
	}
	if ack.ServerTime == 0 {
		t.Fatalf("ack must carry server time")
	}
}

func TestMalformedMessageDoesNotKillConnection(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "epsilon")
	readTyped(t, conn) // init

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if err := conn.WriteJSON(proto.ClientMessage{Type: proto.TypeHeartbeat, SentAt: time.Now().UnixMilli()}); err != nil {
		t.Fatalf("write heartbeat: %v", err)
	}

	var ack proto.HeartbeatAck
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatalf("connection should survive malformed input: %v", err)
	}
}

func TestDisconnectLeavesRoom(t *testing.T) {
	srv, registry := newTestServer(t)
	conn := dial(t, srv, "zeta")
	readTyped(t, conn)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := registry.Room("zeta"); !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("emptied room should be destroyed after disconnect")
}
