package game

import (
	"math/rand"
	"sync"
	"testing"
)

// fakeSender records outbound messages for assertions.
type fakeSender struct {
	mu   sync.Mutex
	msgs []any
}

func (s *fakeSender) Send(msg any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *fakeSender) messages() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]any, len(s.msgs))
	copy(out, s.msgs)
	return out
}

func (s *fakeSender) countType(match func(any) bool) int {
	n := 0
	for _, m := range s.messages() {
		if match(m) {
			n++
		}
	}
	return n
}

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	room := newRoom("test", Deps{RNG: rand.New(rand.NewSource(1))})
	t.Cleanup(room.Shutdown)
	return room
}

// haltLoop stops the background run loop so a test can drive ticks,
// aging, and broadcasts by hand. The session status is left untouched.
func haltLoop(room *Room) {
	room.stopOnce.Do(func() { close(room.stop) })
}

func joinTwo(t *testing.T, room *Room) (*fakeSender, *fakeSender) {
	t.Helper()
	s1 := &fakeSender{}
	s2 := &fakeSender{}
	if _, err := room.addPlayer("p1", s1); err != nil {
		t.Fatalf("join p1: %v", err)
	}
	if _, err := room.addPlayer("p2", s2); err != nil {
		t.Fatalf("join p2: %v", err)
	}
	return s1, s2
}

func TestJoinAssignsSlotsInOrder(t *testing.T) {
	room := newTestRoom(t)
	resp1, err := room.addPlayer("p1", &fakeSender{})
	if err != nil {
		t.Fatalf("join p1: %v", err)
	}
	resp2, err := room.addPlayer("p2", &fakeSender{})
	if err != nil {
		t.Fatalf("join p2: %v", err)
	}
	if resp1.Slot != 1 || resp2.Slot != 2 {
		t.Fatalf("expected slots 1 and 2, got %d and %d", resp1.Slot, resp2.Slot)
	}
	if resp1.CanvasW != CanvasWidth || resp1.CanvasH != CanvasHeight || resp1.PlayerSize != PlayerSize {
		t.Fatalf("join response missing canvas geometry: %+v", resp1)
	}
	if len(resp1.Stations) != len(DefaultLayout().Stations()) {
		t.Fatalf("join response must carry the full layout")
	}
}

func TestThirdJoinRejected(t *testing.T) {
	room := newTestRoom(t)
	joinTwo(t, room)

	if _, err := room.addPlayer("p3", &fakeSender{}); err != ErrRoomFull {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if _, enrolled := room.players["p3"]; enrolled {
		t.Fatalf("rejected connection must not be enrolled")
	}
	if len(room.players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(room.players))
	}
}

func TestSecondJoinArmsStart(t *testing.T) {
	room := newTestRoom(t)
	if _, err := room.addPlayer("p1", &fakeSender{}); err != nil {
		t.Fatalf("join p1: %v", err)
	}
	if room.Status() != StatusWaiting {
		t.Fatalf("one player should keep the room Waiting")
	}
	if _, err := room.addPlayer("p2", &fakeSender{}); err != nil {
		t.Fatalf("join p2: %v", err)
	}
	if room.Status() != StatusStarting {
		t.Fatalf("two players should arm the start, got %s", room.Status())
	}
	room.mu.Lock()
	armed := room.startTimer != nil
	room.mu.Unlock()
	if !armed {
		t.Fatalf("expected a start timer")
	}
}

func TestStartSessionSpawnsFirstOrder(t *testing.T) {
	room := newTestRoom(t)
	s1, s2 := joinTwo(t, room)

	room.startSession()
	haltLoop(room)

	if room.Status() != StatusRunning {
		t.Fatalf("expected Running, got %s", room.Status())
	}
	room.mu.Lock()
	orders := room.orders.Count()
	room.mu.Unlock()
	if orders != 1 {
		t.Fatalf("expected exactly one order after start, got %d", orders)
	}
	isStart := func(m any) bool { _, ok := m.(GameStartedMessage); return ok }
	if s1.countType(isStart) != 1 || s2.countType(isStart) != 1 {
		t.Fatalf("both players should receive gameStarted exactly once")
	}
}

func TestStartSessionIgnoredUnlessStarting(t *testing.T) {
	room := newTestRoom(t)
	room.startSession()
	if room.Status() != StatusWaiting {
		t.Fatalf("start before two players must be a no-op")
	}
}

func TestLeaveNotifiesRemainingPlayer(t *testing.T) {
	room := newTestRoom(t)
	_, s2 := joinTwo(t, room)

	if empty := room.removePlayer("p1"); empty {
		t.Fatalf("room is not empty with one player left")
	}
	left := s2.countType(func(m any) bool {
		msg, ok := m.(PlayerLeftMessage)
		return ok && msg.Slot == 1 && msg.Total == 1
	})
	if left != 1 {
		t.Fatalf("expected one playerLeft notification, got %d", left)
	}
}

func TestLastLeaveEndsSession(t *testing.T) {
	room := newTestRoom(t)
	joinTwo(t, room)
	room.startSession()

	room.removePlayer("p1")
	if empty := room.removePlayer("p2"); !empty {
		t.Fatalf("expected empty=true on last departure")
	}
	if room.Status() != StatusEnded {
		t.Fatalf("expected Ended, got %s", room.Status())
	}
	select {
	case <-room.stop:
	default:
		t.Fatalf("expected the stop channel to be closed")
	}
}

func TestRemoveUnknownPlayerIsNoop(t *testing.T) {
	room := newTestRoom(t)
	joinTwo(t, room)
	if empty := room.removePlayer("ghost"); empty {
		t.Fatalf("removing an unknown player must not empty the room")
	}
	if room.Status() == StatusEnded {
		t.Fatalf("removing an unknown player must not end the session")
	}
}

func TestShutdownTwiceIsSafe(t *testing.T) {
	room := newTestRoom(t)
	room.Shutdown()
	room.Shutdown()
	if room.Status() != StatusEnded {
		t.Fatalf("expected Ended after shutdown")
	}
}

func TestJoinAfterEndRejected(t *testing.T) {
	room := newTestRoom(t)
	room.Shutdown()
	if _, err := room.addPlayer("late", &fakeSender{}); err != ErrRoomFull {
		t.Fatalf("expected join on ended room to be rejected, got %v", err)
	}
}

func TestUpdateIntentReplacesWholesale(t *testing.T) {
	room := newTestRoom(t)
	joinTwo(t, room)

	room.UpdateIntent("p1", Intent{Up: true, Action: true})
	room.UpdateIntent("p1", Intent{Left: true})

	room.mu.Lock()
	intent := room.players["p1"].intent
	room.mu.Unlock()
	if intent.Up || intent.Action || !intent.Left {
		t.Fatalf("intent must be replaced wholesale, got %+v", intent)
	}

	// Unknown players are ignored without error.
	room.UpdateIntent("ghost", Intent{Down: true})
}
