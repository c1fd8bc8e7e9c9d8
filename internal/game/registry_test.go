package game

import (
	"math/rand"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry(Deps{RNG: rand.New(rand.NewSource(1))})
	t.Cleanup(reg.Shutdown)
	return reg
}

func TestRegistryCreatesRoomOnFirstJoin(t *testing.T) {
	reg := newTestRegistry(t)

	room, resp, err := reg.Join("", "p1", &fakeSender{})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if room.ID != DefaultRoomID {
		t.Fatalf("expected default room, got %s", room.ID)
	}
	if resp.Slot != 1 {
		t.Fatalf("expected slot 1, got %d", resp.Slot)
	}
	if _, ok := reg.Room(DefaultRoomID); !ok {
		t.Fatalf("room must be registered")
	}
}

func TestRegistryRejectsThirdJoin(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Join("kitchen1", "p1", &fakeSender{})
	reg.Join("kitchen1", "p2", &fakeSender{})

	if _, _, err := reg.Join("kitchen1", "p3", &fakeSender{}); err != ErrRoomFull {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
}

func TestRegistryKeysRoomsByID(t *testing.T) {
	reg := newTestRegistry(t)
	a, _, _ := reg.Join("kitchen1", "p1", &fakeSender{})
	b, _, _ := reg.Join("kitchen2", "p2", &fakeSender{})
	if a == b {
		t.Fatalf("distinct room ids must get distinct rooms")
	}
	// Capacity is per-room.
	if _, _, err := reg.Join("kitchen2", "p3", &fakeSender{}); err != nil {
		t.Fatalf("second join in another room: %v", err)
	}
}

func TestRegistryDestroysEmptiedRoom(t *testing.T) {
	reg := newTestRegistry(t)
	room, _, _ := reg.Join("kitchen1", "p1", &fakeSender{})
	reg.Join("kitchen1", "p2", &fakeSender{})

	reg.Leave("kitchen1", "p1")
	if _, ok := reg.Room("kitchen1"); !ok {
		t.Fatalf("room with one occupant must survive")
	}

	reg.Leave("kitchen1", "p2")
	if _, ok := reg.Room("kitchen1"); ok {
		t.Fatalf("emptied room must be destroyed")
	}
	if room.Status() != StatusEnded {
		t.Fatalf("destroyed room must be Ended")
	}
	select {
	case <-room.stop:
	default:
		t.Fatalf("destroyed room timers must be cancelled")
	}
}

func TestRegistryLeaveUnknownIsNoop(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Leave("missing", "p1")
	reg.Join("kitchen1", "p1", &fakeSender{})
	reg.Leave("kitchen1", "ghost")
	if _, ok := reg.Room("kitchen1"); !ok {
		t.Fatalf("a no-op leave must not destroy the room")
	}
}

func TestRegistryDiagnosticsOrdered(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Join("beta", "p1", &fakeSender{})
	reg.Join("alpha", "p2", &fakeSender{})

	diags := reg.DiagnosticsSnapshot()
	if len(diags) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(diags))
	}
	if diags[0].ID != "alpha" || diags[1].ID != "beta" {
		t.Fatalf("diagnostics must be ordered by id: %+v", diags)
	}
}
