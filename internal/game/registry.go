package game

import (
	"sort"
	"sync"
)

// DefaultRoomID is used when a client does not name a room.
const DefaultRoomID = "kitchen1"

// Registry owns room creation and destruction. No timer outlives its room:
// destroying a room cancels every periodic activity exactly once.
type Registry struct {
	deps Deps

	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry sharing deps across rooms.
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:  deps.withDefaults(),
		rooms: make(map[string]*Room),
	}
}

// Join enrolls a connection in the named room, creating the room on first
// use. A full room returns ErrRoomFull and the connection is not enrolled.
func (reg *Registry) Join(roomID, connID string, sender Sender) (*Room, JoinResponse, error) {
	if roomID == "" {
		roomID = DefaultRoomID
	}
	reg.mu.Lock()
	room, ok := reg.rooms[roomID]
	if !ok {
		room = newRoom(roomID, reg.deps)
		reg.rooms[roomID] = room
	}
	reg.mu.Unlock()

	resp, err := room.addPlayer(connID, sender)
	if err != nil {
		return nil, JoinResponse{}, err
	}
	return room, resp, nil
}

// Leave removes a connection from its room. An emptied room is destroyed
// and all of its timers stopped.
func (reg *Registry) Leave(roomID, connID string) {
	if roomID == "" {
		roomID = DefaultRoomID
	}
	reg.mu.Lock()
	room, ok := reg.rooms[roomID]
	reg.mu.Unlock()
	if !ok {
		return
	}

	if room.removePlayer(connID) {
		reg.mu.Lock()
		if reg.rooms[roomID] == room {
			delete(reg.rooms, roomID)
		}
		reg.mu.Unlock()
		room.Shutdown()
	}
}

// Room looks up a live room by identifier.
func (reg *Registry) Room(roomID string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[roomID]
	return room, ok
}

// DiagnosticsSnapshot lists every live room, ordered by identifier.
func (reg *Registry) DiagnosticsSnapshot() []Diagnostics {
	reg.mu.Lock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.Unlock()

	out := make([]Diagnostics, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, room.DiagnosticsSnapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Shutdown force-ends every room, for process teardown.
func (reg *Registry) Shutdown() {
	reg.mu.Lock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for id, room := range reg.rooms {
		rooms = append(rooms, room)
		delete(reg.rooms, id)
	}
	reg.mu.Unlock()

	for _, room := range rooms {
		room.Shutdown()
	}
}
