package game

// ProtocolVersion tags every outbound message. Bump only with a
// coordinated client change; the shapes below are the wire contract.
const ProtocolVersion = 1

// Sender delivers one outbound message to a single connection. The
// transport layer implements it; the core never blocks on delivery beyond
// the transport's own write deadline.
type Sender interface {
	Send(msg any) error
}

// JoinResponse answers a successful join with everything a client needs to
// render the kitchen before the first snapshot.
type JoinResponse struct {
	Ver      int    `json:"ver"`
	Type     string `json:"type"`
	PlayerID string `json:"id"`
	Slot     int    `json:"playerNum"`
	// Stations is keyed by station id; board entries in state snapshots
	// use the same keys.
	Stations   map[string]Station `json:"stations"`
	CanvasW    float64            `json:"CANVAS_W"`
	CanvasH    float64            `json:"CANVAS_H"`
	PlayerSize float64            `json:"PLAYER_SIZE"`
}

// RoomFullMessage rejects a third connection; the sender is not enrolled.
type RoomFullMessage struct {
	Ver  int    `json:"ver"`
	Type string `json:"type"`
}

// PlayerJoinedMessage announces a new occupant to the whole room.
type PlayerJoinedMessage struct {
	Ver   int    `json:"ver"`
	Type  string `json:"type"`
	Slot  int    `json:"num"`
	Total int    `json:"total"`
}

// PlayerLeftMessage announces a departure to the remaining occupants.
type PlayerLeftMessage struct {
	Ver   int    `json:"ver"`
	Type  string `json:"type"`
	Slot  int    `json:"num"`
	Total int    `json:"total"`
}

// GameStartedMessage marks the Starting→Running transition.
type GameStartedMessage struct {
	Ver  int    `json:"ver"`
	Type string `json:"type"`
}

// PlayerView is the per-player slice of a state snapshot.
type PlayerView struct {
	ID    string  `json:"id"`
	Slot  int     `json:"num"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Held  *Item   `json:"held"`
	Color string  `json:"color"`
}

// BoardView is the per-board slice of a state snapshot.
type BoardView struct {
	Item     *Item   `json:"item"`
	Progress float64 `json:"progress"`
}

// PlateView carries the staged plate contents in push order.
type PlateView struct {
	Items []Item `json:"items"`
}

// OrderView is the per-order slice of a state snapshot.
type OrderView struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Items    []IngredientKind `json:"items"`
	Score    int              `json:"score"`
	TimeLeft int              `json:"timeLeft"`
}

// StateMessage is the periodic full-state snapshot broadcast while a
// session is Running.
type StateMessage struct {
	Ver      int                   `json:"ver"`
	Type     string                `json:"type"`
	Players  map[string]PlayerView `json:"players"`
	Boards   map[string]BoardView  `json:"boards"`
	Plate    PlateView             `json:"plate"`
	Orders   []OrderView           `json:"orders"`
	Score    int                   `json:"score"`
	TimeLeft int                   `json:"timeLeft"`
	Tick     uint64                `json:"t"`
}

// ScoredMessage announces a successful serve to the whole room.
type ScoredMessage struct {
	Ver   int    `json:"ver"`
	Type  string `json:"type"`
	Score int    `json:"score"`
	Order string `json:"order"`
}

// WrongDishMessage tells the acting player their offering matched no
// pending order. No state changes and no penalty accompany it.
type WrongDishMessage struct {
	Ver  int    `json:"ver"`
	Type string `json:"type"`
}

// GameOverMessage carries the final score when the countdown expires.
type GameOverMessage struct {
	Ver   int    `json:"ver"`
	Type  string `json:"type"`
	Score int    `json:"score"`
}
