package game

import "time"

const (
	// CanvasWidth and CanvasHeight bound all player positions.
	CanvasWidth  = 900.0
	CanvasHeight = 600.0

	// PlayerSize is the square extent of a player; positions are clamped so
	// the square stays fully inside the canvas.
	PlayerSize = 36.0
	playerHalf = PlayerSize / 2

	// moveSpeed is applied per movement tick along each held axis
	// independently. Diagonal movement is the raw vector sum, not
	// normalized.
	moveSpeed = 3.0

	tickRate          = 60 // movement/interaction ticks per second
	broadcastInterval = 50 * time.Millisecond

	// chopPerTick accumulates while the action key is held over a board
	// with a raw item; 100 completes the cut.
	chopPerTick  = 1.0
	chopComplete = 100.0

	sessionSeconds = 180
	startGrace     = 2 * time.Second

	maxPlayers = 2

	orderCap           = 4
	orderExpirePenalty = 50
	orderSpawnInterval = 20 * time.Second
)

// Spawn positions by player slot.
var spawnPoints = map[int][2]float64{
	1: {160, 320},
	2: {620, 320},
}

// Display colors by player slot, forwarded to clients untouched.
var slotColors = map[int]string{
	1: "#3498db",
	2: "#e91e63",
}
