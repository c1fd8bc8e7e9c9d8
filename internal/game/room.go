package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"kitchen-rush/server/internal/telemetry"
	"kitchen-rush/server/logging"
	"kitchen-rush/server/logging/kitchen"
)

// ErrRoomFull rejects a third join. The connection is told explicitly and
// never enrolled; this is the only error a join can produce.
var ErrRoomFull = errors.New("room full")

// Status is the session lifecycle state. Ended is terminal.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusEnded    Status = "ended"
)

// Deps carries shared infrastructure dependencies injected into rooms.
type Deps struct {
	Logger    telemetry.Logger
	Publisher logging.Publisher
	Metrics   telemetry.Metrics
	RNG       *rand.Rand
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = telemetry.LoggerFunc(nil)
	}
	if d.Publisher == nil {
		d.Publisher = logging.NopPublisher()
	}
	if d.Metrics == nil {
		d.Metrics = telemetry.NopMetrics()
	}
	if d.RNG == nil {
		d.RNG = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return d
}

// Room owns the whole shared kitchen for one session: players, boards,
// plate, order queue, score, and countdown. All mutation is serialized
// through mu; the single run loop drives every periodic activity.
type Room struct {
	ID string

	mu      sync.Mutex
	status  Status
	layout  Layout
	players map[string]*playerState
	senders map[string]Sender
	boards  map[string]*Board
	plate   Plate
	orders  *OrderManager
	score   int
	// timeLeft is the session countdown in seconds.
	timeLeft int
	tick     uint64

	stop       chan struct{}
	stopOnce   sync.Once
	startTimer *time.Timer

	deps Deps
}

// delivery pairs an outbound message with its recipients so sends happen
// outside the room lock.
type delivery struct {
	senders []Sender
	msg     any
}

func newRoom(id string, deps Deps) *Room {
	deps = deps.withDefaults()
	layout := DefaultLayout()
	boards := make(map[string]*Board)
	for _, boardID := range layout.Boards() {
		boards[boardID] = &Board{}
	}
	return &Room{
		ID:       id,
		status:   StatusWaiting,
		layout:   layout,
		players:  make(map[string]*playerState),
		senders:  make(map[string]Sender),
		boards:   boards,
		orders:   NewOrderManager(DefaultCatalog(), deps.RNG),
		timeLeft: sessionSeconds,
		stop:     make(chan struct{}),
		deps:     deps,
	}
}

// Layout returns the immutable station layout.
func (r *Room) Layout() Layout {
	return r.layout
}

// Status returns the current session state.
func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// addPlayer enrolls a connection, assigning the lowest free slot in join
// order. The second join arms the start timer.
func (r *Room) addPlayer(connID string, sender Sender) (JoinResponse, error) {
	r.mu.Lock()
	if len(r.players) >= maxPlayers || r.status == StatusEnded {
		r.mu.Unlock()
		return JoinResponse{}, ErrRoomFull
	}

	slot := 1
	for _, p := range r.players {
		if p.Slot == 1 {
			slot = 2
		}
	}
	player := newPlayerState(connID, slot)
	r.players[connID] = player
	if sender != nil {
		r.senders[connID] = sender
	}
	total := len(r.players)

	if total == maxPlayers && r.status == StatusWaiting {
		r.status = StatusStarting
		r.startTimer = time.AfterFunc(startGrace, r.startSession)
	}

	// Announce to the existing occupants only; the joiner's first message
	// must be its init response.
	others := make([]Sender, 0, len(r.senders))
	for id, s := range r.senders {
		if id != connID {
			others = append(others, s)
		}
	}
	joined := delivery{
		senders: others,
		msg: PlayerJoinedMessage{
			Ver:   ProtocolVersion,
			Type:  "playerJoined",
			Slot:  slot,
			Total: total,
		},
	}
	tick := r.tick
	r.mu.Unlock()

	kitchen.PlayerJoined(context.Background(), r.deps.Publisher, tick,
		logging.EntityRef{ID: connID, Kind: logging.EntityKindPlayer},
		kitchen.PlayerJoinedPayload{Room: r.ID, Slot: slot, SpawnX: player.X, SpawnY: player.Y})
	r.deliver(joined)

	return JoinResponse{
		Ver:        ProtocolVersion,
		Type:       "init",
		PlayerID:   connID,
		Slot:       slot,
		Stations:   r.layout.StationMap(),
		CanvasW:    CanvasWidth,
		CanvasH:    CanvasHeight,
		PlayerSize: PlayerSize,
	}, nil
}

// removePlayer drops a connection. The last departure ends the session and
// reports empty=true so the registry can destroy the room.
func (r *Room) removePlayer(connID string) (empty bool) {
	r.mu.Lock()
	player, ok := r.players[connID]
	if !ok {
		// A disconnect can race a queued action; treat as a no-op.
		r.mu.Unlock()
		return false
	}
	delete(r.players, connID)
	delete(r.senders, connID)

	var out []delivery
	tick := r.tick
	if len(r.players) == 0 {
		r.endLocked()
		empty = true
	} else {
		out = append(out, delivery{
			senders: r.sendersLocked(),
			msg: PlayerLeftMessage{
				Ver:   ProtocolVersion,
				Type:  "playerLeft",
				Slot:  player.Slot,
				Total: len(r.players),
			},
		})
	}
	r.mu.Unlock()

	kitchen.PlayerLeft(context.Background(), r.deps.Publisher, tick,
		logging.EntityRef{ID: connID, Kind: logging.EntityKindPlayer},
		kitchen.PlayerLeftPayload{Room: r.ID, Slot: player.Slot})
	for _, d := range out {
		r.deliver(d)
	}
	return empty
}

// UpdateIntent replaces a player's movement intent wholesale. Unknown
// players are ignored without error.
func (r *Room) UpdateIntent(connID string, intent Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if player, ok := r.players[connID]; ok {
		player.intent = intent
	}
}

// startSession fires after the grace delay and moves Starting→Running,
// spawning the first order and launching the room's run loop.
func (r *Room) startSession() {
	r.mu.Lock()
	if r.status != StatusStarting {
		r.mu.Unlock()
		return
	}
	r.status = StatusRunning
	first := r.orders.Spawn()
	started := delivery{
		senders: r.sendersLocked(),
		msg:     GameStartedMessage{Ver: ProtocolVersion, Type: "gameStarted"},
	}
	tick := r.tick
	r.mu.Unlock()

	kitchen.SessionStarted(context.Background(), r.deps.Publisher, tick,
		logging.EntityRef{ID: r.ID, Kind: logging.EntityKindRoom})
	if first != nil {
		r.publishOrderSpawned(tick, first)
	}
	r.deliver(started)

	go r.run()
}

// run drives every periodic activity for a Running room from one
// goroutine: movement/interaction ticks, snapshot broadcasts, the 1 Hz
// countdown/aging pass, and the order top-up interval.
func (r *Room) run() {
	moveTicker := time.NewTicker(time.Second / tickRate)
	broadcastTicker := time.NewTicker(broadcastInterval)
	secondTicker := time.NewTicker(time.Second)
	spawnTicker := time.NewTicker(orderSpawnInterval)
	defer moveTicker.Stop()
	defer broadcastTicker.Stop()
	defer secondTicker.Stop()
	defer spawnTicker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-moveTicker.C:
			started := time.Now()
			r.advanceTick()
			r.deps.Metrics.Store("room_tick_duration_micros", uint64(time.Since(started).Microseconds()))
		case <-broadcastTicker.C:
			r.broadcastSnapshot()
		case <-secondTicker.C:
			r.ageSecond()
		case <-spawnTicker.C:
			r.topUpOrders()
		}
	}
}

// ageSecond runs the 1 Hz countdown and order-aging pass.
func (r *Room) ageSecond() {
	r.mu.Lock()
	if r.status != StatusRunning {
		r.mu.Unlock()
		return
	}
	r.timeLeft--

	expired := r.orders.Age()
	for range expired {
		r.score -= orderExpirePenalty
		if r.score < 0 {
			r.score = 0
		}
	}
	var spawned []*Order
	for range expired {
		if o := r.orders.Spawn(); o != nil {
			spawned = append(spawned, o)
		}
	}

	var out []delivery
	tick := r.tick
	score := r.score
	ended := r.timeLeft <= 0
	if ended {
		r.endLocked()
		out = append(out, delivery{
			senders: r.sendersLocked(),
			msg:     GameOverMessage{Ver: ProtocolVersion, Type: "gameOver", Score: score},
		})
	}
	r.mu.Unlock()

	for _, o := range expired {
		kitchen.OrderExpired(context.Background(), r.deps.Publisher, tick,
			logging.EntityRef{ID: o.ID, Kind: logging.EntityKindOrder},
			kitchen.OrderExpiredPayload{Room: r.ID, Name: o.Name, Penalty: orderExpirePenalty, Score: score})
	}
	for _, o := range spawned {
		r.publishOrderSpawned(tick, o)
	}
	if ended {
		kitchen.SessionEnded(context.Background(), r.deps.Publisher, tick,
			logging.EntityRef{ID: r.ID, Kind: logging.EntityKindRoom},
			kitchen.SessionEndedPayload{FinalScore: score})
	}
	for _, d := range out {
		r.deliver(d)
	}
}

// topUpOrders runs on the slow spawn interval to keep customers coming
// even when nothing expires or gets served.
func (r *Room) topUpOrders() {
	r.mu.Lock()
	if r.status != StatusRunning {
		r.mu.Unlock()
		return
	}
	o := r.orders.Spawn()
	tick := r.tick
	r.mu.Unlock()

	if o != nil {
		r.publishOrderSpawned(tick, o)
	}
}

// endLocked transitions to Ended and cancels every periodic activity.
// Callers hold the room lock. Safe to invoke more than once.
func (r *Room) endLocked() {
	r.status = StatusEnded
	if r.startTimer != nil {
		r.startTimer.Stop()
		r.startTimer = nil
	}
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

// Shutdown force-ends the session, for registry teardown. Double
// cancellation is a safe no-op.
func (r *Room) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endLocked()
}

func (r *Room) publishOrderSpawned(tick uint64, o *Order) {
	kitchen.OrderSpawned(context.Background(), r.deps.Publisher, tick,
		logging.EntityRef{ID: o.ID, Kind: logging.EntityKindOrder},
		kitchen.OrderSpawnedPayload{Room: r.ID, Name: o.Name, TimeBudget: o.TimeLeft})
}

// sendersLocked copies the current subscriber set. Callers hold the lock.
func (r *Room) sendersLocked() []Sender {
	out := make([]Sender, 0, len(r.senders))
	for _, s := range r.senders {
		out = append(out, s)
	}
	return out
}

// deliver pushes one message to its recipients outside the room lock.
// Write failures are logged and left for the transport's read loop to
// surface as a disconnect.
func (r *Room) deliver(d delivery) {
	for _, s := range d.senders {
		if err := s.Send(d.msg); err != nil {
			r.deps.Logger.Printf("room %s: failed to send update: %v", r.ID, err)
		}
	}
}
