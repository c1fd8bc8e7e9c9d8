package game

// snapshotLocked assembles the full-state snapshot. Callers hold the lock.
func (r *Room) snapshotLocked() StateMessage {
	players := make(map[string]PlayerView, len(r.players))
	for id, p := range r.players {
		players[id] = PlayerView{
			ID:    p.ID,
			Slot:  p.Slot,
			X:     p.X,
			Y:     p.Y,
			Held:  p.Held,
			Color: p.Color,
		}
	}
	boards := make(map[string]BoardView, len(r.boards))
	for id, b := range r.boards {
		boards[id] = BoardView{Item: b.Item, Progress: b.Progress}
	}
	orders := make([]OrderView, 0, r.orders.Count())
	for _, o := range r.orders.Active() {
		orders = append(orders, OrderView{
			ID:       o.ID,
			Name:     o.Name,
			Items:    append([]IngredientKind(nil), o.Items...),
			Score:    o.Score,
			TimeLeft: o.TimeLeft,
		})
	}
	return StateMessage{
		Ver:      ProtocolVersion,
		Type:     "state",
		Players:  players,
		Boards:   boards,
		Plate:    PlateView{Items: r.plate.Items()},
		Orders:   orders,
		Score:    r.score,
		TimeLeft: r.timeLeft,
		Tick:     r.tick,
	}
}

// broadcastSnapshot pushes the current state to every occupant. Nothing is
// sent while the session is Waiting, Starting, or Ended. Push-only: slow
// receivers simply get the next snapshot at the next interval.
func (r *Room) broadcastSnapshot() {
	r.mu.Lock()
	if r.status != StatusRunning {
		r.mu.Unlock()
		return
	}
	msg := r.snapshotLocked()
	targets := r.sendersLocked()
	r.mu.Unlock()

	entities := len(msg.Players) + len(msg.Boards) + len(msg.Orders) + len(msg.Plate.Items)
	r.deps.Metrics.Add("room_broadcasts_total", 1)
	r.deps.Metrics.Add("room_broadcast_entities_total", uint64(entities))

	r.deliver(delivery{senders: targets, msg: msg})
}

// Diagnostics is the per-room slice of the /diagnostics endpoint.
type Diagnostics struct {
	ID       string `json:"id"`
	Status   Status `json:"status"`
	Players  int    `json:"players"`
	Orders   int    `json:"orders"`
	Score    int    `json:"score"`
	TimeLeft int    `json:"timeLeft"`
	Tick     uint64 `json:"t"`
}

// DiagnosticsSnapshot exposes coarse room state for operators.
func (r *Room) DiagnosticsSnapshot() Diagnostics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Diagnostics{
		ID:       r.ID,
		Status:   r.status,
		Players:  len(r.players),
		Orders:   r.orders.Count(),
		Score:    r.score,
		TimeLeft: r.timeLeft,
		Tick:     r.tick,
	}
}
