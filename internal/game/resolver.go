package game

import (
	"context"

	"kitchen-rush/server/logging"
	"kitchen-rush/server/logging/kitchen"
)

// serveResult records what happened at the service window so events are
// published after the room lock is released, like every other event path.
type serveResult struct {
	order       *Order
	replacement *Order
	score       int
	rejected    bool
}

// Interact resolves one discrete interact request against the station
// under the player's current position. It is invoked per explicit request,
// never per tick. Input outside a Running session, for an unknown player,
// or away from any station is a silent no-op.
func (r *Room) Interact(connID string) {
	r.mu.Lock()
	if r.status != StatusRunning {
		r.mu.Unlock()
		return
	}
	p, ok := r.players[connID]
	if !ok {
		r.mu.Unlock()
		return
	}
	station, ok := r.layout.StationAt(p.X, p.Y)
	if !ok {
		r.mu.Unlock()
		return
	}

	var out []delivery
	var served serveResult
	switch station.Type {
	case StationCrate:
		if p.Held == nil && station.Supplies != nil {
			item := *station.Supplies
			p.Held = &item
		}

	case StationBoard:
		board := r.boards[station.ID]
		if board == nil {
			break
		}
		switch {
		case p.Held != nil && board.Item == nil:
			board.Item = p.Held
			board.Progress = 0
			p.Held = nil
		case p.Held == nil && board.Item != nil:
			p.Held = board.Item
			board.Item = nil
			board.Progress = 0
		}
		// Hand and board both occupied cannot swap; silent no-op.

	case StationPlate:
		if p.Held != nil {
			if r.plate.Push(*p.Held) {
				p.Held = nil
			}
		} else if item, ok := r.plate.Pop(); ok {
			p.Held = &item
		}

	case StationService:
		out, served = r.serveLocked(p)

	case StationTrash:
		p.Held = nil
		r.plate.Clear()
	}
	tick := r.tick
	r.mu.Unlock()

	actor := logging.EntityRef{ID: connID, Kind: logging.EntityKindPlayer}
	if served.order != nil {
		kitchen.DishServed(context.Background(), r.deps.Publisher, tick, actor,
			kitchen.DishServedPayload{Room: r.ID, Order: served.order.Name, Value: served.order.Score, Score: served.score})
		if served.replacement != nil {
			r.publishOrderSpawned(tick, served.replacement)
		}
	}
	if served.rejected {
		kitchen.DishRejected(context.Background(), r.deps.Publisher, tick, actor,
			kitchen.DishRejectedPayload{Room: r.ID})
	}

	for _, d := range out {
		r.deliver(d)
	}
}

// serveLocked attempts to fulfill a pending order from the player's hand
// (single cut item) or, with an empty hand, from the whole plate. Matching
// is multiset equality over ingredient kinds; ties go to the earliest
// spawned order. Callers hold the room lock.
func (r *Room) serveLocked(p *playerState) ([]delivery, serveResult) {
	switch {
	case p.Held != nil:
		if !p.Held.IsCut() {
			return nil, serveResult{}
		}
		order, ok := r.orders.Match([]IngredientKind{p.Held.Kind})
		if !ok {
			return r.wrongDishLocked(p)
		}
		p.Held = nil
		return r.fulfillLocked(order)

	case r.plate.Len() > 0:
		order, ok := r.orders.Match(r.plate.Kinds())
		if !ok {
			return r.wrongDishLocked(p)
		}
		r.plate.Clear()
		return r.fulfillLocked(order)
	}
	return nil, serveResult{}
}

// fulfillLocked removes the matched order by identity, applies its score,
// spawns a replacement, and announces the serve to the whole room.
func (r *Room) fulfillLocked(order *Order) ([]delivery, serveResult) {
	r.orders.Remove(order.ID)
	r.score += order.Score
	replacement := r.orders.Spawn()

	out := []delivery{{
		senders: r.sendersLocked(),
		msg:     ScoredMessage{Ver: ProtocolVersion, Type: "scored", Score: r.score, Order: order.Name},
	}}
	return out, serveResult{order: order, replacement: replacement, score: r.score}
}

// wrongDishLocked signals the acting player only; nothing changes and no
// penalty applies.
func (r *Room) wrongDishLocked(p *playerState) ([]delivery, serveResult) {
	res := serveResult{rejected: true}
	sender, ok := r.senders[p.ID]
	if !ok {
		return nil, res
	}
	return []delivery{{
		senders: []Sender{sender},
		msg:     WrongDishMessage{Ver: ProtocolVersion, Type: "wrongDish"},
	}}, res
}
