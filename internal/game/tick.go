package game

// advanceTick integrates one fixed movement step for every player and
// accumulates chopping progress. It runs only while the session is
// Running and is idempotent for players without live intent.
func (r *Room) advanceTick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusRunning {
		return
	}
	r.tick++

	for _, p := range r.players {
		if p.intent.Left {
			p.X -= moveSpeed
		}
		if p.intent.Right {
			p.X += moveSpeed
		}
		if p.intent.Up {
			p.Y -= moveSpeed
		}
		if p.intent.Down {
			p.Y += moveSpeed
		}
		p.X = clamp(p.X, playerHalf, CanvasWidth-playerHalf)
		p.Y = clamp(p.Y, playerHalf, CanvasHeight-playerHalf)

		if p.intent.Action {
			r.chopLocked(p)
		}
	}
}

// chopLocked advances the board under the player, if it holds a raw item.
// Progress holds at the cap until the item is removed.
func (r *Room) chopLocked(p *playerState) {
	station, ok := r.layout.StationAt(p.X, p.Y)
	if !ok || station.Type != StationBoard {
		return
	}
	board, ok := r.boards[station.ID]
	if !ok || board.Item == nil || board.Item.IsCut() {
		return
	}
	board.Progress += chopPerTick
	if board.Progress >= chopComplete {
		board.Progress = chopComplete
		cut := board.Item.Cut()
		board.Item = &cut
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
