package game

import "testing"

func startRunning(t *testing.T, room *Room) (*fakeSender, *fakeSender) {
	t.Helper()
	s1, s2 := joinTwo(t, room)
	room.startSession()
	if room.Status() != StatusRunning {
		t.Fatalf("expected Running, got %s", room.Status())
	}
	haltLoop(room)
	return s1, s2
}

func playerPos(room *Room, id string) (float64, float64) {
	room.mu.Lock()
	defer room.mu.Unlock()
	p := room.players[id]
	return p.X, p.Y
}

func placePlayer(room *Room, id string, x, y float64) {
	room.mu.Lock()
	defer room.mu.Unlock()
	p := room.players[id]
	p.X = x
	p.Y = y
}

func TestAdvanceTickMovesAlongHeldAxes(t *testing.T) {
	room := newTestRoom(t)
	startRunning(t, room)

	x0, y0 := playerPos(room, "p1")
	room.UpdateIntent("p1", Intent{Right: true, Down: true})
	room.advanceTick()

	x1, y1 := playerPos(room, "p1")
	if x1 != x0+moveSpeed || y1 != y0+moveSpeed {
		t.Fatalf("expected unnormalized axis moves, got (%v,%v) from (%v,%v)", x1, y1, x0, y0)
	}
}

func TestAdvanceTickClampsToCanvas(t *testing.T) {
	room := newTestRoom(t)
	startRunning(t, room)

	placePlayer(room, "p1", playerHalf, playerHalf)
	room.UpdateIntent("p1", Intent{Left: true, Up: true})
	for i := 0; i < 50; i++ {
		room.advanceTick()
	}
	x, y := playerPos(room, "p1")
	if x != playerHalf || y != playerHalf {
		t.Fatalf("expected clamp at min bound, got (%v,%v)", x, y)
	}

	placePlayer(room, "p1", CanvasWidth-playerHalf, CanvasHeight-playerHalf)
	room.UpdateIntent("p1", Intent{Right: true, Down: true})
	for i := 0; i < 50; i++ {
		room.advanceTick()
	}
	x, y = playerPos(room, "p1")
	if x != CanvasWidth-playerHalf || y != CanvasHeight-playerHalf {
		t.Fatalf("expected clamp at max bound, got (%v,%v)", x, y)
	}
}

func TestAdvanceTickIgnoredOutsideRunning(t *testing.T) {
	room := newTestRoom(t)
	joinTwo(t, room)

	x0, y0 := playerPos(room, "p1")
	room.UpdateIntent("p1", Intent{Right: true})
	room.advanceTick()
	x1, y1 := playerPos(room, "p1")
	if x1 != x0 || y1 != y0 {
		t.Fatalf("movement must not apply before the session starts")
	}
}

func boardCenter(room *Room, id string) (float64, float64) {
	for _, s := range room.layout.Stations() {
		if s.ID == id {
			return s.X + s.Width/2, s.Y + s.Height/2
		}
	}
	return 0, 0
}

func TestChoppingProgressesAndCompletes(t *testing.T) {
	room := newTestRoom(t)
	startRunning(t, room)

	bx, by := boardCenter(room, "board1")
	placePlayer(room, "p1", bx, by)
	room.mu.Lock()
	raw := Item{Kind: KindTomato, State: StateRaw}
	room.boards["board1"].Item = &raw
	room.mu.Unlock()

	room.UpdateIntent("p1", Intent{Action: true})

	last := 0.0
	for i := 0; i < 99; i++ {
		room.advanceTick()
		room.mu.Lock()
		progress := room.boards["board1"].Progress
		item := *room.boards["board1"].Item
		room.mu.Unlock()
		if progress < last {
			t.Fatalf("progress went backwards: %v < %v", progress, last)
		}
		if item.IsCut() {
			t.Fatalf("item cut before progress completed at tick %d", i)
		}
		last = progress
	}

	room.advanceTick()
	room.mu.Lock()
	board := room.boards["board1"]
	progress, item := board.Progress, *board.Item
	room.mu.Unlock()
	if progress != chopComplete {
		t.Fatalf("expected progress %v, got %v", chopComplete, progress)
	}
	if !item.IsCut() {
		t.Fatalf("expected cut item at full progress")
	}

	// Progress holds at the cap and the cut item stays cut.
	room.advanceTick()
	room.mu.Lock()
	progress = room.boards["board1"].Progress
	room.mu.Unlock()
	if progress != chopComplete {
		t.Fatalf("progress must hold at %v, got %v", chopComplete, progress)
	}
}

func TestChoppingRequiresActionAndRawItem(t *testing.T) {
	room := newTestRoom(t)
	startRunning(t, room)

	bx, by := boardCenter(room, "board2")
	placePlayer(room, "p1", bx, by)

	// Empty board: nothing accumulates.
	room.UpdateIntent("p1", Intent{Action: true})
	room.advanceTick()
	room.mu.Lock()
	progress := room.boards["board2"].Progress
	room.mu.Unlock()
	if progress != 0 {
		t.Fatalf("empty board must not accumulate progress")
	}

	// Raw item but no action intent.
	room.mu.Lock()
	raw := Item{Kind: KindLettuce, State: StateRaw}
	room.boards["board2"].Item = &raw
	room.mu.Unlock()
	room.UpdateIntent("p1", Intent{})
	room.advanceTick()
	room.mu.Lock()
	progress = room.boards["board2"].Progress
	room.mu.Unlock()
	if progress != 0 {
		t.Fatalf("progress requires the action intent")
	}
}
