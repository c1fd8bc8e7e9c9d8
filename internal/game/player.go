package game

// Intent is the latest client-reported input. An update replaces the whole
// struct; directions are never merged with the previous state.
type Intent struct {
	Up     bool `json:"up"`
	Down   bool `json:"down"`
	Left   bool `json:"left"`
	Right  bool `json:"right"`
	Action bool `json:"action"`
}

// playerState is the server-side record for one connected player.
type playerState struct {
	ID     string
	Slot   int
	X      float64
	Y      float64
	Color  string
	Held   *Item
	intent Intent
}

func newPlayerState(id string, slot int) *playerState {
	pos := spawnPoints[slot]
	return &playerState{
		ID:    id,
		Slot:  slot,
		X:     pos[0],
		Y:     pos[1],
		Color: slotColors[slot],
	}
}

// Board is a chopping station: at most one item plus chopping progress.
// Progress is meaningful only while an item is present and resets to zero
// whenever the item changes or leaves.
type Board struct {
	Item     *Item
	Progress float64
}

// Plate is the shared staging area for multi-ingredient dishes. Contents
// are always cut items; removal is last-in-first-out.
type Plate struct {
	items []Item
}

// Push adds a cut item. Raw items are rejected.
func (p *Plate) Push(it Item) bool {
	if !it.IsCut() {
		return false
	}
	p.items = append(p.items, it)
	return true
}

// Pop removes and returns the most recently added item.
func (p *Plate) Pop() (Item, bool) {
	if len(p.items) == 0 {
		return Item{}, false
	}
	it := p.items[len(p.items)-1]
	p.items = p.items[:len(p.items)-1]
	return it, true
}

// Clear empties the plate.
func (p *Plate) Clear() {
	p.items = nil
}

// Len returns the number of staged items.
func (p *Plate) Len() int {
	return len(p.items)
}

// Items returns a copy of the plate contents in push order.
func (p *Plate) Items() []Item {
	out := make([]Item, len(p.items))
	copy(out, p.items)
	return out
}

// Kinds returns the ingredient kinds staged on the plate.
func (p *Plate) Kinds() []IngredientKind {
	kinds := make([]IngredientKind, 0, len(p.items))
	for _, it := range p.items {
		kinds = append(kinds, it.Kind)
	}
	return kinds
}
