package game

// StationType selects which interaction rule applies at a station.
type StationType string

const (
	StationCrate   StationType = "crate"
	StationBoard   StationType = "board"
	StationPlate   StationType = "plate"
	StationService StationType = "service"
	StationTrash   StationType = "trash"
)

// Station is a fixed rectangular interaction zone in the kitchen. The id
// doubles as the key for board entries in state snapshots, so clients can
// correlate chopping progress with a rectangle.
type Station struct {
	ID     string      `json:"id"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"w"`
	Height float64     `json:"h"`
	Type   StationType `json:"type"`
	// Supplies is set for crates only: the raw item handed out.
	Supplies *Item  `json:"item,omitempty"`
	Label    string `json:"label"`
	Color    string `json:"color"`
}

// Layout is the immutable set of stations for a room. Registration order
// decides hit-test priority; stations are laid out not to overlap.
type Layout struct {
	stations []Station
}

// DefaultLayout mirrors the kitchen the bundled client renders.
func DefaultLayout() Layout {
	return Layout{stations: []Station{
		{ID: "tomatoCrate", X: 40, Y: 80, Width: 70, Height: 70, Type: StationCrate, Supplies: &Item{Kind: KindTomato, State: StateRaw}, Label: "Tomato", Color: "#c0392b"},
		{ID: "lettuceCrate", X: 40, Y: 200, Width: 70, Height: 70, Type: StationCrate, Supplies: &Item{Kind: KindLettuce, State: StateRaw}, Label: "Lettuce", Color: "#27ae60"},
		{ID: "board1", X: 280, Y: 80, Width: 80, Height: 80, Type: StationBoard, Label: "CHOP", Color: "#d35400"},
		{ID: "board2", X: 420, Y: 80, Width: 80, Height: 80, Type: StationBoard, Label: "CHOP", Color: "#d35400"},
		{ID: "plate", X: 300, Y: 460, Width: 80, Height: 80, Type: StationPlate, Label: "PLATE", Color: "#bdc3c7"},
		{ID: "service", X: 730, Y: 50, Width: 130, Height: 90, Type: StationService, Label: "SERVE", Color: "#8e44ad"},
		{ID: "trash", X: 730, Y: 460, Width: 80, Height: 80, Type: StationTrash, Label: "TRASH", Color: "#7f8c8d"},
	}}
}

// Stations returns the stations in registration order.
func (l Layout) Stations() []Station {
	out := make([]Station, len(l.stations))
	copy(out, l.stations)
	return out
}

// StationMap returns the stations keyed by identifier, the shape the
// client consumes in the join response.
func (l Layout) StationMap() map[string]Station {
	out := make(map[string]Station, len(l.stations))
	for _, s := range l.stations {
		out[s.ID] = s
	}
	return out
}

// Boards returns the IDs of all chopping boards in registration order.
func (l Layout) Boards() []string {
	var ids []string
	for _, s := range l.stations {
		if s.Type == StationBoard {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// StationAt hit-tests the player's square extent against the stations and
// returns the first overlap in registration order.
func (l Layout) StationAt(x, y float64) (Station, bool) {
	for _, s := range l.stations {
		if x+playerHalf > s.X && x-playerHalf < s.X+s.Width &&
			y+playerHalf > s.Y && y-playerHalf < s.Y+s.Height {
			return s, true
		}
	}
	return Station{}, false
}
