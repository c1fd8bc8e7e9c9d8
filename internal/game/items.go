package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IngredientKind identifies an ingredient independent of preparation state.
type IngredientKind string

const (
	KindTomato  IngredientKind = "tomato"
	KindLettuce IngredientKind = "lettuce"
)

// PrepState enumerates the two preparation states an ingredient can be in.
// Chopping at a board is the only raw→cut transition.
type PrepState string

const (
	StateRaw PrepState = "raw"
	StateCut PrepState = "cut"
)

// Item is an ingredient token: a kind plus an explicit preparation state.
// The zero value is not a valid item; holders use *Item with nil meaning
// "empty hand" or "empty board".
type Item struct {
	Kind  IngredientKind
	State PrepState
}

// Cut returns the cut variant of the item.
func (it Item) Cut() Item {
	return Item{Kind: it.Kind, State: StateCut}
}

// IsCut reports whether the item has been chopped.
func (it Item) IsCut() bool {
	return it.State == StateCut
}

// String renders the legacy wire form, e.g. "tomato_raw".
func (it Item) String() string {
	return fmt.Sprintf("%s_%s", it.Kind, it.State)
}

// MarshalJSON keeps the suffix-encoded wire form clients already parse.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(it.String())
}

// UnmarshalJSON accepts the suffix-encoded wire form.
func (it *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseItem(s)
	if err != nil {
		return err
	}
	*it = parsed
	return nil
}

// ParseItem converts the suffix-encoded wire form back into an Item.
func ParseItem(s string) (Item, error) {
	idx := strings.LastIndexByte(s, '_')
	if idx <= 0 || idx == len(s)-1 {
		return Item{}, fmt.Errorf("malformed item %q", s)
	}
	kind := IngredientKind(s[:idx])
	state := PrepState(s[idx+1:])
	if state != StateRaw && state != StateCut {
		return Item{}, fmt.Errorf("unknown prep state in %q", s)
	}
	return Item{Kind: kind, State: state}, nil
}

// kindBag is a multiset of ingredient kinds. Dish matching is bag equality,
// never subset or ordered comparison.
type kindBag map[IngredientKind]int

func bagOf(kinds []IngredientKind) kindBag {
	bag := make(kindBag, len(kinds))
	for _, k := range kinds {
		bag[k]++
	}
	return bag
}

func bagOfItems(items []Item) kindBag {
	bag := make(kindBag, len(items))
	for _, it := range items {
		bag[it.Kind]++
	}
	return bag
}

func (b kindBag) equal(other kindBag) bool {
	if len(b) != len(other) {
		return false
	}
	for kind, count := range b {
		if other[kind] != count {
			return false
		}
	}
	return true
}
