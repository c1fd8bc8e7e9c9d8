package game

// OrderTemplate is a dish the kitchen can be asked to produce.
type OrderTemplate struct {
	Name string `json:"name"`
	// Items lists the required ingredient kinds; duplicates are meaningful
	// (matching is multiset equality).
	Items []IngredientKind `json:"items"`
	Score int              `json:"score"`
	// TimeBudget is the number of seconds a customer waits before the
	// order expires.
	TimeBudget int `json:"time"`
}

// DefaultCatalog lists the dish templates orders are drawn from.
func DefaultCatalog() []OrderTemplate {
	return []OrderTemplate{
		{Name: "Tomato Salad", Items: []IngredientKind{KindTomato}, Score: 100, TimeBudget: 35},
		{Name: "Lettuce Salad", Items: []IngredientKind{KindLettuce}, Score: 100, TimeBudget: 35},
		{Name: "Mixed Salad", Items: []IngredientKind{KindTomato, KindLettuce}, Score: 200, TimeBudget: 50},
	}
}
