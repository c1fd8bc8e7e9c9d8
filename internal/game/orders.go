package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Order is one pending customer request.
type Order struct {
	ID       string
	Name     string
	Items    []IngredientKind
	Score    int
	TimeLeft int
}

// OrderManager owns the active order queue for a single room. It is not
// safe for concurrent use; the owning room serializes access.
type OrderManager struct {
	catalog []OrderTemplate
	rng     *rand.Rand
	nextSeq uint64
	orders  []*Order
}

// NewOrderManager draws templates from the given catalog using rng. A nil
// catalog or rng falls back to defaults.
func NewOrderManager(catalog []OrderTemplate, rng *rand.Rand) *OrderManager {
	if len(catalog) == 0 {
		catalog = DefaultCatalog()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &OrderManager{catalog: catalog, rng: rng}
}

// Count returns the number of active orders.
func (m *OrderManager) Count() int {
	return len(m.orders)
}

// Active returns the live order queue in spawn order. Callers must not
// retain the slice across mutations.
func (m *OrderManager) Active() []*Order {
	return m.orders
}

// Spawn appends a new order from a uniformly random template. It is a
// no-op at the cap and returns the spawned order, or nil.
func (m *OrderManager) Spawn() *Order {
	if len(m.orders) >= orderCap {
		return nil
	}
	tpl := m.catalog[m.rng.Intn(len(m.catalog))]
	m.nextSeq++
	order := &Order{
		// Composite identity: monotonic per-room sequence plus a random
		// component. Used only for removal by identity, never ordering.
		ID:       fmt.Sprintf("order-%d-%s", m.nextSeq, uuid.NewString()[:8]),
		Name:     tpl.Name,
		Items:    append([]IngredientKind(nil), tpl.Items...),
		Score:    tpl.Score,
		TimeLeft: tpl.TimeBudget,
	}
	m.orders = append(m.orders, order)
	return order
}

// Age decrements every order's remaining time by one second. Orders that
// reach zero are removed by identity and returned. The caller applies the
// score penalty and spawns replacements.
func (m *OrderManager) Age() []*Order {
	var expired []*Order
	for _, o := range m.orders {
		o.TimeLeft--
		if o.TimeLeft <= 0 {
			expired = append(expired, o)
		}
	}
	for _, o := range expired {
		m.Remove(o.ID)
	}
	return expired
}

// Remove deletes the order with the given identity, preserving queue order.
func (m *OrderManager) Remove(id string) bool {
	for i, o := range m.orders {
		if o.ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return true
		}
	}
	return false
}

// Match returns the earliest pending order whose required ingredient
// multiset equals the given kinds. Ties between identical templates go to
// the earliest spawned order, not the highest scoring one.
func (m *OrderManager) Match(kinds []IngredientKind) (*Order, bool) {
	if len(kinds) == 0 {
		return nil, false
	}
	offered := bagOf(kinds)
	for _, o := range m.orders {
		if offered.equal(bagOf(o.Items)) {
			return o, true
		}
	}
	return nil, false
}
