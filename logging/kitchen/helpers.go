// Package kitchen publishes the cooking domain's structured events:
// session lifecycle, order flow, and scoring.
package kitchen

import (
	"context"

	"kitchen-rush/server/logging"
)

const (
	// EventPlayerJoined is emitted when a player joins a room.
	EventPlayerJoined logging.EventType = "kitchen.player_joined"
	// EventPlayerLeft is emitted when a player leaves a room.
	EventPlayerLeft logging.EventType = "kitchen.player_left"
	// EventSessionStarted is emitted on the Starting→Running transition.
	EventSessionStarted logging.EventType = "kitchen.session_started"
	// EventSessionEnded is emitted when the countdown expires or the room empties.
	EventSessionEnded logging.EventType = "kitchen.session_ended"
	// EventOrderSpawned is emitted for every new customer order.
	EventOrderSpawned logging.EventType = "kitchen.order_spawned"
	// EventOrderExpired is emitted when an order runs out of time.
	EventOrderExpired logging.EventType = "kitchen.order_expired"
	// EventDishServed is emitted on a successful serve.
	EventDishServed logging.EventType = "kitchen.dish_served"
	// EventDishRejected is emitted when an offering matches no order.
	EventDishRejected logging.EventType = "kitchen.dish_rejected"
)

// PlayerJoinedPayload captures spawn metadata for a new player.
type PlayerJoinedPayload struct {
	Room   string  `json:"room"`
	Slot   int     `json:"slot"`
	SpawnX float64 `json:"spawnX"`
	SpawnY float64 `json:"spawnY"`
}

// PlayerLeftPayload captures which slot was vacated.
type PlayerLeftPayload struct {
	Room string `json:"room"`
	Slot int    `json:"slot"`
}

// SessionEndedPayload carries the final score.
type SessionEndedPayload struct {
	FinalScore int `json:"finalScore"`
}

// OrderSpawnedPayload describes a freshly spawned order.
type OrderSpawnedPayload struct {
	Room       string `json:"room"`
	Name       string `json:"name"`
	TimeBudget int    `json:"timeBudget"`
}

// OrderExpiredPayload describes an expiry and the clamped score after it.
type OrderExpiredPayload struct {
	Room    string `json:"room"`
	Name    string `json:"name"`
	Penalty int    `json:"penalty"`
	Score   int    `json:"score"`
}

// DishServedPayload describes a successful serve.
type DishServedPayload struct {
	Room  string `json:"room"`
	Order string `json:"order"`
	Value int    `json:"value"`
	Score int    `json:"score"`
}

// DishRejectedPayload marks a wrong-dish attempt.
type DishRejectedPayload struct {
	Room string `json:"room"`
}

// PlayerJoined publishes a player join event.
func PlayerJoined(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlayerJoinedPayload) {
	publish(ctx, pub, EventPlayerJoined, tick, actor, logging.CategoryLifecycle, payload)
}

// PlayerLeft publishes a player departure event.
func PlayerLeft(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlayerLeftPayload) {
	publish(ctx, pub, EventPlayerLeft, tick, actor, logging.CategoryLifecycle, payload)
}

// SessionStarted publishes the session start event.
func SessionStarted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef) {
	publish(ctx, pub, EventSessionStarted, tick, actor, logging.CategoryLifecycle, nil)
}

// SessionEnded publishes the session end event with the final score.
func SessionEnded(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SessionEndedPayload) {
	publish(ctx, pub, EventSessionEnded, tick, actor, logging.CategoryLifecycle, payload)
}

// OrderSpawned publishes an order spawn event.
func OrderSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload OrderSpawnedPayload) {
	publish(ctx, pub, EventOrderSpawned, tick, actor, logging.CategoryGameplay, payload)
}

// OrderExpired publishes an order expiry event.
func OrderExpired(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload OrderExpiredPayload) {
	publish(ctx, pub, EventOrderExpired, tick, actor, logging.CategoryGameplay, payload)
}

// DishServed publishes a successful serve.
func DishServed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload DishServedPayload) {
	publish(ctx, pub, EventDishServed, tick, actor, logging.CategoryGameplay, payload)
}

// DishRejected publishes a wrong-dish attempt.
func DishRejected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload DishRejectedPayload) {
	publish(ctx, pub, EventDishRejected, tick, actor, logging.CategoryGameplay, payload)
}

func publish(ctx context.Context, pub logging.Publisher, typ logging.EventType, tick uint64, actor logging.EntityRef, category string, payload any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     typ,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: category,
		Payload:  payload,
	})
}
