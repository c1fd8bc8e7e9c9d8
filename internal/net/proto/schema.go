package proto

import (
	"reflect"

	"github.com/invopop/jsonschema"

	"kitchen-rush/server/internal/game"
)

// Schema reflects every message shape on the wire into one JSON schema,
// served at /schema so client developers can validate against the live
// server instead of a copy of the docs.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	outbound := []struct {
		title string
		value any
	}{
		{"Join Response", game.JoinResponse{}},
		{"Room Full", game.RoomFullMessage{}},
		{"Player Joined", game.PlayerJoinedMessage{}},
		{"Player Left", game.PlayerLeftMessage{}},
		{"Game Started", game.GameStartedMessage{}},
		{"State Snapshot", game.StateMessage{}},
		{"Scored", game.ScoredMessage{}},
		{"Wrong Dish", game.WrongDishMessage{}},
		{"Game Over", game.GameOverMessage{}},
		{"Heartbeat Ack", HeartbeatAck{}},
	}

	oneOf := make([]*jsonschema.Schema, 0, len(outbound)+1)
	for _, m := range outbound {
		s := reflector.ReflectFromType(reflect.TypeOf(m.value))
		s.Version = ""
		s.Title = m.title
		oneOf = append(oneOf, s)
	}
	inbound := reflector.ReflectFromType(reflect.TypeOf(ClientMessage{}))
	inbound.Version = ""
	inbound.Title = "Client Message"
	oneOf = append(oneOf, inbound)

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Kitchen Rush Protocol",
		Description: "Every JSON message exchanged between server and client.",
		OneOf:       oneOf,
	}
}
