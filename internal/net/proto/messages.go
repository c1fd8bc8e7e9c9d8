// Package proto defines the client→server half of the wire contract and
// the machine-readable schema for the whole protocol. Server→client
// message shapes live with the core in internal/game; both halves must
// stay stable for a compatible client.
package proto

// ClientMessage is the single inbound envelope. Type selects which fields
// are meaningful: "keys" carries the five intent booleans (replacing the
// previous intent wholesale), "interact" carries nothing, "heartbeat"
// carries the client send time.
type ClientMessage struct {
	Ver    int    `json:"ver,omitempty"`
	Type   string `json:"type"`
	Up     bool   `json:"up,omitempty"`
	Down   bool   `json:"down,omitempty"`
	Left   bool   `json:"left,omitempty"`
	Right  bool   `json:"right,omitempty"`
	Action bool   `json:"action,omitempty"`
	SentAt int64  `json:"sentAt,omitempty"`
}

// Inbound message types.
const (
	TypeKeys      = "keys"
	TypeInteract  = "interact"
	TypeHeartbeat = "heartbeat"
)

// HeartbeatAck answers a heartbeat with server time and the measured RTT.
type HeartbeatAck struct {
	Ver        int    `json:"ver"`
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}
