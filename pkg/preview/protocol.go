package preview

// MessageType identifies a websocket message.
type MessageType string

const (
	TypeHTML  MessageType = "html"
	TypeError MessageType = "error"
	TypeEvent MessageType = "event"
)

// ServerMessage is sent to clients.
type ServerMessage struct {
	Type  MessageType `json:"type"`
	HTML  string      `json:"html,omitempty"`
	Seq   uint64      `json:"seq,omitempty"`
	Code  string      `json:"code,omitempty"`
	Error string      `json:"error,omitempty"`
}

// ClientMessage is sent by clients to fire an event.
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Event   string      `json:"event"`
	Target  string      `json:"target"`
	Value   *string     `json:"value,omitempty"`
	Key     string      `json:"key,omitempty"`
	Checked *bool       `json:"checked,omitempty"`
}
