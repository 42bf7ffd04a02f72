package preview

import "encoding/json"

// Message is the envelope for every preview WebSocket frame.
type Message struct {
	Type         string          `json:"type"`
	StoryboardID string          `json:"storyboardId,omitempty"`
	UserID       string          `json:"userId,omitempty"`
	ClientID     string          `json:"clientId,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Playback control (client → server)
	TypePlay  = "preview.play"
	TypePause = "preview.pause"
	TypeSeek  = "preview.seek"

	// Playback updates (server → clients)
	TypeState       = "preview.state"
	TypeFrameUpdate = "frame.update"
)

// SeekPayload is the payload of preview.seek messages.
type SeekPayload struct {
	Frame int `json:"frame"`
}

// StatePayload describes the room's playback state.
type StatePayload struct {
	Frame     int  `json:"frame"`
	Playing   bool `json:"playing"`
	FPS       int  `json:"fps"`
	SpanStart int  `json:"spanStart"`
	SpanEnd   int  `json:"spanEnd"`
}

// ErrorPayload carries a human-readable failure to the client.
type ErrorPayload struct {
	Error string `json:"error"`
}
