package types

// InvokeRequest is the body of a command invocation over HTTP.
type InvokeRequest map[string]interface{}

// WSMessage represents a WebSocket frame from the front-end
type WSMessage struct {
	Type    string                 `json:"type,omitempty"`
	ID      string                 `json:"id,omitempty"`
	Command string                 `json:"command,omitempty"`
	Args    map[string]interface{} `json:"args,omitempty"`
}

// WSResponse answers a WSMessage with the same ID
type WSResponse struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Success bool        `json:"success"`
	Value   interface{} `json:"value,omitempty"`
	Error   *string     `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
	Message string      `json:"message,omitempty"`
}
