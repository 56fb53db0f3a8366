package types

// Category represents service categories
type Category string

const (
	CategoryFilesystem Category = "filesystem"
	CategorySystem     Category = "system"
)

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a service tool
type Tool struct {
	ID          string      `json:"id"`
	Command     string      `json:"command,omitempty"` // front-end facing alias, e.g. "read_file"
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context provides execution context for services
type Context struct {
	RequestID *string `json:"request_id,omitempty"`
	Origin    *string `json:"origin,omitempty"` // transport that dispatched the call: http, ws, cli
}

// Result represents a service execution result
type Result struct {
	Success bool        `json:"success"`
	Value   interface{} `json:"value"`
	Error   *string     `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

// ErrorMessage returns the error text, or "" on success.
func (r *Result) ErrorMessage() string {
	if r == nil || r.Error == nil {
		return ""
	}
	return *r.Error
}

// Result kinds produced outside the sandbox's closed set
const (
	KindInvalidArgument = "invalid_argument"
	KindUnknownCommand  = "unknown_command"
)

// Success wraps a value in a successful result
func Success(value interface{}) (*Result, error) {
	return &Result{Success: true, Value: value}, nil
}

// Failure builds a failed result carrying the error kind
func Failure(kind, message string) (*Result, error) {
	msg := message
	return &Result{Success: false, Error: &msg, Kind: kind}, nil
}
