package utils

import "fmt"

// ArgumentError reports a missing or mistyped command argument.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Reason)
}

// StringArg extracts a required string argument verbatim. Empty strings are
// allowed; callers decide whether "" is meaningful.
func StringArg(params map[string]interface{}, name string) (string, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return "", &ArgumentError{Name: name, Reason: "missing"}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &ArgumentError{Name: name, Reason: fmt.Sprintf("expected string, got %T", raw)}
	}
	return s, nil
}

// PathArg is StringArg for values that reach the OS as a path, which must
// not carry NUL bytes.
func PathArg(params map[string]interface{}, name string) (string, error) {
	s, err := StringArg(params, name)
	if err != nil {
		return "", err
	}
	if err := ValidateString(s, name, 0, 0, false); err != nil {
		return "", &ArgumentError{Name: name, Reason: err.Error()}
	}
	return s, nil
}
