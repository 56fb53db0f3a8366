package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Payload size limits (in bytes)
const (
	MaxBodySize  = 16 * 1024 * 1024 // 16MB - largest write_file request body
	MaxFrameSize = 16 * 1024 * 1024 // 16MB - largest WebSocket frame
	MaxIDLength  = 128
)

// CommandPattern allows alphanumeric, hyphens, underscores, and dots (for service.tool format)
var CommandPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// SizeValidator validates payload size limits
type SizeValidator struct {
	maxSize int
}

// NewSizeValidator creates a new validator with the specified max size
func NewSizeValidator(maxSize int) *SizeValidator {
	return &SizeValidator{maxSize: maxSize}
}

// Limit returns the largest accepted size in bytes
func (v *SizeValidator) Limit() int {
	return v.maxSize
}

// ValidateSize checks if the data size is within limits
func (v *SizeValidator) ValidateSize(data []byte) error {
	if size := len(data); size > v.maxSize {
		return fmt.Errorf("payload size %d bytes exceeds maximum %d bytes", size, v.maxSize)
	}
	return nil
}

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if maxLen > 0 && length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Null bytes truncate paths at the OS boundary
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateCommand validates a command alias or service.tool identifier
func ValidateCommand(name string) error {
	if err := ValidateString(name, "command", 1, MaxIDLength, true); err != nil {
		return err
	}

	if !CommandPattern.MatchString(name) {
		return fmt.Errorf("command contains invalid characters (only alphanumeric, dots, hyphens, and underscores allowed)")
	}

	return nil
}
