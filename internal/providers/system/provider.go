package system

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/GriffinCanCode/deskshell/internal/shared/types"
)

// Provider implements host identification and liveness tools
type Provider struct {
	startTime time.Time
	goos      string
}

// NewProvider creates a system provider for the running host
func NewProvider() *Provider {
	return &Provider{
		startTime: time.Now(),
		goos:      runtime.GOOS,
	}
}

// OSFamily reports the OS family the front-end expects for a GOOS value.
// darwin is "macos"; everything else passes through unchanged.
func OSFamily(goos string) string {
	if goos == "darwin" {
		return "macos"
	}
	return goos
}

// Definition returns service metadata
func (s *Provider) Definition() types.Service {
	return types.Service{
		ID:           "system",
		Name:         "System Service",
		Description:  "Host information and utilities",
		Category:     types.CategorySystem,
		Capabilities: []string{"info", "monitoring"},
		Tools: []types.Tool{
			{
				ID:          "system.os",
				Command:     "get_os",
				Name:        "Operating System",
				Description: "Get the host operating system family",
				Parameters:  []types.Parameter{},
				Returns:     "string",
			},
			{
				ID:          "system.info",
				Name:        "System Info",
				Description: "Get runtime information",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.ping",
				Name:        "Ping",
				Description: "Test service availability",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a system operation
func (s *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "system.os":
		return types.Success(OSFamily(s.goos))
	case "system.info":
		return s.info()
	case "system.ping":
		return s.ping()
	default:
		return types.Failure(types.KindUnknownCommand, fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (s *Provider) info() (*types.Result, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return types.Success(map[string]interface{}{
		"go_version":     runtime.Version(),
		"os":             OSFamily(s.goos),
		"arch":           runtime.GOARCH,
		"cpus":           runtime.NumCPU(),
		"goroutines":     runtime.NumGoroutine(),
		"memory_alloc":   m.Alloc / 1024 / 1024, // MB
		"memory_sys":     m.Sys / 1024 / 1024,   // MB
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	})
}

func (s *Provider) ping() (*types.Result, error) {
	return types.Success(map[string]interface{}{
		"pong":      true,
		"timestamp": time.Now().Unix(),
	})
}
