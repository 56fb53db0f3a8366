package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/deskshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/deskshell/internal/shared/types"
	"github.com/GriffinCanCode/deskshell/internal/shared/utils"
)

// ErrUnknownCommand is returned when neither an alias nor a tool ID matches.
var ErrUnknownCommand = errors.New("unknown command")

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Registry indexes providers by service ID and their tools by command alias
type Registry struct {
	mu       sync.RWMutex
	services map[string]Provider
	commands map[string]string // alias -> tool ID

	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]Provider),
		commands: make(map[string]string),
		logger:   logging.OrNop(nil),
	}
}

// WithMetrics records every invocation on m
func (r *Registry) WithMetrics(m *monitoring.Metrics) *Registry {
	r.metrics = m
	return r
}

// WithLogger sets the logger used for failed invocations
func (r *Registry) WithLogger(l *zap.Logger) *Registry {
	r.logger = logging.OrNop(l)
	return r
}

// Register adds a service provider. Registering an ID again replaces the
// previous provider and its aliases.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	aliases := make(map[string]string, len(def.Tools))
	for _, tool := range def.Tools {
		if !strings.HasPrefix(tool.ID, def.ID+".") {
			return fmt.Errorf("tool %q does not belong to service %q", tool.ID, def.ID)
		}
		if tool.Command == "" {
			continue
		}
		if err := utils.ValidateCommand(tool.Command); err != nil {
			return fmt.Errorf("tool %q: %w", tool.ID, err)
		}
		if owner, taken := r.commands[tool.Command]; taken && !strings.HasPrefix(owner, def.ID+".") {
			return fmt.Errorf("command %q already registered by %s", tool.Command, owner)
		}
		if _, dup := aliases[tool.Command]; dup {
			return fmt.Errorf("command %q declared twice by service %q", tool.Command, def.ID)
		}
		aliases[tool.Command] = tool.ID
	}

	r.dropAliases(def.ID)
	for alias, toolID := range aliases {
		r.commands[alias] = toolID
	}
	r.services[def.ID] = provider
	return nil
}

func (r *Registry) dropAliases(serviceID string) {
	for alias, toolID := range r.commands {
		if strings.HasPrefix(toolID, serviceID+".") {
			delete(r.commands, alias)
		}
	}
}

// Lookup resolves a command alias or a "service.tool" ID
func (r *Registry) Lookup(name string) (string, Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	toolID := name
	if aliased, ok := r.commands[name]; ok {
		toolID = aliased
	}

	serviceID, _, ok := strings.Cut(toolID, ".")
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	provider, ok := r.services[serviceID]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	for _, tool := range provider.Definition().Tools {
		if tool.ID == toolID {
			return toolID, provider, nil
		}
	}
	return "", nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// Invoke runs a command by alias or tool ID. Provider-level failures come
// back as an unsuccessful result with a nil error; the error return is kept
// for unknown commands and provider faults.
func (r *Registry) Invoke(ctx context.Context, name string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	toolID, provider, err := r.Lookup(name)
	if err != nil {
		if r.metrics != nil {
			r.metrics.RecordCommandError("unknown", types.KindUnknownCommand)
		}
		result, _ := types.Failure(types.KindUnknownCommand, err.Error())
		return result, err
	}

	if params == nil {
		params = map[string]interface{}{}
	}

	label := r.label(name, toolID)
	timer := monitoring.NewTimer(r.metrics, label)

	result, err := provider.Execute(ctx, toolID, params, appCtx)
	switch {
	case err != nil:
		timer.Stop("error")
		r.logger.Error("Command execution failed", zap.String("command", label), zap.Error(err))
		return nil, fmt.Errorf("execute %s: %w", toolID, err)
	case result == nil:
		timer.Stop("error")
		return nil, fmt.Errorf("execute %s: provider returned no result", toolID)
	case !result.Success:
		timer.Stop("failure")
		if r.metrics != nil {
			r.metrics.RecordCommandError(label, result.Kind)
		}
		r.logger.Debug("Command failed",
			zap.String("command", label),
			zap.String("kind", result.Kind),
			zap.String("error", result.ErrorMessage()),
		)
	default:
		timer.Stop("success")
	}
	return result, nil
}

// label prefers the alias so metrics read like the front-end's vocabulary
func (r *Registry) label(name, toolID string) string {
	if name != toolID {
		return name
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for alias, id := range r.commands {
		if id == toolID {
			return alias
		}
	}
	return toolID
}

// List returns registered services sorted by ID, optionally filtered by category
func (r *Registry) List(category *types.Category) []types.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]types.Service, 0, len(r.services))
	for _, provider := range r.services {
		def := provider.Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Commands returns a copy of the alias index (alias -> tool ID)
func (r *Registry) Commands() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.commands))
	for alias, toolID := range r.commands {
		out[alias] = toolID
	}
	return out
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var totalTools int
	categories := make(map[string]int)
	for _, provider := range r.services {
		def := provider.Definition()
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
	}

	return map[string]interface{}{
		"total_services": len(r.services),
		"total_tools":    totalTools,
		"total_commands": len(r.commands),
		"categories":     categories,
	}
}
