package providers

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskshell/internal/domain/service"
	"github.com/GriffinCanCode/deskshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/deskshell/internal/providers/filesystem"
	"github.com/GriffinCanCode/deskshell/internal/providers/system"
)

// RegisterAll registers every built-in provider on registry
func RegisterAll(registry *service.Registry, resolver filesystem.Resolver, logger *zap.Logger) error {
	logger = logging.OrNop(logger)

	all := []service.Provider{
		filesystem.NewProvider(filesystem.NewOps(resolver).WithLogger(logger.Named("filesystem"))),
		system.NewProvider(),
	}

	for _, p := range all {
		if err := registry.Register(p); err != nil {
			return fmt.Errorf("register %s: %w", p.Definition().ID, err)
		}
		logger.Debug("Registered provider", zap.String("service", p.Definition().ID))
	}
	return nil
}
