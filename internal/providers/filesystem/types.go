package filesystem

import (
	"context"
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskshell/internal/domain/sandbox"
	"github.com/GriffinCanCode/deskshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/deskshell/internal/shared/types"
	"github.com/GriffinCanCode/deskshell/internal/shared/utils"
)

// Resolver is the part of the sandbox the file operations depend on
type Resolver interface {
	Resolve(rel string) (string, error)
	PrepareParent(rel string) error
}

// Ops performs sandboxed file I/O
type Ops struct {
	resolver Resolver
	logger   *zap.Logger
	fileMode fs.FileMode
}

// NewOps creates file operations rooted by resolver
func NewOps(resolver Resolver) *Ops {
	return &Ops{
		resolver: resolver,
		logger:   logging.OrNop(nil),
		fileMode: 0o644,
	}
}

// WithLogger sets the logger
func (o *Ops) WithLogger(logger *zap.Logger) *Ops {
	o.logger = logging.OrNop(logger)
	return o
}

// failure converts an operation error into a result carrying its kind
func failure(err error) (*types.Result, error) {
	var argErr *utils.ArgumentError
	if errors.As(err, &argErr) {
		return types.Failure(types.KindInvalidArgument, err.Error())
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return types.Failure(sandbox.KindIOFailure.String(), err.Error())
	}
	return types.Failure(sandbox.KindOf(err).String(), err.Error())
}
