package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/GriffinCanCode/deskshell/internal/api/middleware"
	"github.com/GriffinCanCode/deskshell/internal/domain/sandbox"
	"github.com/GriffinCanCode/deskshell/internal/domain/service"
	"github.com/GriffinCanCode/deskshell/internal/shared/types"
	"github.com/GriffinCanCode/deskshell/internal/shared/utils"
)

// Version is reported by the root banner
const Version = "0.1.0"

// RootLocator reports the canonical application-data root
type RootLocator interface {
	Root() (string, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	root     RootLocator
	body     *utils.SizeValidator
}

// NewHandlers creates a new handler set accepting bodies up to utils.MaxBodySize
func NewHandlers(registry *service.Registry, root RootLocator) *Handlers {
	return &Handlers{registry: registry, root: root, body: utils.NewSizeValidator(utils.MaxBodySize)}
}

// WithBodyLimit overrides the largest accepted /invoke body
func (h *Handlers) WithBodyLimit(maxBytes int) *Handlers {
	h.body = utils.NewSizeValidator(maxBytes)
	return h
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "DeskShell backend",
		"version": Version,
	})
}

// Health handles detailed health check. An unavailable root degrades the
// status but still answers 200 so the front-end can show why.
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
	}

	dir, err := h.root.Root()
	if err != nil {
		body["status"] = "degraded"
		body["data_root"] = gin.H{"available": false, "error": err.Error(), "kind": sandbox.KindOf(err).String()}
	} else {
		body["data_root"] = gin.H{"available": true, "path": dir}
	}

	c.JSON(http.StatusOK, body)
}

// ListCommands lists registered services and the command aliases
func (h *Handlers) ListCommands(c *gin.Context) {
	var category *types.Category
	if raw := c.Query("category"); raw != "" {
		cat := types.Category(raw)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"commands": h.registry.Commands(),
		"stats":    h.registry.Stats(),
	})
}

// Invoke runs the command named in the path with the JSON object body as
// arguments. An empty body means no arguments.
func (h *Handlers) Invoke(c *gin.Context) {
	command := c.Param("command")
	if err := utils.ValidateCommand(command); err != nil {
		respondError(c, http.StatusBadRequest, types.KindInvalidArgument, err.Error())
		return
	}

	args, err := h.readArgs(c)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		respondError(c, status, types.KindInvalidArgument, err.Error())
		return
	}

	reqID := middleware.GetRequestID(c)
	origin := "http"
	appCtx := &types.Context{RequestID: &reqID, Origin: &origin}

	result, err := h.registry.Invoke(c.Request.Context(), command, args, appCtx)
	if err != nil {
		if errors.Is(err, service.ErrUnknownCommand) {
			respondError(c, http.StatusNotFound, types.KindUnknownCommand, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, sandbox.KindIOFailure.String(), err.Error())
		return
	}

	c.JSON(StatusFor(result), result)
}

// StatusFor maps a command result to its HTTP status
func StatusFor(result *types.Result) int {
	if result.Success {
		return http.StatusOK
	}

	switch result.Kind {
	case types.KindInvalidArgument:
		return http.StatusBadRequest
	case types.KindUnknownCommand:
		return http.StatusNotFound
	case sandbox.KindOutsideSandbox.String():
		return http.StatusForbidden
	case sandbox.KindRootUnavailable.String():
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

var errBodyTooLarge = errors.New("request body too large")

func (h *Handlers) readArgs(c *gin.Context) (types.InvokeRequest, error) {
	// one byte past the limit is enough to detect overflow
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, int64(h.body.Limit())+1))
	if err != nil {
		return nil, err
	}
	if err := h.body.ValidateSize(body); err != nil {
		return nil, fmt.Errorf("%w: %v", errBodyTooLarge, err)
	}

	args := types.InvokeRequest{}
	if len(bytes.TrimSpace(body)) == 0 {
		return args, nil
	}
	if err := binding.JSON.BindBody(body, &args); err != nil {
		return nil, err
	}
	if args == nil {
		// a literal null body
		args = types.InvokeRequest{}
	}
	return args, nil
}

func respondError(c *gin.Context, status int, kind, message string) {
	msg := message
	c.JSON(status, &types.Result{Success: false, Error: &msg, Kind: kind})
}
