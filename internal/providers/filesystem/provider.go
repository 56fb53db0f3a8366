package filesystem

import (
	"context"

	"github.com/GriffinCanCode/deskshell/internal/shared/types"
	"github.com/GriffinCanCode/deskshell/internal/shared/utils"
)

// Provider exposes Ops as the "filesystem" service
type Provider struct {
	ops *Ops
}

// NewProvider creates a filesystem provider
func NewProvider(ops *Ops) *Provider {
	return &Provider{ops: ops}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:           "filesystem",
		Name:         "Filesystem Service",
		Description:  "File access confined to the application data directory",
		Category:     types.CategoryFilesystem,
		Capabilities: []string{"read", "write"},
		Tools: []types.Tool{
			{
				ID:          "filesystem.write",
				Command:     "write_file",
				Name:        "Write File",
				Description: "Write text to a file, replacing its contents and creating parent directories",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Path relative to the data directory", Required: true},
					{Name: "contents", Type: "string", Description: "Full file contents", Required: true},
				},
				Returns: "null",
			},
			{
				ID:          "filesystem.read",
				Command:     "read_file",
				Name:        "Read File",
				Description: "Read a UTF-8 text file",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Path relative to the data directory", Required: true},
				},
				Returns: "string",
			},
		},
	}
}

// Execute runs a filesystem operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "filesystem.write":
		return p.write(ctx, params)
	case "filesystem.read":
		return p.read(ctx, params)
	default:
		return types.Failure(types.KindUnknownCommand, "unknown tool: "+toolID)
	}
}

func (p *Provider) write(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, err := utils.PathArg(params, "path")
	if err != nil {
		return failure(err)
	}
	contents, err := utils.StringArg(params, "contents")
	if err != nil {
		return failure(err)
	}

	if err := p.ops.Write(ctx, path, contents); err != nil {
		return failure(err)
	}
	return types.Success(nil)
}

func (p *Provider) read(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, err := utils.PathArg(params, "path")
	if err != nil {
		return failure(err)
	}

	contents, err := p.ops.Read(ctx, path)
	if err != nil {
		return failure(err)
	}
	return types.Success(contents)
}
