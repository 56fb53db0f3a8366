// Package service provides the command registry that transports dispatch into.
//
// Providers describe their tools with a types.Service definition. A tool may
// carry a Command alias ("read_file") which is how the front-end names it;
// the dotted tool ID ("filesystem.read") is always accepted too.
//
// Example Usage:
//
//	registry := service.NewRegistry().WithMetrics(metrics)
//	registry.Register(filesystem.NewProvider(ops))
//	result, err := registry.Invoke(ctx, "read_file", map[string]interface{}{"path": "a.txt"}, nil)
package service
