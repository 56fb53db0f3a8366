package system

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/deskshell/internal/shared/types"
)

func TestGetOS(t *testing.T) {
	sys := NewProvider()

	result, err := sys.Execute(context.Background(), "system.os", nil, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, OSFamily(runtime.GOOS), result.Value)
	assert.NotEmpty(t, result.Value)
}

func TestGetOSIsStable(t *testing.T) {
	sys := NewProvider()

	first, _ := sys.Execute(context.Background(), "system.os", nil, nil)
	second, _ := sys.Execute(context.Background(), "system.os", map[string]interface{}{"ignored": true}, nil)
	assert.Equal(t, first.Value, second.Value)
}

func TestOSFamily(t *testing.T) {
	tests := map[string]string{
		"darwin":  "macos",
		"linux":   "linux",
		"windows": "windows",
		"freebsd": "freebsd",
		"android": "android",
	}
	for goos, want := range tests {
		assert.Equal(t, want, OSFamily(goos), goos)
	}
}

func TestSystemInfo(t *testing.T) {
	sys := NewProvider()

	result, err := sys.Execute(context.Background(), "system.info", nil, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	data := result.Value.(map[string]interface{})
	assert.Equal(t, runtime.Version(), data["go_version"])
	assert.Equal(t, runtime.GOARCH, data["arch"])
}

func TestSystemPing(t *testing.T) {
	sys := NewProvider()

	result, err := sys.Execute(context.Background(), "system.ping", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, true, result.Value.(map[string]interface{})["pong"])
}

func TestUnknownTool(t *testing.T) {
	sys := NewProvider()

	result, err := sys.Execute(context.Background(), "system.reboot", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, types.KindUnknownCommand, result.Kind)
}

func TestDefinitionAliases(t *testing.T) {
	def := NewProvider().Definition()
	assert.Equal(t, "system", def.ID)
	require.NotEmpty(t, def.Tools)
	assert.Equal(t, "get_os", def.Tools[0].Command)
}
