package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/deskshell/internal/providers/system"
)

// setup writes a config rooted at a fresh data directory
func setup(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "data")
	cfgPath := filepath.Join(dir, "deskshell.toml")
	content := fmt.Sprintf("[app]\ndata_dir = %q\n\n[server]\nport = \"0\"\n\n[logging]\nlevel = \"error\"\n", root)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath, root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd("deskshell", "", "")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInvokeRoundTrip(t *testing.T) {
	cfgPath, root := setup(t)

	out, err := run(t, "--config", cfgPath, "invoke", "write_file", "path=notes/a.txt", "contents=hello")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(root, "notes", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	out, err = run(t, "--config", cfgPath, "invoke", "read_file", "path=notes/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestInvokeReadKeepsTrailingNewline(t *testing.T) {
	cfgPath, root := setup(t)
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lines.txt"), []byte("one\ntwo\n"), 0o644))

	out, err := run(t, "--config", cfgPath, "invoke", "read_file", "path=lines.txt")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", out)
}

func TestPrintValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"null", nil, ""},
		{"empty string", "", ""},
		{"plain string", "macos", "macos\n"},
		{"terminated string", "a\n", "a\n"},
		{"object", map[string]interface{}{"os": "linux"}, "{\"os\":\"linux\"}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, printValue(&buf, tt.value))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestInvokeJSONArgs(t *testing.T) {
	cfgPath, root := setup(t)

	_, err := run(t, "--config", cfgPath, "invoke", "write_file", "--args", `{"path":"b.txt","contents":"json"}`)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "json", string(data))

	// pairs override --args
	_, err = run(t, "--config", cfgPath, "invoke", "write_file", "--args", `{"path":"b.txt","contents":"json"}`, "contents=pair")
	require.NoError(t, err)

	data, err = os.ReadFile(filepath.Join(root, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "pair", string(data))
}

func TestInvokeGetOS(t *testing.T) {
	cfgPath, _ := setup(t)

	out, err := run(t, "--config", cfgPath, "invoke", "get_os")
	require.NoError(t, err)
	assert.Equal(t, system.OSFamily(runtime.GOOS)+"\n", out)
}

func TestInvokeFailures(t *testing.T) {
	cfgPath, _ := setup(t)

	tests := []struct {
		name string
		args []string
		err  error
		text string
	}{
		{"escape", []string{"read_file", "path=../secret"}, ErrCommandFails, "outside_sandbox"},
		{"absolute", []string{"read_file", "path=/etc/passwd"}, ErrCommandFails, "outside_sandbox"},
		{"missing file", []string{"read_file", "path=nope.txt"}, ErrCommandFails, "io_failure"},
		{"missing arg", []string{"read_file"}, ErrCommandFails, "invalid_argument"},
		{"bad pair", []string{"read_file", "path"}, ErrInvalidPair, ""},
		{"bad json", []string{"read_file", "--args", "{"}, ErrInvalidArgs, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfgPath, "invoke"}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			if tt.text != "" {
				assert.Contains(t, err.Error(), tt.text)
			}
		})
	}
}

func TestInvokeUnknownCommand(t *testing.T) {
	cfgPath, _ := setup(t)

	_, err := run(t, "--config", cfgPath, "invoke", "format_disk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format_disk")
}

func TestWhere(t *testing.T) {
	cfgPath, root := setup(t)

	out, err := run(t, "--config", cfgPath, "where")
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Equal(t, root+"\n", out)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "absent.toml"), "where")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestServeStopsOnCancel(t *testing.T) {
	cfgPath, root := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCmd("deskshell", "", "")
	cmd.SetArgs([]string{"--config", cfgPath, "serve"})
	require.NoError(t, cmd.ExecuteContext(ctx))

	_, err := os.Stat(root)
	assert.NoError(t, err)
}

func TestParseParams(t *testing.T) {
	params, err := parseParams(`{"path":"x","n":1}`, []string{"path=y", "contents=a=b"})
	require.NoError(t, err)
	assert.Equal(t, "y", params["path"])
	assert.Equal(t, "a=b", params["contents"])
	assert.EqualValues(t, 1, params["n"])

	params, err = parseParams("", nil)
	require.NoError(t, err)
	assert.Empty(t, params)
}
