package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ErrUnavailable reports that no application-data directory can be determined.
var ErrUnavailable = errors.New("application data directory unavailable")

// Locator returns the application-data directory for this application.
type Locator interface {
	DataDir() (string, error)
}

// Platform locates the standard per-user data directory for Identifier.
type Platform struct {
	Identifier string

	// Overridable in tests; zero values mean the running process.
	goos    string
	getenv  func(string) string
	homeDir func() (string, error)
}

// DataDir returns the platform data directory joined with the identifier.
func (p Platform) DataDir() (string, error) {
	if err := ValidateIdentifier(p.Identifier); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	base, err := p.baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, p.Identifier), nil
}

func (p Platform) baseDir() (string, error) {
	switch p.platform() {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "android":
		if xdg := p.env("XDG_DATA_HOME"); xdg != "" && filepath.IsAbs(xdg) {
			return xdg, nil
		}
		home, err := p.home()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	case "darwin", "ios":
		home, err := p.home()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		appData := p.env("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("%w: %%APPDATA%% is not set", ErrUnavailable)
		}
		return appData, nil
	default:
		return "", fmt.Errorf("%w: unsupported platform %s", ErrUnavailable, p.platform())
	}
}

func (p Platform) platform() string {
	if p.goos != "" {
		return p.goos
	}
	return runtime.GOOS
}

func (p Platform) env(key string) string {
	if p.getenv != nil {
		return p.getenv(key)
	}
	return os.Getenv(key)
}

func (p Platform) home() (string, error) {
	lookup := homedir.Dir
	if p.homeDir != nil {
		lookup = p.homeDir
	}
	home, err := lookup()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: home directory not found", ErrUnavailable)
	}
	return home, nil
}

// Fixed is a configured data directory that bypasses platform lookup.
type Fixed string

// DataDir expands a leading ~ and returns the absolute form of the directory.
func (f Fixed) DataDir() (string, error) {
	if strings.TrimSpace(string(f)) == "" {
		return "", fmt.Errorf("%w: empty data directory", ErrUnavailable)
	}

	expanded, err := homedir.Expand(string(f))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return abs, nil
}

// ValidateIdentifier checks that an application identifier is usable as a
// single directory name.
func ValidateIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if identifier == "." || identifier == ".." {
		return fmt.Errorf("identifier cannot be %q", identifier)
	}
	if strings.ContainsAny(identifier, `/\`) {
		return fmt.Errorf("identifier cannot contain path separators")
	}
	return nil
}

// New returns the override locator when dataDir is set, otherwise the
// platform locator for identifier.
func New(identifier, dataDir string) Locator {
	if dataDir != "" {
		return Fixed(dataDir)
	}
	return Platform{Identifier: identifier}
}
