package sandbox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/deskshell/internal/shared/paths"
)

// maxLinkHops bounds how many dangling symlinks are followed while
// canonicalizing a path whose target does not exist yet.
const maxLinkHops = 40

var errTooManyLinks = errors.New("too many levels of symbolic links")

// Resolver confines caller-supplied relative paths to the application-data
// root. It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	locator paths.Locator
	logger  *zap.Logger
	dirMode fs.FileMode
}

// NewResolver creates a resolver anchored at the locator's directory.
func NewResolver(locator paths.Locator) *Resolver {
	return &Resolver{
		locator: locator,
		logger:  logging.OrNop(nil),
		dirMode: 0o755,
	}
}

// WithLogger sets the logger used to report escape attempts.
func (r *Resolver) WithLogger(logger *zap.Logger) *Resolver {
	r.logger = logging.OrNop(logger)
	return r
}

// EnsureRoot locates the root and creates it, with any missing ancestors.
// It returns the root as located, not canonicalized.
func (r *Resolver) EnsureRoot() (string, error) {
	root, err := r.locate()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, r.dirMode); err != nil {
		return "", IOFailure("create_root", root, err)
	}
	return root, nil
}

// Root returns the canonical root, creating it if necessary.
func (r *Resolver) Root() (string, error) {
	_, canonicalRoot, err := r.anchor()
	return canonicalRoot, err
}

// Resolve maps rel to a canonical absolute path inside the root.
//
// Existing targets resolve to their canonical form. A missing target resolves
// to its canonical parent joined with the unmodified final segment; the parent
// must exist.
func (r *Resolver) Resolve(rel string) (string, error) {
	if err := CheckRelative(rel); err != nil {
		return "", err
	}

	root, canonicalRoot, err := r.anchor()
	if err != nil {
		return "", err
	}

	resolved, err := canonicalize(filepath.Join(root, rel))
	if err != nil {
		return "", err
	}

	if !isWithinBase(resolved, canonicalRoot) {
		r.logger.Warn("Sandbox escape attempt",
			zap.String("path", rel),
			zap.String("resolved", resolved),
			zap.String("root", canonicalRoot),
		)
		return "", outside("check_containment", rel)
	}
	return resolved, nil
}

// PrepareParent creates the missing parent directories of rel. The nearest
// existing ancestor is canonicalized and proven to lie inside the root before
// anything is created, so a symlink inside the root cannot redirect directory
// creation outside it.
func (r *Resolver) PrepareParent(rel string) error {
	if err := CheckRelative(rel); err != nil {
		return err
	}

	root, canonicalRoot, err := r.anchor()
	if err != nil {
		return err
	}

	candidate := filepath.Join(root, rel)
	if candidate == root {
		return nil
	}

	parent := filepath.Dir(candidate)
	ancestor := parent
	for ancestor != root {
		if _, err := os.Lstat(ancestor); err == nil {
			break
		} else if !errors.Is(err, fs.ErrNotExist) {
			return IOFailure("stat_ancestor", ancestor, err)
		}
		next := filepath.Dir(ancestor)
		if next == ancestor {
			break
		}
		ancestor = next
	}

	canonicalAncestor, err := filepath.EvalSymlinks(ancestor)
	if err != nil {
		return IOFailure("canonicalize_ancestor", ancestor, err)
	}
	if !isWithinBase(canonicalAncestor, canonicalRoot) {
		r.logger.Warn("Sandbox escape attempt during directory creation",
			zap.String("path", rel),
			zap.String("ancestor", canonicalAncestor),
			zap.String("root", canonicalRoot),
		)
		return outside("check_ancestor", rel)
	}

	missing, err := filepath.Rel(ancestor, parent)
	if err != nil {
		return IOFailure("prepare_parent", parent, err)
	}
	if missing == "." {
		return nil
	}

	target := filepath.Join(canonicalAncestor, missing)
	if err := os.MkdirAll(target, r.dirMode); err != nil {
		return IOFailure("create_parent", target, err)
	}
	return nil
}

// CheckRelative performs the syntactic checks that need no filesystem access:
// rel must be relative, unrooted, without a volume name, and free of ".."
// components. Both '/' and '\' separate components for the ".." check.
func CheckRelative(rel string) error {
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" || strings.HasPrefix(rel, "/") || strings.HasPrefix(rel, `\`) {
		return outside("check_absolute", rel)
	}
	for _, part := range strings.FieldsFunc(rel, isSeparator) {
		if part == ".." {
			return outside("check_parent", rel)
		}
	}
	return nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// anchor returns the root as located and its canonical form.
func (r *Resolver) anchor() (string, string, error) {
	root, err := r.EnsureRoot()
	if err != nil {
		return "", "", err
	}
	canonicalRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", "", IOFailure("canonicalize_root", root, err)
	}
	return root, canonicalRoot, nil
}

func (r *Resolver) locate() (string, error) {
	if r.locator == nil {
		return "", unavailable("locate_root", "", paths.ErrUnavailable)
	}
	dir, err := r.locator.DataDir()
	if err != nil {
		return "", unavailable("locate_root", dir, err)
	}
	if !filepath.IsAbs(dir) {
		return "", unavailable("locate_root", dir, fmt.Errorf("locator returned relative path"))
	}
	return filepath.Clean(dir), nil
}

// canonicalize resolves symlinks in candidate. When the target does not exist
// the result is the canonical parent joined with the final segment. Dangling
// symlinks are followed so the returned leaf is never itself a link.
func canonicalize(candidate string) (string, error) {
	for hops := 0; ; hops++ {
		if hops > maxLinkHops {
			return "", IOFailure("canonicalize", candidate, errTooManyLinks)
		}

		resolved, err := filepath.EvalSymlinks(candidate)
		if err == nil {
			return resolved, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", IOFailure("canonicalize", candidate, err)
		}

		parent, leaf := filepath.Dir(candidate), filepath.Base(candidate)
		canonicalParent, err := filepath.EvalSymlinks(parent)
		if err != nil {
			return "", IOFailure("canonicalize_parent", parent, err)
		}

		info, err := os.Lstat(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.Join(canonicalParent, leaf), nil
			}
			return "", IOFailure("canonicalize", candidate, err)
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			// Appeared between the two lookups.
			continue
		}

		target, err := os.Readlink(candidate)
		if err != nil {
			return "", IOFailure("readlink", candidate, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(canonicalParent, target)
		}
		candidate = target
	}
}

// isWithinBase compares whole path segments, so /data/app2 is not within /data/app.
func isWithinBase(path, base string) bool {
	if path == base {
		return true
	}
	prefix := base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}
