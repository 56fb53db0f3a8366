package filesystem

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskshell/internal/domain/sandbox"
)

// Write replaces the file at path with contents, creating missing parent
// directories inside the sandbox.
func (o *Ops) Write(ctx context.Context, path, contents string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := o.resolver.PrepareParent(path); err != nil {
		return err
	}

	target, err := o.resolver.Resolve(path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(target, []byte(contents), o.fileMode); err != nil {
		return sandbox.IOFailure("write", path, err)
	}

	o.logger.Debug("File written", zap.String("path", path), zap.Int("size", len(contents)))
	return nil
}

// Read returns the contents of the file at path as text.
func (o *Ops) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target, err := o.resolver.Resolve(path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return "", sandbox.IOFailure("read", path, err)
	}

	if !utf8.Valid(data) {
		return "", sandbox.IOFailure("decode", path, notText(data))
	}
	return string(data), nil
}

// notText describes a non-UTF-8 payload. Binary formats are named by MIME
// type; text in a legacy encoding is named by its likely charset.
func notText(data []byte) error {
	if mtype := mimetype.Detect(data); !strings.HasPrefix(mtype.String(), "text/") && !mtype.Is("application/octet-stream") {
		return fmt.Errorf("stream did not contain valid UTF-8 (looks like %s)", mtype.String())
	}

	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || best == nil || best.Charset == "" || best.Charset == "UTF-8" {
		return fmt.Errorf("stream did not contain valid UTF-8")
	}
	return fmt.Errorf("stream did not contain valid UTF-8 (looks like %s)", best.Charset)
}
