// Package rewrite writes LLM-generated code back to disk, either in place
// or mirrored under an output directory.
package rewrite

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrEmptyOutput is returned when the model produced no code. The original
// file is left untouched rather than truncated.
var ErrEmptyOutput = errors.New("model returned empty output")

// WriteError reports a failed write of a rewritten file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Rewriter persists rewrite results. An empty outputDir means in-place
// rewrites; otherwise files are written under outputDir preserving their
// relative path.
type Rewriter struct {
	fs        afero.Fs
	outputDir string
}

// New creates a Rewriter over fs.
func New(fs afero.Fs, outputDir string) *Rewriter {
	return &Rewriter{fs: fs, outputDir: outputDir}
}

// Write stores code for the file at path and returns the destination path.
// A surrounding Markdown code fence in the model output is stripped first.
// There is no rollback: earlier writes of a multi-file run stay on disk
// when a later one fails.
func (r *Rewriter) Write(path, code string) (string, error) {
	code = StripFence(code)
	if strings.TrimSpace(code) == "" {
		return "", &WriteError{Path: path, Err: ErrEmptyOutput}
	}

	dest := path
	if r.outputDir != "" {
		dest = filepath.Join(r.outputDir, strings.TrimPrefix(path, string(filepath.Separator)))
		if err := r.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return "", &WriteError{Path: dest, Err: err}
		}
	}

	if err := afero.WriteFile(r.fs, dest, []byte(code), 0o644); err != nil {
		return "", &WriteError{Path: dest, Err: err}
	}
	return dest, nil
}

// StripFence removes a Markdown code fence wrapping the whole output, e.g.
// "```csharp\n...\n```". Output without a fence is returned unchanged.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n") + "\n"
}
