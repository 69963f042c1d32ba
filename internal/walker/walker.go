// Package walker discovers source files to document. A root path may be a
// directory (walked recursively), a single file, or a GitHub repository URL
// (cloned to a temporary directory first).
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
)

// GitHubPrefix marks a root that must be cloned before walking.
const GitHubPrefix = "https://github.com/"

// NotFoundError reports a root path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// Options configures a Walker.
type Options struct {
	// Extensions lists file extensions (with leading dot) that are
	// eligible; anything else is skipped.
	Extensions []string

	// IgnoreDirs and IgnoreFiles are base names skipped during the walk.
	IgnoreDirs  []string
	IgnoreFiles []string

	// ExcludeGlobs holds extra gitignore-style patterns to exclude.
	ExcludeGlobs []string
}

// Walker enumerates eligible source files under root paths.
type Walker struct {
	fs          afero.Fs
	extensions  map[string]bool
	ignoreDirs  map[string]bool
	ignoreFiles map[string]bool
	exclude     *ignore.GitIgnore
}

// New creates a walker over fs.
func New(fs afero.Fs, opts Options) *Walker {
	w := &Walker{
		fs:          fs,
		extensions:  make(map[string]bool, len(opts.Extensions)),
		ignoreDirs:  make(map[string]bool, len(opts.IgnoreDirs)),
		ignoreFiles: make(map[string]bool, len(opts.IgnoreFiles)),
	}
	for _, ext := range opts.Extensions {
		w.extensions[ext] = true
	}
	for _, d := range opts.IgnoreDirs {
		w.ignoreDirs[d] = true
	}
	for _, f := range opts.IgnoreFiles {
		w.ignoreFiles[f] = true
	}
	if len(opts.ExcludeGlobs) > 0 {
		w.exclude = ignore.CompileIgnoreLines(opts.ExcludeGlobs...)
	}
	return w
}

// Resolve expands a root into eligible file paths. GitHub URLs are cloned
// first; directories are walked; a single file is returned as-is when
// eligible. A missing local root yields *NotFoundError.
func (w *Walker) Resolve(root string) ([]string, error) {
	if strings.HasPrefix(root, GitHubPrefix) {
		dir, err := CloneGitHub(root)
		if err != nil {
			return nil, err
		}
		return w.Walk(dir)
	}
	return w.Walk(root)
}

// Walk enumerates eligible files under root. Each file is visited exactly
// once; re-invocation restarts the walk.
func (w *Walker) Walk(root string) ([]string, error) {
	info, err := w.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: root}
		}
		return nil, err
	}

	if !info.IsDir() {
		if w.eligible(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	err = afero.Walk(w.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && w.ignoreDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if w.eligible(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FromPathsFile reads a newline-separated list of roots and resolves each
// one. Blank lines are skipped.
func (w *Walker) FromPathsFile(path string) ([]string, error) {
	data, err := afero.ReadFile(w.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(string(data), "\n") {
		root := strings.TrimSpace(line)
		if root == "" {
			continue
		}
		resolved, err := w.Resolve(root)
		if err != nil {
			return nil, err
		}
		files = append(files, resolved...)
	}
	return files, nil
}

func (w *Walker) eligible(path string) bool {
	name := filepath.Base(path)
	if w.ignoreFiles[name] {
		return false
	}
	if w.exclude != nil && w.exclude.MatchesPath(path) {
		return false
	}
	return w.extensions[filepath.Ext(name)]
}

// Dedupe removes duplicate paths, keeping first occurrence order.
func Dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
