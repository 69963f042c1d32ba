// Package autodocs drives the rewrite pipeline: for each target file it
// renders a prompt, calls the LLM and writes the returned code back.
// Targets are processed sequentially; a failing target is logged and the
// run moves on, but the run as a whole reports failure.
package autodocs

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"autodocs/internal/buildlog"
	"autodocs/internal/config"
	"autodocs/internal/llm"
	"autodocs/internal/prompt"
	"autodocs/internal/rewrite"
)

// AllPublicMembers is the members placeholder value in directory mode,
// where no build log narrows the rewrite to specific symbols.
const AllPublicMembers = "all public members"

// Target is one file to document, with the language and doc style resolved
// from configuration and the symbols to cover.
type Target struct {
	File     string
	Language string
	DocStyle string
	Members  []string
}

// SpecificMembers renders the members list for the prompt.
func (t Target) SpecificMembers() string {
	if len(t.Members) == 0 {
		return AllPublicMembers
	}
	return strings.Join(t.Members, ", ")
}

// TargetsFromFiles maps walked file paths to targets using the configured
// extension table. Files with an unknown extension are dropped.
func TargetsFromFiles(paths []string, cfg *config.Config) []Target {
	var targets []Target
	for _, p := range paths {
		lang, ok := cfg.Languages[filepath.Ext(p)]
		if !ok {
			continue
		}
		targets = append(targets, Target{
			File:     p,
			Language: lang,
			DocStyle: cfg.DocStyle(lang),
		})
	}
	return targets
}

// TargetsFromBuildLog groups parsed warnings by file, collecting the
// members named for each one. First-occurrence file order is kept and
// repeated members are dropped.
func TargetsFromBuildLog(entries []buildlog.Target, cfg *config.Config) []Target {
	index := make(map[string]int)
	var targets []Target
	for _, e := range entries {
		i, ok := index[e.File]
		if !ok {
			lang, known := cfg.Languages[filepath.Ext(e.File)]
			if !known {
				continue
			}
			targets = append(targets, Target{
				File:     e.File,
				Language: lang,
				DocStyle: cfg.DocStyle(lang),
			})
			i = len(targets) - 1
			index[e.File] = i
		}
		if e.Member != "" && !contains(targets[i].Members, e.Member) {
			targets[i].Members = append(targets[i].Members, e.Member)
		}
	}
	return targets
}

// Options configures a pipeline run.
type Options struct {
	Client    llm.Client
	Retry     llm.RetryPolicy
	Fs        afero.Fs
	Out       io.Writer // progress and warnings; defaults to io.Discard
	OutputDir string    // empty means rewrite in place
	Template  string    // empty means the embedded default
	DryRun    bool      // render prompts and report targets, no LLM calls
}

// Run processes targets one at a time. A target whose read, LLM call or
// write fails is reported on Out and skipped; Run returns an error when any
// target failed, and nil for an empty target set.
func Run(ctx context.Context, opts Options, targets []Target) error {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	tmpl := opts.Template
	if tmpl == "" {
		tmpl = prompt.Default()
	}
	rewriter := rewrite.New(opts.Fs, opts.OutputDir)

	failed := 0
	for _, t := range targets {
		if err := processTarget(ctx, opts, rewriter, tmpl, out, t); err != nil {
			fmt.Fprintf(out, "⚠️ %s: %v\n", t.File, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(targets))
	}
	return nil
}

func processTarget(ctx context.Context, opts Options, rewriter *rewrite.Rewriter, tmpl string, out io.Writer, t Target) error {
	fmt.Fprintf(out, "📝 Processing %s (%s, %s)\n", t.File, t.Language, t.DocStyle)

	code, err := afero.ReadFile(opts.Fs, t.File)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	rendered, err := prompt.Render(tmpl, prompt.NewContext(t.Language, t.DocStyle, t.SpecificMembers(), string(code)))
	if err != nil {
		return err
	}

	if opts.DryRun {
		fmt.Fprintf(out, "   would document %s\n", t.SpecificMembers())
		return nil
	}

	result, err := opts.Retry.Do(ctx, opts.Client, rendered)
	if err != nil {
		return err
	}

	dest, err := rewriter.Write(t.File, result)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ Wrote %s\n", dest)
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
