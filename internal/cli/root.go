// Package cli wires the autodocs commands together.
package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"autodocs/internal/autodocs"
	"autodocs/internal/buildlog"
	"autodocs/internal/config"
	"autodocs/internal/llm"
	"autodocs/internal/walker"
)

var (
	flagPath        string
	flagOutputDir   string
	flagFileOfPaths string
	flagBuildLog    string
	flagConfig      string
	flagPromptFile  string
	flagModel       string
	flagExclude     []string
	flagDryRun      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "autodocs",
	Short: "Generate documentation comments across a source tree with an LLM",
	Long: `autodocs rewrites source files by asking a language model to add or
update documentation comments. Files are discovered by walking a directory,
reading a file of paths, cloning a GitHub repository, or parsing a dotnet
build log for missing-documentation (CS1591) warnings.

Examples:
  autodocs --path ./src
  autodocs --path https://github.com/org/repo --output-directory ./out
  autodocs --file-of-paths paths.txt
  autodocs --dotnet-build-log build.log`,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command. It is called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&flagPath, "path", "p", "", "file, directory or GitHub repository to document")
	rootCmd.Flags().StringVarP(&flagOutputDir, "output-directory", "o", "", "write rewritten files here instead of in place")
	rootCmd.Flags().StringVarP(&flagFileOfPaths, "file-of-paths", "f", "", "file listing paths to document, one per line")
	rootCmd.Flags().StringVar(&flagBuildLog, "dotnet-build-log", "", "dotnet build log to parse for CS1591 warnings")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file (default autodocs.yaml if present)")
	rootCmd.Flags().StringVar(&flagPromptFile, "prompt-file", "", "override the built-in prompt template")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "model name (overrides OPENAI_MODEL)")
	rootCmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "extra gitignore-style patterns to skip")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "list targets and render prompts without calling the LLM")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if flagPath == "" && flagFileOfPaths == "" && flagBuildLog == "" {
		return fmt.Errorf("specify --path, --file-of-paths and/or --dotnet-build-log")
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}

	fs := afero.NewOsFs()
	targets, err := collectTargets(cmd, fs, cfg)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No files to document.")
		return nil
	}

	opts := autodocs.Options{
		Fs:        fs,
		Out:       cmd.OutOrStdout(),
		OutputDir: flagOutputDir,
		DryRun:    flagDryRun,
	}

	if flagPromptFile != "" {
		tmpl, err := afero.ReadFile(fs, flagPromptFile)
		if err != nil {
			return fmt.Errorf("reading prompt file: %w", err)
		}
		opts.Template = string(tmpl)
	}

	if !flagDryRun {
		client, err := llm.NewOpenAIClient(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🔧 Using %s (%d files)\n", client.Name(), len(targets))
		opts.Client = client
		opts.Retry = llm.DefaultRetryPolicy(cfg.MaxRetries)
	}

	return autodocs.Run(cmd.Context(), opts, targets)
}

// collectTargets resolves every requested source into pipeline targets.
// Build-log targets come first so their member lists survive deduplication.
func collectTargets(cmd *cobra.Command, fs afero.Fs, cfg *config.Config) ([]autodocs.Target, error) {
	var targets []autodocs.Target

	if flagBuildLog != "" {
		entries, err := buildlog.Parse(flagBuildLog, cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		targets = append(targets, autodocs.TargetsFromBuildLog(entries, cfg)...)
	}

	w := walker.New(fs, walker.Options{
		Extensions:   extensions(cfg),
		IgnoreDirs:   cfg.IgnoreDirs,
		IgnoreFiles:  cfg.IgnoreFiles,
		ExcludeGlobs: flagExclude,
	})

	var files []string
	if flagPath != "" {
		resolved, err := w.Resolve(flagPath)
		if err != nil {
			return nil, err
		}
		files = append(files, resolved...)
	}
	if flagFileOfPaths != "" {
		resolved, err := w.FromPathsFile(flagFileOfPaths)
		if err != nil {
			return nil, err
		}
		files = append(files, resolved...)
	}
	targets = append(targets, autodocs.TargetsFromFiles(walker.Dedupe(files), cfg)...)

	return dedupeTargets(targets), nil
}

func extensions(cfg *config.Config) []string {
	exts := make([]string, 0, len(cfg.Languages))
	for ext := range cfg.Languages {
		exts = append(exts, ext)
	}
	return exts
}

func dedupeTargets(targets []autodocs.Target) []autodocs.Target {
	seen := make(map[string]bool, len(targets))
	var out []autodocs.Target
	for _, t := range targets {
		if !seen[t.File] {
			seen[t.File] = true
			out = append(out, t)
		}
	}
	return out
}
