package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	flagPath = ""
	flagOutputDir = ""
	flagFileOfPaths = ""
	flagBuildLog = ""
	flagConfig = ""
	flagPromptFile = ""
	flagModel = ""
	flagExclude = nil
	flagDryRun = false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootRequiresASource(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--path")
}

func TestRootEmptyDirectoryIsSuccess(t *testing.T) {
	// no credentials configured; an empty directory must not need any
	dir := t.TempDir()

	out, err := execute(t, "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No files to document.")
}

func TestRootMissingPath(t *testing.T) {
	_, err := execute(t, "--path", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRootDryRunListsTargets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cs"), []byte("class A {}"), 0o644))

	out, err := execute(t, "--path", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "a.cs")
	assert.Contains(t, out, "C#")
}

func TestRootMergesBuildLogAndWalkedTargets(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "One.cs")
	require.NoError(t, os.WriteFile(file, []byte("class One {}"), 0o644))

	log := filepath.Join(dir, "build.log")
	content := file + `(3,14): warning CS1591: Missing XML comment for publicly visible type or member 'One.Go()'
`
	require.NoError(t, os.WriteFile(log, []byte(content), 0o644))

	out, err := execute(t, "--path", dir, "--dotnet-build-log", log, "--dry-run")
	require.NoError(t, err)
	// the file appears once and keeps the member list from the build log
	assert.Equal(t, 1, strings.Count(out, "Processing "))
	assert.Contains(t, out, "One.Go()")
}

func TestParseDotnetBuildLogCommand(t *testing.T) {
	dir := t.TempDir()
	log := filepath.Join(dir, "build.log")
	outFile := filepath.Join(dir, "missing.txt")

	content := `src/One.cs(3,14): warning CS1591: Missing XML comment for publicly visible type or member 'One'
src/Two.cs(9,22): warning CS1591: Missing XML comment for publicly visible type or member 'Two.Go()'
src/One.cs(7,14): warning CS1591: Missing XML comment for publicly visible type or member 'One.Name'
`
	require.NoError(t, os.WriteFile(log, []byte(content), 0o644))

	_, err := execute(t, "parse-dotnet-build-log", "--path", log, "--output-file", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "src/One.cs\nsrc/Two.cs\n", string(data))
}
