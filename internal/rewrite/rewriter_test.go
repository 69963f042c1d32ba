package rewrite

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteInPlace(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "src/a.cs", []byte("old"), 0o644))

	dest, err := New(fs, "").Write("src/a.cs", "new code\n")
	require.NoError(t, err)
	assert.Equal(t, "src/a.cs", dest)

	data, err := afero.ReadFile(fs, "src/a.cs")
	require.NoError(t, err)
	assert.Equal(t, "new code\n", string(data))
}

func TestWriteToOutputDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()

	dest, err := New(fs, "out").Write("/src/a.cs", "code\n")
	require.NoError(t, err)
	assert.Equal(t, "out/src/a.cs", dest)

	data, err := afero.ReadFile(fs, "out/src/a.cs")
	require.NoError(t, err)
	assert.Equal(t, "code\n", string(data))
}

func TestWriteStripsFence(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := New(fs, "").Write("a.cs", "```csharp\npublic class A {}\n```")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "a.cs")
	require.NoError(t, err)
	assert.Equal(t, "public class A {}\n", string(data))
}

func TestWriteRefusesEmptyOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.cs", []byte("original"), 0o644))

	_, err := New(fs, "").Write("a.cs", "```\n\n```")
	require.Error(t, err)

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.True(t, errors.Is(err, ErrEmptyOutput))

	// the original file must be untouched
	data, err := afero.ReadFile(fs, "a.cs")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestWriteErrorOnReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := New(fs, "").Write("a.cs", "code\n")
	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", "plain code\n", "plain code\n"},
		{"fence with language", "```go\nfunc main() {}\n```", "func main() {}\n"},
		{"fence without language", "```\ncode\n```", "code\n"},
		{"fence without closing", "```go\ncode", "code\n"},
		{"surrounding whitespace", "\n```go\ncode\n```\n", "code\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFence(tt.in))
		})
	}
}
