package attachment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBuild(t *testing.T) {
	builder := NewBuilder(NewCodec(1024))

	files := []RawFile{
		{Name: "spec.pdf", Type: "application/pdf", Content: "SGVsbG8="},
		{Name: "notes.txt", Type: "text/plain", Content: "d29ybGQ="},
		{Name: "empty.bin", Type: "application/octet-stream", Content: ""},
	}

	entries, err := builder.Build(files)
	require.NoError(t, err)
	require.Len(t, entries, len(files))

	seen := make(map[string]bool)
	for i, e := range entries {
		assert.False(t, e.Id.IsZero(), "entry %d has zero id", i)
		assert.False(t, seen[e.Id.Hex()], "entry %d reuses id %s", i, e.Id.Hex())
		seen[e.Id.Hex()] = true

		assert.Equal(t, files[i].Name, e.Name)
		assert.Equal(t, files[i].Type, e.Type)
	}

	assert.Equal(t, []byte("Hello"), entries[0].Content)
	assert.Equal(t, []byte("world"), entries[1].Content)
	assert.Empty(t, entries[2].Content)
}

func TestBuilderEmptyInput(t *testing.T) {
	builder := NewBuilder(NewCodec(1024))

	entries, err := builder.Build(nil)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestBuilderMalformedContent(t *testing.T) {
	builder := NewBuilder(NewCodec(1024))

	_, err := builder.Build([]RawFile{
		{Name: "ok.txt", Type: "text/plain", Content: "SGVsbG8="},
		{Name: "broken.txt", Type: "text/plain", Content: "%%%"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.txt")
}

// Rebuilding the same inputs must mint new ids; updates never preserve prior
// attachment ids.
func TestBuilderFreshIdsPerBuild(t *testing.T) {
	builder := NewBuilder(NewCodec(1024))
	files := []RawFile{{Name: "a.txt", Type: "text/plain", Content: "SGVsbG8="}}

	first, err := builder.Build(files)
	require.NoError(t, err)
	second, err := builder.Build(files)
	require.NoError(t, err)

	assert.NotEqual(t, first[0].Id, second[0].Id)
}
