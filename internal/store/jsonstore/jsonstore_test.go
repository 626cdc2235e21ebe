package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_MissingFileIsEmpty(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "nope", "tasks.json"))

	v, ok, err := f.Get("smartTasks")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestFile_SetGetKeepsOtherKeys(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data", "tasks.json")
	f := New(p)

	require.NoError(t, f.Set("a", `[1,2]`))
	require.NoError(t, f.Set("b", "plain"))

	v, ok, err := f.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1,2]`, v)

	// a second handle on the same path sees the persisted document
	v, ok, err = New(p).Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "plain", v)

	_, ok, err = f.Get("never-set")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_Overwrite(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "tasks.json"))
	require.NoError(t, f.Set("k", "one"))
	require.NoError(t, f.Set("k", "two"))

	v, _, err := f.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "two", v)

	entries, err := os.ReadDir(filepath.Dir(f.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFile_CorruptDocument(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o644))

	_, _, err := New(p).Get("k")
	assert.Error(t, err)
	assert.Error(t, New(p).Set("k", "v"))
}
