package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesRunDir(t *testing.T) {
	dir := t.TempDir()
	store, err := New("run-123", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "runs", "run-123"), store.BaseDir)

	info, err := os.Stat(filepath.Join(store.BaseDir, "endpoints"))
	require.NoError(t, err, "endpoints dir not created")
	assert.True(t, info.IsDir())
}

func TestWriteResponse(t *testing.T) {
	store, err := New("run-456", t.TempDir())
	require.NoError(t, err)

	path, err := store.WriteResponse("List Pipelines", []byte(`{"demos":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "list-pipelines.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"demos":[]}`, string(data))
}

func TestWriteResponseSkipsEmptyBody(t *testing.T) {
	store, err := New("run-457", t.TempDir())
	require.NoError(t, err)

	path, err := store.WriteResponse("Plugin Info", nil)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestWriteResult(t *testing.T) {
	store, err := New("run-789", t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.WriteResult(map[string]string{"status": "ok"}))

	data, err := os.ReadFile(filepath.Join(store.BaseDir, "result.json"))
	require.NoError(t, err)
	var obj map[string]string
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, "ok", obj["status"])
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Plugin Info":       "plugin-info",
		"Execute Pipeline":  "execute-pipeline",
		"  weird // name! ": "weird-name",
	}
	for in, want := range tests {
		assert.Equal(t, want, slug(in), in)
	}
}
