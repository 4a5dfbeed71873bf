package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileState_MissingFileIsEmpty(t *testing.T) {
	s := NewFileState(filepath.Join(t.TempDir(), ".last_email_id"))

	id, err := s.LastEmailID()
	require.NoError(t, err)
	assert.Equal(t, "", id)
}

func TestFileState_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", ".last_email_id")
	s := NewFileState(path)

	require.NoError(t, s.SaveLastEmailID("a-much-longer-first-id"))
	require.NoError(t, s.SaveLastEmailID("second"))

	id, err := s.LastEmailID()
	require.NoError(t, err)
	assert.Equal(t, "second", id)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(raw))
}

func TestFileState_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".last_email_id")
	require.NoError(t, os.WriteFile(path, []byte("  em_42\n"), 0o644))

	id, err := NewFileState(path).LastEmailID()
	require.NoError(t, err)
	assert.Equal(t, "em_42", id)
}
