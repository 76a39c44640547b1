package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewMemory()
	in := []record{{ID: "1", Content: "나전칠기"}, {ID: "2", Content: "소반"}}
	require.NoError(t, s.Set("items", in))

	var out []record
	require.NoError(t, s.Get("items", &out))
	assert.Equal(t, in, out)
}

func TestMemoryStore_MissingKeyLeavesDest(t *testing.T) {
	t.Parallel()

	s := NewMemory()
	out := []record{{ID: "keep"}}
	require.NoError(t, s.Get("absent", &out))
	assert.Equal(t, []record{{ID: "keep"}}, out)
}

func TestMemoryStore_SetReplaces(t *testing.T) {
	t.Parallel()

	s := NewMemory()
	require.NoError(t, s.Set("items", []record{{ID: "1"}}))
	require.NoError(t, s.Set("items", []record{{ID: "2"}}))

	var out []record
	require.NoError(t, s.Get("items", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "assistant.db"))
	require.NoError(t, err)
	defer s.Close()

	in := []record{{ID: "1", Content: "배경 지식"}}
	require.NoError(t, s.Set("learningContext", in))

	var out []record
	require.NoError(t, s.Get("learningContext", &out))
	assert.Equal(t, in, out)

	// Keys are independent.
	var other []record
	require.NoError(t, s.Get("customTranslations", &other))
	assert.Empty(t, other)
}
