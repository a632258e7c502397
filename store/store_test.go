package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crookedfinger/crookedfinger-go/api"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()

	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "state.bin")
	s := openTestStore(t, path)

	// Empty store: nothing is set.
	_, ok := s.Token()
	assert.False(t, ok)
	_, ok = s.User()
	assert.False(t, ok)
	assert.Nil(t, s.Conversations())

	require.NoError(t, s.SetToken("tok-abc"))
	require.NoError(t, s.SetUser(api.User{ID: 7, Email: "maker@example.com"}))
	require.NoError(t, s.SetConversations([]api.Conversation{
		{ID: 1, Title: "Whale help", MessageCount: 4},
		{ID: 2, Title: "Border ideas", MessageCount: 1},
	}))

	// A fresh store sees the same state.
	reopened := openTestStore(t, path)
	token, ok := reopened.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)

	user, ok := reopened.User()
	require.True(t, ok)
	assert.Equal(t, "maker@example.com", user.Email)

	conversations := reopened.Conversations()
	require.Len(t, conversations, 2)
	assert.Equal(t, "Whale help", conversations[0].Title)
}

func TestStoreSnapshotIsCompressed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.bin")
	s := openTestStore(t, path)
	require.NoError(t, s.SetToken("tok-abc"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 4)

	// zstd frame magic.
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, data[:4])
}

func TestStoreCorruptSnapshotDegradesToEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0o600))

	s := openTestStore(t, path)
	_, ok := s.Token()
	assert.False(t, ok)

	// The next write replaces the corrupt file.
	require.NoError(t, s.SetToken("tok-new"))
	reopened := openTestStore(t, path)
	token, ok := reopened.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-new", token)
}

func TestStoreDeleteAndReset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.bin")
	s := openTestStore(t, path)

	require.NoError(t, s.SetToken("tok-abc"))
	require.NoError(t, s.ClearToken())
	_, ok := s.Token()
	assert.False(t, ok)

	// Deleting an absent key is fine.
	require.NoError(t, s.ClearToken())

	require.NoError(t, s.SetUser(api.User{ID: 7}))
	require.NoError(t, s.SetConversations([]api.Conversation{{ID: 1}}))
	require.NoError(t, s.Reset())

	reopened := openTestStore(t, path)
	_, ok = reopened.User()
	assert.False(t, ok)
	assert.Nil(t, reopened.Conversations())
}

func TestStoreGenericKeys(t *testing.T) {
	t.Parallel()

	s := openTestStore(t, filepath.Join(t.TempDir(), "state.bin"))

	type prefs struct {
		Theme    string    `json:"theme"`
		LastSeen time.Time `json:"lastSeen"`
	}
	in := prefs{Theme: "dark", LastSeen: time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)}
	require.NoError(t, s.Set("prefs", in))

	var out prefs
	ok, err := s.Get("prefs", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)

	ok, err = s.Get("missing", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreEmptyTokenIsNotASession(t *testing.T) {
	t.Parallel()

	s := openTestStore(t, filepath.Join(t.TempDir(), "state.bin"))
	require.NoError(t, s.SetToken(""))

	_, ok := s.Token()
	assert.False(t, ok)
}
