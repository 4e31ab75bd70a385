package kv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	type settings struct {
		Theme    string `json:"theme"`
		PageSize int    `json:"pageSize"`
	}

	require.NoError(t, s.Put(KeySettings, settings{Theme: "dark", PageSize: 25}))

	var got settings
	assert.True(t, s.Get(KeySettings, &got))
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, 25, got.PageSize)
}

func TestGetMissingKeyLeavesDefaultUntouched(t *testing.T) {
	s := openTestStore(t)

	value := "fallback"
	assert.False(t, s.Get("nonexistent", &value))
	assert.Equal(t, "fallback", value)
}

func TestGetCorruptBlobDegradesToDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path)
	require.NoError(t, err)

	// Write a blob that is not valid JSON for the target type.
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(KeyAuthToken), []byte("{not json"))
	})
	require.NoError(t, err)

	var token string
	assert.False(t, s.Get(KeyAuthToken, &token))
	assert.Empty(t, token)
	s.Close()
}

func TestDeleteRemovesKey(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put(KeyAuthToken, "abc123"))
	require.NoError(t, s.Delete(KeyAuthToken))

	var token string
	assert.False(t, s.Get(KeyAuthToken, &token))
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(KeyCurrentUser, map[string]string{"id": "USR001"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var user map[string]string
	assert.True(t, s.Get(KeyCurrentUser, &user))
	assert.Equal(t, "USR001", user["id"])
}

func TestCollectionKey(t *testing.T) {
	assert.Equal(t, "events_updates", CollectionKey("events"))
}
