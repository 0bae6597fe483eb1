package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newFileStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.yaml")
	backend, err := NewFileBackend(path)
	require.NoError(t, err)
	return NewStore(backend), path
}

func TestStore_SetAndCurrent(t *testing.T) {
	store, _ := newFileStore(t)

	_, ok := store.Current()
	require.False(t, ok)

	sess := Session{AccessToken: "tok", UserID: "u-1", Email: "jo@x.com"}
	require.NoError(t, store.Set(sess))

	got, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, sess, got)
	assert.Equal(t, "tok", store.Token())
}

func TestStore_RejectsEmptyToken(t *testing.T) {
	store := NewStore(nil)
	require.Error(t, store.Set(Session{Email: "jo@x.com"}))
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	store, path := newFileStore(t)
	require.NoError(t, store.Set(Session{AccessToken: "tok", UserID: "u-1", Email: "jo@x.com"}))

	backend, err := NewFileBackend(path)
	require.NoError(t, err)
	reloaded := NewStore(backend)

	sess, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, "tok", sess.AccessToken)
	assert.Equal(t, "jo@x.com", sess.Email)
}

func TestStore_ClearRemovesPersistedSession(t *testing.T) {
	store, path := newFileStore(t)
	require.NoError(t, store.Set(Session{AccessToken: "tok"}))
	require.NoError(t, store.Clear())

	_, ok := store.Current()
	assert.False(t, ok)

	backend, err := NewFileBackend(path)
	require.NoError(t, err)
	sess, err := backend.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_ExpiredToken(t *testing.T) {
	store := NewStore(nil)

	require.NoError(t, store.Set(Session{AccessToken: signedToken(t, time.Now().Add(-time.Hour))}))
	assert.True(t, store.Expired())
	assert.Empty(t, store.Token(), "an expired token must not be attached to requests")

	require.NoError(t, store.Set(Session{AccessToken: signedToken(t, time.Now().Add(time.Hour))}))
	assert.False(t, store.Expired())
	assert.NotEmpty(t, store.Token())
}

func TestStore_OpaqueTokenIsNotExpired(t *testing.T) {
	store := NewStore(nil)
	require.NoError(t, store.Set(Session{AccessToken: "not-a-jwt"}))

	assert.False(t, store.Expired())
	assert.Equal(t, "not-a-jwt", store.Token())
}

func TestFileBackend_MissingFileLoadsNothing(t *testing.T) {
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	sess, err := backend.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)

	// Deleting an absent session is not an error.
	require.NoError(t, backend.Delete())
}
