package github

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	wferrors "github.com/jeiman/git-workflow/pkg/errors"
)

func TestKeychainCredentialStore_RoundTrip(t *testing.T) {
	keyring.MockInit()

	store := &KeychainCredentialStore{service: KeyringService, account: KeyringAccount}

	_, err := store.Get()
	assert.True(t, wferrors.Is(err, ErrNoCredentials), "empty store should report ErrNoCredentials")

	creds := &Credentials{Username: "jeiman", Token: "ghp_secret"}
	require.NoError(t, store.Set(creds))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	require.NoError(t, store.Clear())
	_, err = store.Get()
	assert.True(t, wferrors.Is(err, ErrNoCredentials))

	// clearing an already-empty store is not an error
	assert.NoError(t, store.Clear())
}

func TestFileCredentialStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := &FileCredentialStore{path: filepath.Join(t.TempDir(), "creds", "credentials.json")}

	_, err := store.Get()
	assert.True(t, wferrors.Is(err, ErrNoCredentials))

	creds := &Credentials{Username: "jeiman", Token: "ghp_secret"}
	require.NoError(t, store.Set(creds))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	require.NoError(t, store.Clear())
	_, err = store.Get()
	assert.True(t, wferrors.Is(err, ErrNoCredentials))

	assert.NoError(t, store.Clear())
}
