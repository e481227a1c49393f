package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeiman/git-workflow/pkg/config"
)

type stubCredentialStore struct {
	creds *Credentials
	err   error
}

func (s *stubCredentialStore) Get() (*Credentials, error) { return s.creds, s.err }
func (s *stubCredentialStore) Set(*Credentials) error     { return nil }
func (s *stubCredentialStore) Clear() error               { return nil }

func TestNewClient_NilConfig(t *testing.T) {
	_, err := NewClient(nil, &stubCredentialStore{}, false)
	assert.Error(t, err)
}

func TestNewClient_EnvTokenWins(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")

	client, err := NewClient(&config.GitHubConfig{}, &stubCredentialStore{err: ErrNoCredentials}, false)
	require.NoError(t, err)
	assert.IsType(t, &APIClient{}, client)
}

func TestNewClient_ProjectEnvToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GIT_WORKFLOW_GITHUB_TOKEN", "env-token")

	client, err := NewClient(&config.GitHubConfig{}, &stubCredentialStore{err: ErrNoCredentials}, false)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClient_ConfigToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GIT_WORKFLOW_GITHUB_TOKEN", "")

	client, err := NewClient(&config.GitHubConfig{Token: "cfg-token"}, &stubCredentialStore{err: ErrNoCredentials}, false)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClient_StoredCredentials(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GIT_WORKFLOW_GITHUB_TOKEN", "")

	store := &stubCredentialStore{creds: &Credentials{Username: "jeiman", Token: "ghp_secret"}}
	client, err := NewClient(&config.GitHubConfig{}, store, false)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClient_NoCredentials(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GIT_WORKFLOW_GITHUB_TOKEN", "")

	_, err := NewClient(&config.GitHubConfig{}, &stubCredentialStore{err: ErrNoCredentials}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git-workflow login")
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")

	_, err := NewClient(&config.GitHubConfig{APIURL: "://bad"}, &stubCredentialStore{}, false)
	assert.Error(t, err)
}
