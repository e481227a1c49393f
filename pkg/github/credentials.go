package github

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"

	wferrors "github.com/jeiman/git-workflow/pkg/errors"
)

const (
	// KeyringService is the keychain service name for git-workflow.
	KeyringService = "git-workflow"
	// KeyringAccount is the keychain account name for GitHub credentials.
	KeyringAccount = "github"

	// CredentialsDir is the directory for the fallback credentials file.
	CredentialsDir = ".config/git-workflow" //nolint:gosec // Not a credential, just a directory name
	// CredentialsFile is the fallback credentials filename.
	CredentialsFile = "credentials.json" //nolint:gosec // Not a credential, just a filename
)

// ErrNoCredentials indicates that no credentials have been stored yet.
var ErrNoCredentials = wferrors.New("no stored credentials")

// Credentials is the username/token pair used for basic authentication.
type Credentials struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// CredentialStore manages persistent credential storage.
type CredentialStore interface {
	Get() (*Credentials, error)
	Set(creds *Credentials) error
	Clear() error
}

// NewCredentialStore creates a credential store, preferring the OS keychain
// when available.
func NewCredentialStore() CredentialStore {
	// Probe the keyring with a throwaway entry to see if it works here
	testService := KeyringService + "-test"
	if err := keyring.Set(testService, "test", "test"); err == nil {
		_ = keyring.Delete(testService, "test")
		return &KeychainCredentialStore{
			service: KeyringService,
			account: KeyringAccount,
		}
	}

	// Fall back to a file store
	return &FileCredentialStore{path: credentialsPath()}
}

// KeychainCredentialStore uses macOS keychain / Linux secret service /
// Windows credential manager via go-keyring.
type KeychainCredentialStore struct {
	service string
	account string
}

// Get reads credentials from the keychain.
func (s *KeychainCredentialStore) Get() (*Credentials, error) {
	raw, err := keyring.Get(s.service, s.account)
	if err != nil {
		if wferrors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoCredentials
		}
		return nil, wferrors.Wrap(err, "keychain read failed")
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, wferrors.Wrap(err, "stored credentials are corrupt")
	}
	return &creds, nil
}

// Set writes credentials to the keychain.
func (s *KeychainCredentialStore) Set(creds *Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return wferrors.Wrap(err, "could not encode credentials")
	}
	if err := keyring.Set(s.service, s.account, string(raw)); err != nil {
		return wferrors.Wrap(err, "keychain write failed")
	}
	return nil
}

// Clear removes credentials from the keychain.
func (s *KeychainCredentialStore) Clear() error {
	if err := keyring.Delete(s.service, s.account); err != nil && !wferrors.Is(err, keyring.ErrNotFound) {
		return wferrors.Wrap(err, "keychain delete failed")
	}
	return nil
}

// FileCredentialStore stores credentials in a mode-0600 JSON file for
// systems without a usable keychain.
type FileCredentialStore struct {
	path string
}

// Get reads credentials from the file.
func (s *FileCredentialStore) Get() (*Credentials, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCredentials
		}
		return nil, wferrors.Wrap(err, "credentials file read failed")
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, wferrors.Wrap(err, "stored credentials are corrupt")
	}
	return &creds, nil
}

// Set writes credentials to the file.
func (s *FileCredentialStore) Set(creds *Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return wferrors.Wrap(err, "could not encode credentials")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return wferrors.Wrap(err, "could not create credentials directory")
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return wferrors.Wrap(err, "credentials file write failed")
	}
	return nil
}

// Clear removes the credentials file.
func (s *FileCredentialStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return wferrors.Wrap(err, "credentials file delete failed")
	}
	return nil
}

func credentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, CredentialsDir, CredentialsFile)
}
