package library

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "fittrack"   // service name in the OS credential store
	tokenKey       = "github_pat" // key under which the PAT is stored

	minTokenLen = 20
)

// tokenPrefixes are the type prefixes GitHub puts on its tokens: classic
// PATs (ghp_), fine-grained PATs (github_pat_), OAuth (gho_),
// user-to-server (ghu_) and server-to-server (ghs_) tokens.
var tokenPrefixes = []string{"ghp_", "github_pat_", "gho_", "ghu_", "ghs_"}

// TokenStore keeps the GitHub token used for private card repositories in
// the OS credential store (Keychain, Secret Service, Windows Credential
// Manager), never in the config file.
type TokenStore struct {
	service string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{service: keyringService}
}

// SaveToken validates and stores a GitHub Personal Access Token.
func (ts *TokenStore) SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := checkTokenShape(token); err != nil {
		return fmt.Errorf("invalid token format: %w", err)
	}
	if err := keyring.Set(ts.service, tokenKey, token); err != nil {
		return fmt.Errorf("credential store write failed: %w", err)
	}
	return nil
}

// Token retrieves the stored GitHub Personal Access Token.
func (ts *TokenStore) Token() (string, error) {
	token, err := keyring.Get(ts.service, tokenKey)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", fmt.Errorf("no GitHub token found - add one with 'fittrack auth set-token'")
	case err != nil:
		return "", fmt.Errorf("credential store read failed: %w", err)
	case strings.TrimSpace(token) == "":
		return "", fmt.Errorf("stored token is empty - update it with 'fittrack auth set-token'")
	}
	return token, nil
}

// ForgetToken removes the stored token. Forgetting a token that does not
// exist is not an error.
func (ts *TokenStore) ForgetToken() error {
	if err := keyring.Delete(ts.service, tokenKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("credential store delete failed: %w", err)
	}
	return nil
}

// HasToken reports whether a token is stored without retrieving it.
func (ts *TokenStore) HasToken() bool {
	_, err := keyring.Get(ts.service, tokenKey)
	return err == nil
}

// checkTokenShape enforces minimum length and a known GitHub token type
// prefix.
func checkTokenShape(token string) error {
	if len(strings.TrimSpace(token)) < minTokenLen {
		return fmt.Errorf("token too short (minimum %d characters)", minTokenLen)
	}
	known := slices.ContainsFunc(tokenPrefixes, func(p string) bool {
		return strings.HasPrefix(token, p)
	})
	if !known {
		return fmt.Errorf("token does not match expected GitHub PAT format (should start with ghp_ or github_pat_)")
	}
	return nil
}

// StoreHealth reports the result of probing the OS credential store.
type StoreHealth struct {
	Available   bool
	TokenStored bool
	Err         string // set when the store is unavailable
	Warning     string // set when the store works but cleanup failed
}

// CheckStore probes the OS credential store by writing and reading back a
// throwaway value. Used by the auth status command for troubleshooting.
func (ts *TokenStore) CheckStore() StoreHealth {
	const probeKey = "fittrack_probe"
	const probeValue = "probe"

	if err := keyring.Set(ts.service, probeKey, probeValue); err != nil {
		return StoreHealth{Err: err.Error()}
	}

	got, err := keyring.Get(ts.service, probeKey)
	if err != nil || got != probeValue {
		keyring.Delete(ts.service, probeKey)
		if err == nil {
			err = fmt.Errorf("credential store corrupted - values don't match")
		}
		return StoreHealth{Err: err.Error()}
	}

	health := StoreHealth{Available: true, TokenStored: ts.HasToken()}
	if err := keyring.Delete(ts.service, probeKey); err != nil {
		health.Warning = "credential store works but cleanup failed: " + err.Error()
	}
	return health
}
