// Package store holds the process-lifetime in-memory state: the credential
// store and the movie catalog. Both are safe for concurrent use.
package store

import (
	"errors"
	"sync"

	"github.com/isdelr/movie-catalog-be/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(plaintext, hash string) bool
}

type accountRecord struct {
	account      models.Account
	passwordHash string
}

// AccountStore maps identities to accounts. Password hashes never leave it.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*accountRecord
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[string]*accountRecord)}
}

// Insert adds account with passwordHash unless the identity is taken.
// The existence check and the insert happen under one lock.
func (s *AccountStore) Insert(account models.Account, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Username]; exists {
		return ErrAlreadyExists
	}
	s.accounts[account.Username] = &accountRecord{account: account, passwordHash: passwordHash}
	return nil
}

// Get returns a copy of the account for identity.
func (s *AccountStore) Get(identity string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.accounts[identity]
	if !ok {
		return models.Account{}, ErrNotFound
	}
	return rec.account, nil
}

// CheckPassword verifies plaintext against the stored hash of identity.
// The hash is read under the lock; the comparison itself runs unlocked.
func (s *AccountStore) CheckPassword(identity, plaintext string, verifier PasswordVerifier) (models.Account, bool, error) {
	s.mu.RLock()
	rec, ok := s.accounts[identity]
	var account models.Account
	var hash string
	if ok {
		account, hash = rec.account, rec.passwordHash
	}
	s.mu.RUnlock()

	if !ok {
		return models.Account{}, false, ErrNotFound
	}
	return account, verifier.Verify(plaintext, hash), nil
}

// SetActive sets the active flag and reports whether it changed.
func (s *AccountStore) SetActive(identity string, active bool) (models.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.accounts[identity]
	if !ok {
		return models.Account{}, false, ErrNotFound
	}
	changed := rec.account.Active != active
	rec.account.Active = active
	return rec.account, changed, nil
}

// Len returns the number of accounts.
func (s *AccountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
