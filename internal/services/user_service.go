package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/movie-catalog-be/internal/auth"
	"github.com/isdelr/movie-catalog-be/internal/models"
	"github.com/isdelr/movie-catalog-be/internal/store"
	"github.com/rs/zerolog/log"
)

// MaxPasswordBytes is the longest password accepted at registration.
const MaxPasswordBytes = auth.MaxPasswordBytes

// LoginTokenTTL is the lifetime of tokens issued by Login.
const LoginTokenTTL = 30 * time.Minute

// UserServiceProvider defines the interface for account services.
type UserServiceProvider interface {
	Register(username, email, name, password string) (models.Account, error)
	Login(username, password string) (models.Account, string, error)
	Authorize(token string) (models.Account, error)
	GetAccount(username string) (models.Account, error)
	SetActive(username string, active bool) (models.Account, error)
}

// TokenIssuer issues and validates bearer tokens.
type TokenIssuer interface {
	Issue(identity string, ttl time.Duration) (string, error)
	Validate(token string) (*auth.Claims, error)
}

// UserService runs registration, login and per-request authorization
// against an injected credential store.
type UserService struct {
	accounts *store.AccountStore
	hasher   auth.PasswordHasher
	tokens   TokenIssuer
	events   EventServiceProvider
	loginTTL time.Duration
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService creates a new UserService. loginTTL <= 0 means LoginTokenTTL.
func NewUserService(accounts *store.AccountStore, hasher auth.PasswordHasher, tokens TokenIssuer, events EventServiceProvider, loginTTL time.Duration) *UserService {
	if loginTTL <= 0 {
		loginTTL = LoginTokenTTL
	}
	return &UserService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		events:   events,
		loginTTL: loginTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an inactive account. The password is hashed before the
// store lock is taken; the insert itself rejects a concurrent duplicate.
func (s *UserService) Register(username, email, name, password string) (models.Account, error) {
	if strings.TrimSpace(username) == "" {
		return models.Account{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if password == "" {
		return models.Account{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len(password) > MaxPasswordBytes {
		return models.Account{}, fmt.Errorf("%w: password longer than %d bytes", ErrInvalidInput, MaxPasswordBytes)
	}
	if _, err := s.accounts.Get(username); err == nil {
		return models.Account{}, auth.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		Name:      name,
		Active:    false,
		CreatedAt: s.now(),
	}
	if err := s.accounts.Insert(account, hash); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return models.Account{}, auth.ErrAlreadyExists
		}
		return models.Account{}, err
	}

	s.record("user.registered", "info", fmt.Sprintf("Account '%s' registered", username), username)
	return account, nil
}

// Login verifies credentials and issues a token valid for the login TTL.
// Unknown identities and wrong passwords both yield auth.ErrInvalidCredentials.
func (s *UserService) Login(username, password string) (models.Account, string, error) {
	account, ok, err := s.accounts.CheckPassword(username, password, s.hasher)
	if errors.Is(err, store.ErrNotFound) {
		// Spend the same bcrypt work as a real comparison.
		s.hasher.Verify(password, s.placeholderHash())
		return models.Account{}, "", auth.ErrInvalidCredentials
	}
	if err != nil {
		return models.Account{}, "", err
	}
	if !ok {
		return models.Account{}, "", auth.ErrInvalidCredentials
	}

	account, err = s.activateOnLogin(account)
	if err != nil {
		return models.Account{}, "", err
	}

	token, err := s.tokens.Issue(account.Username, s.loginTTL)
	if err != nil {
		return models.Account{}, "", err
	}

	s.record("user.login", "info", fmt.Sprintf("Account '%s' logged in", username), username)
	return account, token, nil
}

// activateOnLogin is the login step that flips an inactive account to active
// once its password has been checked.
func (s *UserService) activateOnLogin(account models.Account) (models.Account, error) {
	if account.Active {
		return account, nil
	}
	updated, changed, err := s.accounts.SetActive(account.Username, true)
	if errors.Is(err, store.ErrNotFound) {
		return models.Account{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return models.Account{}, err
	}
	if changed {
		log.Info().Str("username", account.Username).Msg("Account activated by login")
		s.record("user.activated", "info", fmt.Sprintf("Account '%s' activated by login", account.Username), account.Username)
	}
	return updated, nil
}

// Authorize validates token and confirms its subject still exists and is active.
func (s *UserService) Authorize(token string) (models.Account, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return models.Account{}, err
	}

	account, err := s.accounts.Get(claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Account{}, auth.ErrInvalidCredentials
		}
		return models.Account{}, err
	}
	if !account.Active {
		return models.Account{}, auth.ErrInactiveAccount
	}
	return account, nil
}

// GetAccount retrieves a single account by identity.
func (s *UserService) GetAccount(username string) (models.Account, error) {
	account, err := s.accounts.Get(username)
	if err != nil {
		return models.Account{}, fmt.Errorf("account %s: %w", username, err)
	}
	return account, nil
}

// SetActive explicitly activates or deactivates an account.
func (s *UserService) SetActive(username string, active bool) (models.Account, error) {
	account, changed, err := s.accounts.SetActive(username, active)
	if err != nil {
		return models.Account{}, fmt.Errorf("account %s: %w", username, err)
	}
	if changed {
		eventType, verb := "user.deactivated", "deactivated"
		if active {
			eventType, verb = "user.activated", "activated"
		}
		s.record(eventType, "info", fmt.Sprintf("Account '%s' %s", username, verb), username)
	}
	return account, nil
}

func (s *UserService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.New().String())
		if err != nil {
			log.Error().Err(err).Msg("Failed to build placeholder password hash")
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *UserService) record(eventType, level, message, username string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, level, message, &username); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
