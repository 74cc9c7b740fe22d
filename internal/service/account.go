package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/qaforum/qaforum-go/internal/apperr"
	"github.com/qaforum/qaforum-go/internal/model"
	"github.com/qaforum/qaforum-go/internal/repository"
)

var (
	ErrEmailRequired    = apperr.New(apperr.KindValidation, "email is required")
	ErrPasswordRequired = apperr.New(apperr.KindValidation, "password is required")
	ErrEmailTaken       = apperr.New(apperr.KindConflict, "email already taken")
	ErrAccountNotFound  = apperr.New(apperr.KindCredential, "account not found")
	ErrWrongPassword    = apperr.New(apperr.KindCredential, "wrong password")
)

// AccountStore persists accounts.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// TokenIssuer issues session tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(accountID int64) (string, error)
}

// AccountService handles registration and login.
type AccountService struct {
	store  AccountStore
	hasher PasswordHasher
	tokens TokenIssuer
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService creates a new AccountService.
func NewAccountService(store AccountStore, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register hashes the password and stores a new account, returning its id.
// The plaintext password never reaches the store.
func (s *AccountService) Register(ctx context.Context, email, password string) (int64, error) {
	if email == "" {
		return 0, ErrEmailRequired
	}
	if password == "" {
		return 0, ErrPasswordRequired
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, err
	}

	account := &model.Account{Email: email, Password: hash}
	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}

	s.logger.InfoContext(ctx, "account registered", "account_id", account.ID)
	return account.ID, nil
}

// Login checks the credentials and returns a fresh session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// Same hashing cost as a wrong password.
			s.verifyDummy(password)
			return "", ErrAccountNotFound
		}
		return "", err
	}

	match, err := s.hasher.Verify(password, account.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored password hash is unreadable", "account_id", account.ID, "error", err)
		return "", err
	}
	if !match {
		return "", ErrWrongPassword
	}

	return s.tokens.Issue(account.ID)
}

func (s *AccountService) verifyDummy(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			s.logger.Error("cannot build dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}
