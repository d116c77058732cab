// Package auth manages email/password accounts stored in the accounts
// document, with bearer-token sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"yt-curator/internal/blob"
	"yt-curator/internal/models"
	"yt-curator/internal/sessions"
)

var (
	ErrMissingCredentials = errors.New("auth: email and password required")
	ErrWeakPassword       = errors.New("auth: password must be at least 6 characters")
	ErrAccountExists      = errors.New("auth: account already exists")
	ErrAccountNotFound    = errors.New("auth: account not found")
	ErrInvalidPassword    = errors.New("auth: invalid password")
	ErrStoreUnavailable   = errors.New("auth: account store unavailable")
)

// Service manages accounts and sessions.
type Service struct {
	store    blob.Store
	docID    string
	sessions sessions.Store
	now      func() time.Time
}

func NewService(store blob.Store, docID string, sessionStore sessions.Store) *Service {
	return &Service{store: store, docID: docID, sessions: sessionStore, now: time.Now}
}

// Signup creates an account and logs it in. Emails are normalized to
// lowercase.
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}
	if len(password) < 6 {
		return "", ErrWeakPassword
	}
	email = normalizeEmail(email)

	accounts := s.loadAccounts(ctx)
	if _, exists := accounts.Users[email]; exists {
		return "", ErrAccountExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}
	accounts.Users[email] = models.Account{
		PasswordHash: hash,
		CreatedAt:    s.now().UnixMilli(),
	}

	if err := s.saveAccounts(ctx, accounts); err != nil {
		return "", ErrStoreUnavailable
	}

	return s.openSession(ctx, email)
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}
	email = normalizeEmail(email)

	accounts := s.loadAccounts(ctx)
	account, ok := accounts.Users[email]
	if !ok {
		return "", ErrAccountNotFound
	}
	if !VerifyPassword(account.PasswordHash, password) {
		return "", ErrInvalidPassword
	}

	return s.openSession(ctx, email)
}

// Verify resolves a session token to its principal.
func (s *Service) Verify(ctx context.Context, token string) (sessions.Principal, bool) {
	if token == "" {
		return sessions.Principal{}, false
	}
	p, ok, err := s.sessions.Get(ctx, token)
	if err != nil {
		log.Printf("auth: session lookup: %v", err)
		return sessions.Principal{}, false
	}
	return p, ok
}

// Logout discards a session. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		log.Printf("auth: logout: %v", err)
	}
}

func (s *Service) openSession(ctx context.Context, email string) (string, error) {
	token := sessions.NewToken()
	err := s.sessions.Put(ctx, token, sessions.Principal{Email: email, Created: s.now()})
	if err != nil {
		return "", fmt.Errorf("auth: open session: %w", err)
	}
	return token, nil
}

func (s *Service) loadAccounts(ctx context.Context) *models.Accounts {
	accounts := models.NewAccounts()
	if err := s.store.Get(ctx, s.docID, accounts); err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			log.Printf("auth: accounts read degraded to empty: %v", err)
		}
		return models.NewAccounts()
	}
	if accounts.Users == nil {
		accounts.Users = map[string]models.Account{}
	}
	return accounts
}

func (s *Service) saveAccounts(ctx context.Context, accounts *models.Accounts) error {
	if err := s.store.Put(ctx, s.docID, accounts); err != nil {
		log.Printf("auth: accounts put failed, trying create: %v", err)
		if _, cerr := s.store.Create(ctx, accounts); cerr != nil {
			return cerr
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
