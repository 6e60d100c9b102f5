package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookstore/storefront/internal/db"
	"github.com/bookstore/storefront/internal/repo"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials is returned when the username or password is wrong
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidInput is returned when registration data is incomplete
	ErrInvalidInput = errors.New("username and password are required")

	// ErrCustomerExists is returned when the username or email is taken
	ErrCustomerExists = repo.ErrCustomerExists
)

// Service registers customers and logs them in.
type Service struct {
	accounts *repo.AccountRepository
	hasher   *PasswordHasher
	sessions *SessionManager
	log      *zap.Logger
}

// NewService creates an account service.
func NewService(accounts *repo.AccountRepository, hasher *PasswordHasher, sessions *SessionManager, log *zap.Logger) *Service {
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		sessions: sessions,
		log:      log,
	}
}

// Register creates a customer. An empty email is stored as NULL.
func (s *Service) Register(ctx context.Context, username, password, email string) (*db.Customer, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if errors.Is(err, ErrPasswordTooLong) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := &db.Customer{Username: username, PasswordHash: hash}
	if email != "" {
		customer.Email = &email
	}

	if err := s.accounts.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// Login checks the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*db.Customer, string, error) {
	customer, err := s.accounts.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrCustomerNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !s.hasher.Verify(password, customer.PasswordHash) {
		s.log.Info("Login rejected", zap.String("username", customer.Username))
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(customer.ID, customer.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	s.log.Info("Customer logged in", zap.Uint("customer_id", customer.ID))
	return customer, token, nil
}
