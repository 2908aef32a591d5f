package service

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection

	"control_gastos/internal/domain" // Importing domain models
	"control_gastos/internal/store"  // Store errors
	"control_gastos/internal/utils"  // Token issuing

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// UserStore is the persistence the auth service depends on
type UserStore interface {
	FindUser(ctx context.Context, username string) (*domain.User, error)
	UserExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, user *domain.User) error
}

// AuthService registers users and checks their credentials
type AuthService struct {
	users  UserStore
	tokens *utils.TokenIssuer
	cost   int // bcrypt cost
}

// NewAuthService wires the service; cost <= 0 selects bcrypt.DefaultCost
func NewAuthService(users UserStore, tokens *utils.TokenIssuer, cost int) *AuthService {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, tokens: tokens, cost: cost}
}

// Register creates the user and reports true, or reports false when the username exists
func (a *AuthService) Register(ctx context.Context, username, password string) (bool, error) {
	exists, err := a.users.UserExists(ctx, username)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return false, &ValidationError{Field: "password", Message: "La contraseña no puede tener más de 72 bytes"}
	}
	if err != nil {
		return false, err
	}
	// The unique index still settles two registrations racing past the check above
	err = a.users.CreateUser(ctx, &domain.User{Username: username, Password: string(hash)})
	if errors.Is(err, store.ErrDuplicateUser) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	logrus.WithField("username", username).Info("User registered")
	return true, nil
}

// ValidateCredentials reports whether username exists and password matches its stored hash
func (a *AuthService) ValidateCredentials(ctx context.Context, username, password string) (bool, error) {
	user, err := a.users.FindUser(ctx, username)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil, nil
}

// Login checks the credentials and issues a token whose subject is the username
func (a *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := a.ValidateCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		logrus.WithField("username", username).Warn("Failed login")
		return "", ErrInvalidCredentials
	}
	return a.tokens.GenerateJWT(username)
}
