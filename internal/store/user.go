package store

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"control_gastos/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// FindUser looks a user up by exact username, returning nil when absent
func (s *Store) FindUser(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// UserExists reports whether the username is taken
func (s *Store) UserExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

// CreateUser inserts a user, returning ErrDuplicateUser when the unique index rejects it
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUser
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
