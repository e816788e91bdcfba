package storage

import (
	"context"
	"errors"

	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
	"gorm.io/gorm"
)

// Ensure interface compliance
var _ ports.UserRepository = (*UserRepo)(nil)

// UserRepo persists user accounts. It is a facet of the SQLite adapter with
// its own type because its GetByID signature differs from the vulnerability
// store's.
type UserRepo struct {
	db *gorm.DB
}

// Users returns the account repository facet of the adapter.
func (a *SQLiteAdapter) Users() *UserRepo {
	return &UserRepo{db: a.db}
}

// Save creates or updates a user.
func (r *UserRepo) Save(ctx context.Context, user domain.User) error {
	return r.db.WithContext(ctx).Save(&user).Error
}

// GetByUsername retrieves a user by their username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Count returns the number of provisioned users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
