package repo

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, classify("count users by username", err)
	}
	return n > 0, nil
}

func (r *GormRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, classify("count users by email", err)
	}
	return n > 0, nil
}

// CreateUser inserts u. A unique violation from a concurrent registration is
// reported as the same duplicate error the pre-insert checks would give.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Create(u).Error
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) {
		return classify("create user", err)
	}

	taken, lookupErr := r.UsernameTaken(ctx, u.Username)
	if lookupErr != nil {
		return lookupErr
	}
	if taken {
		return domain.ErrDuplicateUsername
	}
	return domain.ErrDuplicateEmail
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, classify("get user", err)
	}
	return &user, nil
}
