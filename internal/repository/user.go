package repository

import (
	"context"
	"pageturn/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetResetOTP(ctx context.Context, userID string, otp int, expiresAt time.Time) error
	ResetPassword(ctx context.Context, userID string, otp int, passwordHash string) error
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepoImpl) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) SetResetOTP(ctx context.Context, userID string, otp int, expiresAt time.Time) error {
	result := r.db.
		WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"verification_otp":       otp,
			"reset_password_expires": expiresAt,
			"updated_at":             time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ResetPassword replaces the password hash and clears the reset code. It only
// applies while the stored code still equals otp, so a code is consumed once.
func (r *userRepoImpl) ResetPassword(ctx context.Context, userID string, otp int, passwordHash string) error {
	result := r.db.
		WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND verification_otp = ? AND verification_otp <> 0", userID, otp).
		Updates(map[string]interface{}{
			"password_hash":          passwordHash,
			"verification_otp":       0,
			"reset_password_expires": nil,
			"updated_at":             time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
