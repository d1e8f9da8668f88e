package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/ports"
)

type UserRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewUserRepository(db *gorm.DB, log *zap.Logger) ports.UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		r.log.Error("Failed to create user", zap.String("username", u.Username), zap.Error(err))
		return translateError(err)
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"username":        u.Username,
			"hashed_password": u.HashedPassword,
		}).Error
	if err != nil {
		r.log.Error("Failed to update user", zap.String("username", u.Username), zap.Error(err))
		return translateError(err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.User{}, "username = ?", username).Error; err != nil {
		r.log.Error("Failed to delete user", zap.String("username", username), zap.Error(err))
		return translateError(err)
	}
	return nil
}
