package repository

import (
	"errors"

	"go-pos-backend/internal/model"
	"go-pos-backend/pkg/database"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByUsername(username string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	Create(user *model.User) error
	Delete(id uint) error
	UpdatePassword(userID uint, hashedPassword string) error
	FindAll() ([]model.User, error)
	ExistsByUsername(username string) (bool, error)
}

type userRepo struct {
	conn database.Conn
}

func NewUserRepo(conn database.Conn) UserRepository {
	return &userRepo{conn}
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.conn.DB().Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.conn.DB().First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ExistsByUsername(username string) (bool, error) {
	var n int64
	err := r.conn.DB().Model(&model.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

// Create relies on the unique index, so a racing duplicate still surfaces as
// ErrDuplicateUsername.
func (r *userRepo) Create(user *model.User) error {
	err := r.conn.DB().Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.ErrDuplicateUsername
	}
	return err
}

func (r *userRepo) UpdatePassword(userID uint, hashedPassword string) error {
	res := r.conn.DB().Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *userRepo) Delete(id uint) error {
	res := r.conn.DB().Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.conn.DB().Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
