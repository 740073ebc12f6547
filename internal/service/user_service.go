package service

import (
	"errors"
	"fmt"
	"strings"

	"go-pos-backend/internal/logger"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/validator"

	"go.uber.org/zap"
)

type UserService interface {
	CreateUser(req *CreateUserRequest) (*model.User, error)
	DeleteUser(userID, callerID uint) error
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uint) (*model.UserResponse, error)
	SetPassword(userID uint, password string) error
	SeedDefaults(managerPassword, sellerPassword string) error
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=manager seller"`
}

// SessionTerminator ends every session of a user.
type SessionTerminator interface {
	DeleteUser(userID uint) int
}

type userService struct {
	userRepo repository.UserRepository
	sessions SessionTerminator
}

func NewUserService(userRepo repository.UserRepository, sessions SessionTerminator) UserService {
	return &userService{userRepo: userRepo, sessions: sessions}
}

func (s *userService) CreateUser(req *CreateUserRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidUser, validator.Describe(errs))
	}
	if len(req.Password) < model.MinPasswordLength {
		return nil, model.ErrWeakPassword
	}

	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateUsername
	}

	user := &model.User{Username: req.Username, Role: req.Role}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Get().Info("user created", zap.String("username", user.Username), zap.String("role", user.Role))
	return user, nil
}

// DeleteUser refuses to remove the initial manager or the caller's own account.
func (s *userService) DeleteUser(userID, callerID uint) error {
	if userID == model.ProtectedUserID {
		return model.ErrProtectedUser
	}
	if userID == callerID {
		return model.ErrSelfDelete
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return err
	}
	if s.sessions != nil {
		s.sessions.DeleteUser(userID)
	}
	logger.Get().Info("user deleted", zap.Uint("user_id", userID), zap.Uint("by", callerID))
	return nil
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, nil
}

func (s *userService) GetUserByID(id uint) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// SetPassword replaces a password without checking the old one. Used by the
// reset-password command.
func (s *userService) SetPassword(userID uint, password string) error {
	if len(password) < model.MinPasswordLength {
		return model.ErrWeakPassword
	}
	var u model.User
	if err := u.SetPassword(password); err != nil {
		return errors.New("failed to hash password")
	}
	return s.userRepo.UpdatePassword(userID, u.Password)
}

// SeedDefaults creates the manager and seller accounts when absent. On an
// empty store the manager gets id 1 and is therefore protected.
func (s *userService) SeedDefaults(managerPassword, sellerPassword string) error {
	defaults := []CreateUserRequest{
		{Username: model.RoleManager, Password: managerPassword, Role: model.RoleManager},
		{Username: model.RoleSeller, Password: sellerPassword, Role: model.RoleSeller},
	}
	for i := range defaults {
		exists, err := s.userRepo.ExistsByUsername(defaults[i].Username)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := s.CreateUser(&defaults[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", defaults[i].Username, err)
		}
	}
	return nil
}
