package model

import (
	"golang.org/x/crypto/bcrypt"
)

// ProtectedUserID is the initial manager account, which cannot be deleted.
const ProtectedUserID uint = 1

// MinPasswordLength mirrors the cash-desk UI rule.
const MinPasswordLength = 4

// User is a cash-desk operator.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username" validate:"required,notblank"`
	Password string `gorm:"not null" json:"-"` // Hidden from JSON
	Role     string `gorm:"not null" json:"role" validate:"required,oneof=manager seller"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID         uint     `json:"id"`
	Username   string   `json:"username"`
	Role       string   `json:"role"`
	Privileges []string `json:"privileges"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		Privileges: PrivilegesFor(u.Role),
	}
}
