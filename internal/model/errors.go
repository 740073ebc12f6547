package model

import "errors"

// Error taxonomy shared by the cart, the services and the HTTP layer.
var (
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrIOFailure          = errors.New("backup storage failure")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrProtectedUser      = errors.New("this user cannot be deleted")
	ErrWeakPassword       = errors.New("password must be at least 4 characters")
	ErrInvalidRate        = errors.New("exchange rate must be a positive number")
	ErrInvalidDate        = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidProduct     = errors.New("invalid product data")
	ErrInvalidUser        = errors.New("invalid user data")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
)
