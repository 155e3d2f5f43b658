package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	UserStatusActive = "Active"
	UserStatusLocked = "Locked"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "user logged in successfully"
	MessageSuccessGetUser  = "user retrieved successfully"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetUser  = "failed to retrieve user"

	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserLocked         = fmt.Errorf("user account is locked: %w", ErrForbidden)
)

type (
	RegisterRequest struct {
		FullName    string `json:"full_name" validate:"required,max=100"`
		Email       string `json:"email" validate:"required,email,max=256"`
		Password    string `json:"password" validate:"required,min=6"`
		Address     string `json:"address" validate:"omitempty,max=100"`
		PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserResponse struct {
		ID          string    `json:"id"`
		FullName    string    `json:"full_name"`
		Email       string    `json:"email"`
		Address     string    `json:"address"`
		PhoneNumber string    `json:"phone_number,omitempty"`
		Status      string    `json:"status"`
		Role        string    `json:"role"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
