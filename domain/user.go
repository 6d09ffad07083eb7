package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	TokenTypeBearer = "bearer"

	DefaultHouseholdSize         = 2
	DefaultCookingSkillLevel     = 3
	DefaultExpirationWarningDays = 3

	AppleRelayEmailDomain = "privaterelay.appleid.com"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessAppleSignIn    = "apple sign in successful"
	MessageSuccessRefreshToken   = "token refreshed successfully"
	MessageSuccessLogout         = "successfully logged out"
	MessageSuccessGetUser        = "user retrieved successfully"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessForgotPassword = "if the email is registered, a reset link has been sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedAppleSignIn    = "failed to sign in with apple"
	MessageFailedRefreshToken   = "failed to refresh token"
	MessageFailedGetUser        = "failed to retrieve user"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedForgotPassword = "failed to send reset password email"
	MessageFailedResetPassword  = "failed to reset password"

	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailAlreadyExists    = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrInvalidCredentials    = fmt.Errorf("incorrect email or password: %w", ErrUnauthorized)
	ErrUserInactive          = fmt.Errorf("user account is disabled: %w", ErrForbidden)
	ErrInvalidRefreshToken   = fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	ErrInvalidResetToken     = fmt.Errorf("invalid reset password token: %w", ErrUnauthorized)
	ErrHashPasswordFailed    = errors.New("failed to hash password")
	ErrSendResetEmailFailure = errors.New("failed to send reset email")
)

type (
	RegisterRequest struct {
		Email    string  `json:"email" validate:"required,email"`
		Password string  `json:"password" validate:"required,min=8,max=100"`
		FullName *string `json:"full_name" validate:"omitempty,max=255"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AppleSignInRequest struct {
		IdentityToken     string  `json:"identity_token" validate:"required"`
		AuthorizationCode string  `json:"authorization_code" validate:"required"`
		UserIdentifier    string  `json:"user_identifier" validate:"required"`
		Email             *string `json:"email" validate:"omitempty,email"`
		FullName          *string `json:"full_name" validate:"omitempty,max=255"`
	}

	RefreshTokenRequest struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8,max=100"`
	}

	UpdateUserRequest struct {
		FullName              *string  `json:"full_name" validate:"omitempty,max=255"`
		HouseholdSize         *int     `json:"household_size" validate:"omitempty,min=1,max=20"`
		CookingSkillLevel     *int     `json:"cooking_skill_level" validate:"omitempty,min=1,max=5"`
		DietaryRestrictions   []string `json:"dietary_restrictions"`
		Allergies             []string `json:"allergies"`
		PreferredCuisines     []string `json:"preferred_cuisines"`
		NotificationsEnabled  *bool    `json:"notifications_enabled"`
		ExpirationWarningDays *int     `json:"expiration_warning_days" validate:"omitempty,min=1,max=14"`
	}

	UserResponse struct {
		ID                    string     `json:"id"`
		Email                 string     `json:"email"`
		FullName              *string    `json:"full_name"`
		HouseholdSize         int        `json:"household_size"`
		CookingSkillLevel     int        `json:"cooking_skill_level"`
		DietaryRestrictions   []string   `json:"dietary_restrictions"`
		Allergies             []string   `json:"allergies"`
		PreferredCuisines     []string   `json:"preferred_cuisines"`
		NotificationsEnabled  bool       `json:"notifications_enabled"`
		ExpirationWarningDays int        `json:"expiration_warning_days"`
		IsActive              bool       `json:"is_active"`
		IsVerified            bool       `json:"is_verified"`
		LastLoginAt           *time.Time `json:"last_login_at"`
		CreatedAt             time.Time  `json:"created_at"`
	}

	TokenResponse struct {
		AccessToken  string       `json:"access_token"`
		RefreshToken string       `json:"refresh_token"`
		TokenType    string       `json:"token_type"`
		User         UserResponse `json:"user"`
	}

	TokenPairResponse struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
	}
)
