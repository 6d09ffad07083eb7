package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/entities"
	"freshtrack-backend/internal/utils/mailing"
	"freshtrack-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.TokenResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error)
		AppleSignIn(ctx context.Context, req domain.AppleSignInRequest) (domain.TokenResponse, error)
		RefreshToken(ctx context.Context, req domain.RefreshTokenRequest) (domain.TokenPairResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		appURL         string
		now            func() time.Time
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer, appURL string) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		appURL:         appURL,
		now:            time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.NewValidationError("password", "must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrHashPasswordFailed, err)
	}
	return string(hashed), nil
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.TokenResponse, error) {
	email := normalizeEmail(req.Email)

	_, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return domain.TokenResponse{}, domain.ErrEmailAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TokenResponse{}, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return domain.TokenResponse{}, err
	}

	now := s.now().UTC()
	user := newUser(email, req.FullName, now)
	user.HashedPassword = &hashed
	user.LastLoginAt = &now

	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		return domain.TokenResponse{}, err
	}
	return s.issueTokens(user)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TokenResponse{}, domain.ErrInvalidCredentials
		}
		return domain.TokenResponse{}, err
	}

	if user.HashedPassword == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(req.Password)) != nil {
		return domain.TokenResponse{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return domain.TokenResponse{}, domain.ErrUserInactive
	}

	now := s.now().UTC()
	user.LastLoginAt = &now
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.TokenResponse{}, err
	}
	return s.issueTokens(user)
}

// AppleSignIn trusts the identifiers sent by the client. The identity token
// is not verified against Apple.
func (s *userService) AppleSignIn(ctx context.Context, req domain.AppleSignInRequest) (domain.TokenResponse, error) {
	now := s.now().UTC()

	user, err := s.userRepository.GetUserByAppleID(ctx, req.UserIdentifier)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.linkOrCreateAppleUser(ctx, req, now)
		if err != nil {
			return domain.TokenResponse{}, err
		}
	default:
		return domain.TokenResponse{}, err
	}

	if !user.IsActive {
		return domain.TokenResponse{}, domain.ErrUserInactive
	}

	user.LastLoginAt = &now
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.TokenResponse{}, err
	}
	return s.issueTokens(user)
}

func (s *userService) linkOrCreateAppleUser(ctx context.Context, req domain.AppleSignInRequest, now time.Time) (*entities.User, error) {
	appleID := req.UserIdentifier

	if req.Email != nil && *req.Email != "" {
		existing, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(*req.Email))
		if err == nil {
			existing.AppleUserID = &appleID
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	email := fmt.Sprintf("%s@%s", appleID, domain.AppleRelayEmailDomain)
	if req.Email != nil && *req.Email != "" {
		email = *req.Email
	}

	user := newUser(normalizeEmail(email), req.FullName, now)
	user.AppleUserID = &appleID
	user.IsVerified = true
	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) RefreshToken(ctx context.Context, req domain.RefreshTokenRequest) (domain.TokenPairResponse, error) {
	rawID, err := s.jwtService.GetUserIDByRefreshToken(req.RefreshToken)
	if err != nil {
		return domain.TokenPairResponse{}, domain.ErrInvalidRefreshToken
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.TokenPairResponse{}, domain.ErrInvalidRefreshToken
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TokenPairResponse{}, domain.ErrInvalidRefreshToken
		}
		return domain.TokenPairResponse{}, err
	}
	if !user.IsActive {
		return domain.TokenPairResponse{}, domain.ErrInvalidRefreshToken
	}

	res, err := s.issueTokens(user)
	if err != nil {
		return domain.TokenPairResponse{}, err
	}
	return domain.TokenPairResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    res.TokenType,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}

	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.HouseholdSize != nil {
		user.HouseholdSize = *req.HouseholdSize
	}
	if req.CookingSkillLevel != nil {
		user.CookingSkillLevel = *req.CookingSkillLevel
	}
	if req.DietaryRestrictions != nil {
		user.DietaryRestrictions = req.DietaryRestrictions
	}
	if req.Allergies != nil {
		user.Allergies = req.Allergies
	}
	if req.PreferredCuisines != nil {
		user.PreferredCuisines = req.PreferredCuisines
	}
	if req.NotificationsEnabled != nil {
		user.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.ExpirationWarningDays != nil {
		user.ExpirationWarningDays = *req.ExpirationWarningDays
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// ForgotPassword answers the same way whether or not the email is known.
func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !user.IsActive {
		return nil
	}

	token, err := s.jwtService.GenerateResetToken(user.Email, jwt.DefaultResetTokenTTL)
	if err != nil {
		return err
	}

	subject, body := mailing.ResetPasswordEmail(s.appURL, token)
	if err := s.mailer.SendMail(user.Email, subject, body); err != nil {
		log.Errorw("failed to send reset password email", "user_id", user.ID.String(), "error", err)
		return domain.ErrSendResetEmailFailure
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	email, err := s.jwtService.ValidateResetToken(req.Token)
	if err != nil {
		return domain.ErrInvalidResetToken
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvalidResetToken
		}
		return err
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.HashedPassword = &hashed
	user.UpdatedAt = s.now().UTC()
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) findUser(ctx context.Context, userID string) (*entities.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) issueTokens(user *entities.User) (domain.TokenResponse, error) {
	access, err := s.jwtService.GenerateAccessToken(user.ID.String())
	if err != nil {
		return domain.TokenResponse{}, err
	}
	refresh, err := s.jwtService.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return domain.TokenResponse{}, err
	}
	return domain.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
		User:         toUserResponse(user),
	}, nil
}

func newUser(email string, fullName *string, now time.Time) *entities.User {
	return &entities.User{
		ID:                    uuid.New(),
		Email:                 email,
		FullName:              fullName,
		HouseholdSize:         domain.DefaultHouseholdSize,
		CookingSkillLevel:     domain.DefaultCookingSkillLevel,
		DietaryRestrictions:   []string{},
		Allergies:             []string{},
		PreferredCuisines:     []string{},
		IsActive:              true,
		NotificationsEnabled:  true,
		ExpirationWarningDays: domain.DefaultExpirationWarningDays,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:                    user.ID.String(),
		Email:                 user.Email,
		FullName:              user.FullName,
		HouseholdSize:         user.HouseholdSize,
		CookingSkillLevel:     user.CookingSkillLevel,
		DietaryRestrictions:   orEmpty(user.DietaryRestrictions),
		Allergies:             orEmpty(user.Allergies),
		PreferredCuisines:     orEmpty(user.PreferredCuisines),
		NotificationsEnabled:  user.NotificationsEnabled,
		ExpirationWarningDays: user.ExpirationWarningDays,
		IsActive:              user.IsActive,
		IsVerified:            user.IsVerified,
		LastLoginAt:           user.LastLoginAt,
		CreatedAt:             user.CreatedAt,
	}
}
