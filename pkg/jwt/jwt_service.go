package jwt

import (
	"errors"
	"fmt"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeReset   = "reset"

	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
	DefaultResetTokenTTL   = time.Hour
)

type (
	JWTService interface {
		GenerateAccessToken(userID string) (string, error)
		GenerateRefreshToken(userID string) (string, error)
		GetUserIDByToken(token string) (string, error)
		GetUserIDByRefreshToken(token string) (string, error)
		GenerateResetToken(email string, duration time.Duration) (string, error)
		ValidateResetToken(token string) (string, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Type   string `json:"type"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey  string
		issuer     string
		accessTTL  time.Duration
		refreshTTL time.Duration
		now        func() time.Time
	}
)

func NewJWTService() JWTService {
	return NewJWTServiceWithSecret(
		utils.GetConfig("JWT_SECRET"),
		utils.GetConfigDuration("ACCESS_TOKEN_TTL", DefaultAccessTokenTTL),
		utils.GetConfigDuration("REFRESH_TOKEN_TTL", DefaultRefreshTokenTTL),
	)
}

func NewJWTServiceWithSecret(secretKey string, accessTTL, refreshTTL time.Duration) JWTService {
	return &jwtService{
		secretKey:  secretKey,
		issuer:     "FRESHTRACK",
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (j *jwtService) GenerateAccessToken(userID string) (string, error) {
	return j.sign(userID, TokenTypeAccess, j.accessTTL)
}

func (j *jwtService) GenerateRefreshToken(userID string) (string, error) {
	return j.sign(userID, TokenTypeRefresh, j.refreshTTL)
}

// GenerateResetToken signs a password reset token. The subject is the email.
func (j *jwtService) GenerateResetToken(email string, duration time.Duration) (string, error) {
	claims := jwtUserClaim{
		Type: TokenTypeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(j.now().Add(duration)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(j.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
}

func (j *jwtService) sign(userID, tokenType string, ttl time.Duration) (string, error) {
	claims := jwtUserClaim{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(j.now().Add(ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(j.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) validate(token, tokenType string) (*jwtUserClaim, error) {
	claims := &jwtUserClaim{}
	t_Token, err := jwt.ParseWithClaims(token, claims, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid || claims.Type != tokenType || claims.Issuer != j.issuer {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// GetUserIDByToken accepts access tokens only.
func (j *jwtService) GetUserIDByToken(token string) (string, error) {
	claims, err := j.validate(token, TokenTypeAccess)
	if err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (j *jwtService) GetUserIDByRefreshToken(token string) (string, error) {
	claims, err := j.validate(token, TokenTypeRefresh)
	if err != nil {
		return "", domain.ErrInvalidRefreshToken
	}
	if claims.UserID == "" {
		return "", domain.ErrInvalidRefreshToken
	}
	return claims.UserID, nil
}

func (j *jwtService) ValidateResetToken(token string) (string, error) {
	claims, err := j.validate(token, TokenTypeReset)
	if err != nil || claims.Subject == "" {
		return "", domain.ErrInvalidResetToken
	}
	return claims.Subject, nil
}
