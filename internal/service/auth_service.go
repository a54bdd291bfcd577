package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-course/internal/config"
	"quiz-course/internal/domain"
	"quiz-course/internal/dto"
	"quiz-course/internal/logger"
	"quiz-course/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenTypeAccess = "access"

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService turns bearer tokens issued by the identity provider into actors.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID string, roles []string, ttl time.Duration) (string, error)
	ActorFromClaims(claims *dto.AuthClaims) domain.Actor
}

type authServiceImpl struct {
	secret    []byte
	adminRole string
}

func NewAuthService(appConfig *config.Config) (AuthService, error) {
	if appConfig.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{
		secret:    []byte(appConfig.JWT.SecretKey),
		adminRole: appConfig.JWT.AdminRole,
	}, nil
}

// CreateJWT signs an access token. The API only consumes tokens; this exists for tooling and tests.
func (s *authServiceImpl) CreateJWT(ctx context.Context, userID string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    userID,
		Roles:     roles,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        util.NewULID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("%w: expected access token, got %q", ErrInvalidJWTToken, claims.TokenType)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidJWTToken)
	}
	return claims, nil
}

// ActorFromClaims grants administrative rights when the configured admin role is present.
func (s *authServiceImpl) ActorFromClaims(claims *dto.AuthClaims) domain.Actor {
	actor := domain.Actor{UserID: claims.UserID}
	for _, role := range claims.Roles {
		if role == s.adminRole && s.adminRole != "" {
			actor.IsAdmin = true
			break
		}
	}
	return actor
}
