package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
)

// Service проверяет токены и выполняет ленивые переходы статуса пользователя
type Service struct {
	userRepo         UserRepository
	secret           []byte
	tokenTTL         time.Duration
	inactivityPeriod time.Duration
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(
	userRepo UserRepository,
	secret string,
	tokenTTL time.Duration,
	inactivityPeriod time.Duration,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		userRepo:         userRepo,
		secret:           []byte(secret),
		tokenTTL:         tokenTTL,
		inactivityPeriod: inactivityPeriod,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// IssueToken подписывает HS256 токен для пользователя
func (s *Service) IssueToken(userID uuid.UUID, email string, role domain.Role) (string, error) {
	now := s.timeProvider.Now()
	claims := Claims{
		UserID: userID.String(),
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}
	return token, nil
}

// Authorize проверяет токен и статус пользователя.
// Истёкшая приостановка снимается, долгое отсутствие переводит в INACTIVE (запрос продолжается).
func (s *Service) Authorize(ctx context.Context, rawToken string) (*Principal, error) {
	claims, err := s.parse(rawToken)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		s.logger.Warn("Authorize: token carries invalid userId=%q", claims.UserID)
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Authorize: user id=%s not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Authorize: failed to get user id=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if user.IsDeleted {
		s.logger.Warn("Authorize: user id=%s is deleted", userID)
		return nil, ErrAccountDeleted
	}

	now := s.timeProvider.Now()

	switch user.Status {
	case domain.UserSuspended:
		if !user.IsSuspensionElapsed(now) {
			s.logger.Warn("Authorize: user id=%s is suspended until %s", userID, user.SuspendedUntil.Format(time.RFC3339))
			return nil, fmt.Errorf("%w until %s", ErrAccountSuspended, user.SuspendedUntil.Format(time.RFC3339))
		}
		if err := s.userRepo.UpdateStatus(ctx, userID, domain.UserActive, nil); err != nil {
			s.logger.Error("Authorize: failed to reactivate user id=%s: %v", userID, err)
			return nil, fmt.Errorf("%w: failed to reactivate user: %v", ErrInternal, err)
		}
		s.logger.Info("Authorize: suspension of user id=%s is over, status set to ACTIVE", userID)
		user.Status = domain.UserActive
		user.SuspendedUntil = nil

	case domain.UserBlocked:
		s.logger.Warn("Authorize: user id=%s is blocked", userID)
		return nil, ErrAccountBlocked
	}

	if user.Status == domain.UserActive && user.IsInactiveFor(s.inactivityPeriod, now) {
		if err := s.userRepo.UpdateStatus(ctx, userID, domain.UserInactive, nil); err != nil {
			s.logger.Error("Authorize: failed to mark user id=%s inactive: %v", userID, err)
			return nil, fmt.Errorf("%w: failed to mark user inactive: %v", ErrInternal, err)
		}
		s.logger.Info("Authorize: user id=%s has no login for more than %s, status set to INACTIVE",
			userID, s.inactivityPeriod)
	}

	return &Principal{
		UserID: userID,
		Role:   claims.Role,
		Email:  claims.Email,
	}, nil
}

func (s *Service) parse(rawToken string) (*Claims, error) {
	tokenString := strings.TrimSpace(rawToken)
	if len(tokenString) > 7 && strings.EqualFold(tokenString[:7], "Bearer ") {
		tokenString = strings.TrimSpace(tokenString[7:])
	}
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.timeProvider.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		s.logger.Warn("Authorize: token rejected: %v", err)
		return nil, ErrInvalidToken
	}

	switch claims.Role {
	case domain.RoleCustomer, domain.RoleStylist, domain.RoleAdmin:
	default:
		s.logger.Warn("Authorize: token carries unknown role=%q", claims.Role)
		return nil, ErrInvalidToken
	}

	return claims, nil
}
