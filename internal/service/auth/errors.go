package auth

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrMissingToken возвращается, когда токен не передан
	ErrMissingToken = fmt.Errorf("%w: you are not authorized", domain.ErrUnauthorized)

	// ErrInvalidToken возвращается для неподписанного, просроченного или некорректного токена
	ErrInvalidToken = fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)

	// ErrUserNotFound возвращается, когда пользователь из токена не найден
	ErrUserNotFound = fmt.Errorf("%w: user not found", domain.ErrUnauthorized)

	// ErrAccountDeleted возвращается для удалённых пользователей
	ErrAccountDeleted = fmt.Errorf("%w: your account has been deleted", domain.ErrForbidden)

	// ErrAccountSuspended возвращается, пока не истекла приостановка
	ErrAccountSuspended = fmt.Errorf("%w: account suspended", domain.ErrForbidden)

	// ErrAccountBlocked возвращается для заблокированных пользователей
	ErrAccountBlocked = fmt.Errorf("%w: your account is blocked", domain.ErrForbidden)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: auth: internal error", domain.ErrInternal)
)
