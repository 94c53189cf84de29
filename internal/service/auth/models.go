package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Principal проверенный пользователь запроса
type Principal struct {
	UserID uuid.UUID
	Role   domain.Role
	Email  string
}

// HasRole true, если роль входит в список. Пустой список разрешает любую роль
func (p *Principal) HasRole(roles ...domain.Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Claims полезная нагрузка access-токена
type Claims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}
