package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые различают репозитории
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// IsUniqueViolation нарушение уникального ограничения
func IsUniqueViolation(err error) bool {
	return hasCode(err, CodeUniqueViolation)
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, CodeForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
