// internal/services/transactor.go
package services

import (
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

// Transactor runs a function inside a single database transaction, rolling
// everything back if the function returns an error. *gorm.DB satisfies it.
type Transactor interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// isUniqueViolation checks whether a PostgreSQL unique-constraint error
// occurred. PostgreSQL error code 23505 = unique_violation.
func isUniqueViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key"))
}
