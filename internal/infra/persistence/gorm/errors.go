// Package gormpersistence implements the repository interfaces on GORM/MySQL.
package gormpersistence

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL error 1062: duplicate entry for a unique key.
const mysqlDuplicateEntry = 1062

// isDuplicateEntryError reports whether err is a unique-constraint violation
// from the MySQL driver.
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
