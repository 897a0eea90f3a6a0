package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DriverFunc builds a GORM dialector from a DSN.
type DriverFunc func(dsn string) gorm.Dialector

var drivers = map[string]DriverFunc{
	DriverSQLite:   sqlite.Open,
	DriverPostgres: postgres.Open,
}

// Dialector returns the dialector registered for driver, opened on dsn.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	open, ok := drivers[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return open(dsn), nil
}
