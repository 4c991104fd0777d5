//go:build cgo_sqlite

package main

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

// initDB opens the corpus database and checks that it can be reached, since
// sql.Open alone does not touch the file.
func initDB(dataSource string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dataSource)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not reach %s database: %w", driverName, err)
	}
	return db, nil
}
