//go:build cgo_sqlite

package main

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// initDB opens the corpus word database with the cgo driver. Paths without
// their own options wait up to five seconds for a locked database.
func initDB(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", corpusDSN(path))
}

func corpusDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000"
}
