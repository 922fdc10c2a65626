//go:build !cgo_sqlite

package main

import (
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"
)

// initDB opens the corpus word database with the pure Go driver. Paths
// without their own options wait up to five seconds for a locked database.
func initDB(path string) (*sql.DB, error) {
	return sql.Open("sqlite", corpusDSN(path))
}

func corpusDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)"
}
