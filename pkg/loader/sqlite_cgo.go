//go:build cgo

package loader

import _ "github.com/mattn/go-sqlite3"

func init() {
	sqliteDriver = "sqlite3"
}
