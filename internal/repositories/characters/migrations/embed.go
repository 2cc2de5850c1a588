package migrations

import "embed"

// FS contains the embedded SQLite schema for the character store.
//
//go:embed *.sql
var FS embed.FS
