// Package migrations embeds the schema migrations applied by the
// SQLite corpus store on open.
package migrations

import "embed"

// FS holds the numbered .sql migration files.
//
//go:embed *.sql
var FS embed.FS
