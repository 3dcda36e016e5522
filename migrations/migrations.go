// Package migrations embeds the PostgreSQL schema for the row store.
// Files are named NNN_description.sql and applied in lexical order.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
