// Package migrations embeds the goose SQL migrations applied at startup and in tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
