// Package migrations embeds the bridge's goose migration files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
