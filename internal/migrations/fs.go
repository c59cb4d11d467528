// Package migrations embebe las migraciones SQL del storage local.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
