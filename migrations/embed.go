// Package migrations embeds the SQL migration files so the migrator
// binary and the integration tests run the same schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
