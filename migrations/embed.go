// Package migrations embeds the numbered schema files for each supported
// database. Subdirectories are named after the dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
