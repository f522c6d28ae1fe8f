// Package migrations embeds the schema files for the local store and the
// postgres mirror.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
