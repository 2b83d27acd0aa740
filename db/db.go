// Package db embeds the SQL migrations (one directory per dialect) and the
// demo seed data.
package db

import "embed"

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql seed/*.sql
var Files embed.FS
