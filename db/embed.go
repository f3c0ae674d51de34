// Package db embeds the schema applied at startup.
package db

import _ "embed"

// Schema holds the DDL for every table the store replicates to.
//
//go:embed migrations/001_schema.sql
var Schema string
