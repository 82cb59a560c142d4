// Package migrations — SQL-миграции схемы заказов (goose), встроенные в бинарь.
package migrations

import "embed"

// FS — файлы миграций *.sql.
//
//go:embed *.sql
var FS embed.FS
