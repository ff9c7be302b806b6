// migrations содержит SQL-миграции схемы БД, встраиваемые в бинарь.
// Применяются через goose при старте сервиса (см. storage/postgres).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
