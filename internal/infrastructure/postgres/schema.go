package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations devuelve los scripts embebidos en orden de nombre.
func Migrations() ([]string, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// EnsureSchema aplica todos los scripts (idempotentes) en una sola transacción.
func EnsureSchema(ctx context.Context, runner *TxRunner) error {
	names, err := Migrations()
	if err != nil {
		return fmt.Errorf("listar migraciones: %w", err)
	}
	return runner.Run(ctx, func(q Querier) error {
		for _, name := range names {
			script, err := migrationsFS.ReadFile(name)
			if err != nil {
				return fmt.Errorf("leer %s: %w", name, err)
			}
			if _, err := q.Exec(ctx, string(script)); err != nil {
				return fmt.Errorf("aplicar %s: %w", name, err)
			}
		}
		return nil
	})
}
