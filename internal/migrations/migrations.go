// Package migrations holds the PostgreSQL schema, applied by `eshop migrate`
// and by the repository integration tests.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed *.up.sql
var FS embed.FS

type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Apply runs every *.up.sql file in lexical order. Scripts must be idempotent.
func Apply(ctx context.Context, db Execer) ([]string, error) {
	names, err := fs.Glob(FS, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob: %w", err)
	}
	sort.Strings(names)

	applied := make([]string, 0, len(names))
	for _, name := range names {
		script, err := FS.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("FS.ReadFile[%s]: %w", name, err)
		}

		if strings.TrimSpace(string(script)) == "" {
			continue
		}

		if _, err := db.Exec(ctx, string(script)); err != nil {
			return applied, fmt.Errorf("db.Exec[%s]: %w", name, err)
		}
		applied = append(applied, name)
	}

	return applied, nil
}
