package load

import (
	"context"
	"embed"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Tables lists the destination tables, facts first.
var Tables = []string{"songplays", "users", "songs", "artists", "time"}

// CreateTables applies the dialect's DDL. With drop set, existing tables
// are dropped first so the run starts from an empty star schema.
func (e *Executor) CreateTables(ctx context.Context, drop bool) error {
	if drop {
		for _, table := range Tables {
			query := fmt.Sprintf("DROP TABLE IF EXISTS %s", e.dialect.quote(table))
			if _, err := e.db.ExecContext(ctx, query); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}
	}

	script, err := schemaFS.ReadFile(e.dialect.schemaFile())
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	for _, stmt := range splitStatements(string(script)) {
		if _, err := e.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %q: %w", firstLine(stmt), err)
		}
	}
	e.logger.Infow("Destination tables ready", "dialect", e.dialect, "dropped", drop)
	return nil
}

// Counts returns the number of rows in every destination table.
func (e *Executor) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Tables))
	for _, table := range Tables {
		var n int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", e.dialect.quote(table))
		if err := e.db.GetContext(ctx, &n, query); err != nil {
			return nil, &DestinationError{Op: OpQuery, Index: -1, Err: fmt.Errorf("count %s: %w", table, err)}
		}
		counts[table] = n
	}
	return counts, nil
}

func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
