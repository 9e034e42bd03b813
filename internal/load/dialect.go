package load

import (
	"fmt"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names a destination database/sql driver.
type Dialect string

const (
	Postgres  Dialect = "postgres"
	PGX       Dialect = "pgx"
	SQLServer Dialect = "sqlserver"
	SQLite    Dialect = "sqlite"
)

func init() {
	sqlx.BindDriver(string(SQLite), sqlx.QUESTION)
	sqlx.BindDriver(string(SQLServer), sqlx.AT)
}

// ParseDialect maps a configured sink type to a Dialect.
func ParseDialect(sinkType string) (Dialect, error) {
	switch d := Dialect(sinkType); d {
	case Postgres, PGX, SQLServer, SQLite:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported sink type %q", sinkType)
	}
}

func (d Dialect) driverName() string { return string(d) }

func (d Dialect) statements() map[Statement]string {
	if d == SQLServer {
		return tsqlStatements
	}
	return ansiStatements
}

func (d Dialect) schemaFile() string {
	switch d {
	case SQLServer:
		return "schema/sqlserver.sql"
	case SQLite:
		return "schema/sqlite.sql"
	default:
		return "schema/postgres.sql"
	}
}

func (d Dialect) quote(table string) string {
	if d == SQLServer {
		return "[" + table + "]"
	}
	return `"` + table + `"`
}
