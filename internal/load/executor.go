package load

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SongRef identifies a loaded song and its artist.
type SongRef struct {
	SongID   string `db:"song_id"`
	ArtistID string `db:"artist_id"`
}

// Executor applies statement instructions against the destination over a
// single exclusive connection, committing once per source file.
type Executor struct {
	db      *sqlx.DB
	dialect Dialect
	stmts   map[Statement]string
	logger  *zap.SugaredLogger
	applied int
}

// Open connects to the destination and verifies the connection.
func Open(ctx context.Context, dialect Dialect, dsn string, logger *zap.SugaredLogger) (*Executor, error) {
	logger.Infow("Connecting to destination", "dialect", dialect)
	db, err := sqlx.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, &DestinationError{Op: OpOpen, Index: -1, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &DestinationError{Op: OpOpen, Index: -1, Err: fmt.Errorf("ping: %w", err)}
	}
	logger.Infow("Successfully connected to destination", "dialect", dialect)
	return NewExecutor(db, dialect, logger), nil
}

// NewExecutor wraps an open database handle. The pool is pinned to one
// connection so that no two statements ever run concurrently.
func NewExecutor(db *sqlx.DB, dialect Dialect, logger *zap.SugaredLogger) *Executor {
	db.SetMaxOpenConns(1)

	stmts := make(map[Statement]string)
	for id, query := range dialect.statements() {
		stmts[id] = db.Rebind(query)
	}
	return &Executor{
		db:      db,
		dialect: dialect,
		stmts:   stmts,
		logger:  logger,
	}
}

// Apply executes the batch derived from one source file inside a single
// transaction. On any failure the transaction is rolled back and nothing
// from the batch is kept.
func (e *Executor) Apply(ctx context.Context, source string, batch []Instruction) error {
	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return &DestinationError{Op: OpBegin, Source: source, Index: -1, Err: err}
	}

	prepared := make(map[Statement]*sql.Stmt)
	defer func() {
		for _, stmt := range prepared {
			stmt.Close()
		}
	}()

	for i, in := range batch {
		stmt, ok := prepared[in.Stmt]
		if !ok {
			query, known := e.stmts[in.Stmt]
			if !known {
				e.rollback(tx, source)
				return &DestinationError{Op: OpPrepare, Statement: in.Stmt, Source: source, Index: i,
					Err: fmt.Errorf("no template for statement %d", int(in.Stmt))}
			}
			stmt, err = tx.PrepareContext(ctx, query)
			if err != nil {
				e.rollback(tx, source)
				return &DestinationError{Op: OpPrepare, Statement: in.Stmt, Source: source, Index: i, Err: err}
			}
			prepared[in.Stmt] = stmt
		}

		if _, err := stmt.ExecContext(ctx, in.Args...); err != nil {
			e.rollback(tx, source)
			return &DestinationError{Op: OpExec, Statement: in.Stmt, Source: source, Index: i, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &DestinationError{Op: OpCommit, Source: source, Index: -1, Err: err}
	}
	e.applied += len(batch)
	e.logger.Debugw("Committed file", "source", source, "instructions", len(batch))
	return nil
}

func (e *Executor) rollback(tx *sqlx.Tx, source string) {
	if err := tx.Rollback(); err != nil {
		e.logger.Warnw("Rollback failed", "source", source, "error", err)
	}
}

// FindSong resolves a (title, artist name, duration) triple against the
// songs and artists already committed. A reference is returned only when
// exactly one row matches.
func (e *Executor) FindSong(ctx context.Context, title, artist string, duration float64) (SongRef, bool, error) {
	rows, err := e.db.QueryxContext(ctx, e.stmts[SongSelect], title, artist, duration)
	if err != nil {
		return SongRef{}, false, &DestinationError{Op: OpQuery, Statement: SongSelect, Index: -1, Err: err}
	}
	defer rows.Close()

	var ref SongRef
	matches := 0
	for matches < 2 && rows.Next() {
		if err := rows.StructScan(&ref); err != nil {
			return SongRef{}, false, &DestinationError{Op: OpQuery, Statement: SongSelect, Index: -1, Err: err}
		}
		matches++
	}
	if err := rows.Err(); err != nil {
		return SongRef{}, false, &DestinationError{Op: OpQuery, Statement: SongSelect, Index: -1, Err: err}
	}
	if matches != 1 {
		if matches > 1 {
			e.logger.Debugw("Ambiguous song lookup", "title", title, "artist", artist, "duration", duration)
		}
		return SongRef{}, false, nil
	}
	return ref, true, nil
}

// Applied returns the number of instructions committed so far.
func (e *Executor) Applied() int { return e.applied }

func (e *Executor) Close() error {
	e.logger.Infow("Closing destination", "instructions_applied", e.applied)
	return e.db.Close()
}
