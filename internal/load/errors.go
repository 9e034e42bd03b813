package load

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Op names the destination operation that failed.
type Op string

const (
	OpOpen    Op = "open"
	OpBegin   Op = "begin"
	OpPrepare Op = "prepare"
	OpExec    Op = "exec"
	OpCommit  Op = "commit"
	OpQuery   Op = "query"
)

// DestinationError wraps a failure reported by the destination database.
type DestinationError struct {
	Op        Op
	Statement Statement
	Source    string
	// Index is the position of the failing instruction in its batch, -1 when
	// the failure is not tied to one instruction.
	Index int
	Err   error
}

func (e *DestinationError) Error() string {
	switch {
	case e.Op == OpExec:
		return fmt.Sprintf("destination %s %s (instruction %d of %s): %v", e.Op, e.Statement, e.Index, e.Source, e.Err)
	case e.Source != "":
		return fmt.Sprintf("destination %s for %s: %v", e.Op, e.Source, e.Err)
	default:
		return fmt.Sprintf("destination %s: %v", e.Op, e.Err)
	}
}

func (e *DestinationError) Unwrap() error { return e.Err }

// Fatal reports whether the failure concerns the connection rather than the
// rows of one file. Only statement executions on a healthy connection are
// attributable to the data being loaded.
func (e *DestinationError) Fatal() bool {
	if errors.Is(e.Err, driver.ErrBadConn) {
		return true
	}
	return e.Op != OpExec
}
