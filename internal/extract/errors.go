package extract

import "fmt"

// DiscoveryError reports a root directory that could not be walked.
type DiscoveryError struct {
	Root string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("failed to discover files under %s: %v", e.Root, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ParseError reports a line of a record container that is not a JSON object.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to parse %s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MalformedRecordError reports a record with a missing or invalid field.
type MalformedRecordError struct {
	Field  string
	Reason string
	// Index is the zero-based position of the record in its file, -1 when unknown.
	Index int
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed record: %s", e.Reason)
	}
	if e.Index < 0 {
		return fmt.Sprintf("malformed record: field %q %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed record %d: field %q %s", e.Index, e.Field, e.Reason)
}
