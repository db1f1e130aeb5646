package resumes

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a request the caller can fix.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound covers both a missing record and a record owned by a
	// different user. The two cases are indistinguishable to callers.
	ErrNotFound = errors.New("resume not found")
	// ErrMalformedOutput means the completion output was not parseable JSON.
	ErrMalformedOutput = errors.New("ai returned malformed output")
	// ErrStorageUpload marks an object store failure during upload.
	ErrStorageUpload = errors.New("object storage upload failed")
	// ErrStorageDeletion marks an object store failure during deletion. The
	// database record is kept when this happens.
	ErrStorageDeletion = errors.New("object storage deletion failed")
)

// SchemaError reports a structural violation in otherwise well-formed JSON
// output. Field names the first offending field.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("analysis schema violation: %s", e.Reason)
	}
	return fmt.Sprintf("analysis schema violation: field %q: %s", e.Field, e.Reason)
}
