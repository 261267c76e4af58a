package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingPullRequest is returned when no pull request number is configured.
	ErrMissingPullRequest = errors.New("pull request number is required (set --pr or PR_NUMBER)")

	// ErrRefNotFound is matched by RefNotFoundError.
	ErrRefNotFound = errors.New("reference not found")

	// ErrAmbiguousDiff is matched by AmbiguousDiffError.
	ErrAmbiguousDiff = errors.New("ambiguous diff")

	// ErrMalformedEntry is matched by MalformedEntryError.
	ErrMalformedEntry = errors.New("malformed catalog entry")

	// ErrValidationFailed is matched by ValidationFailure.
	ErrValidationFailed = errors.New("catalog validation failed")

	// ErrResource is matched by ResourceError.
	ErrResource = errors.New("resource error")

	// ErrTooManyResourceErrors aborts a run after repeated resource errors.
	ErrTooManyResourceErrors = errors.New("too many consecutive resource errors")

	// ErrEntriesFailed is returned by a fail-fast run whose report is not clean.
	ErrEntriesFailed = errors.New("one or more catalog entries failed validation")
)

// SetupError is fatal: it aborts the run before any entry is processed.
type SetupError struct {
	Step string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup failed (%s): %v", e.Step, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// RefNotFoundError reports a ref that does not exist in the local object store.
type RefNotFoundError struct {
	Ref string
}

func (e *RefNotFoundError) Error() string {
	return fmt.Sprintf("reference %q not found", e.Ref)
}

func (e *RefNotFoundError) Is(target error) bool { return target == ErrRefNotFound }

// AmbiguousDiffError reports more than one tree change matching the tracked path.
type AmbiguousDiffError struct {
	Path    string
	Matches int
}

func (e *AmbiguousDiffError) Error() string {
	return fmt.Sprintf("expected at most one change for %q, found %d", e.Path, e.Matches)
}

func (e *AmbiguousDiffError) Is(target error) bool { return target == ErrAmbiguousDiff }

// MalformedEntryError reports an added record that cannot become an EntryDescriptor.
type MalformedEntryError struct {
	Record string
	Reason string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed entry %q: %s", e.Record, e.Reason)
}

func (e *MalformedEntryError) Is(target error) bool { return target == ErrMalformedEntry }

// ValidationFailure wraps a rejection from a catalog validator.
type ValidationFailure struct {
	Validator string
	Err       error
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("[%s] %v", e.Validator, e.Err)
}

func (e *ValidationFailure) Unwrap() error { return e.Err }

func (e *ValidationFailure) Is(target error) bool { return target == ErrValidationFailed }

// ResourceError reports a temp directory that could not be created or removed.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

func (e *ResourceError) Is(target error) bool { return target == ErrResource }
