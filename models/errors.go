package models

import (
	"errors"
	"fmt"
)

// ErrInvalidDate reports a day argument that is not a yyyy-mm-dd calendar
// date. Commands abort immediately when they see it.
var ErrInvalidDate = errors.New("invalid date")

// FetchError reports a failed upstream request. Fetches are single-shot:
// a FetchError aborts that domain's run for the day without retrying.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SchemaError reports a required column missing from an upstream response
// or input file. Downstream parsing cannot proceed without the column, so
// it is always fatal for the run.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column missing: %s", e.Column)
}
