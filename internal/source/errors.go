// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"errors"
	"fmt"

	"github.com/pdiddy/profile-curator/pkg/types"
)

// SourceError reports a transport or decode failure from an external
// catalog, after any fallback path has been exhausted. Callers surface it
// as a "try again later" condition; the pipeline does not retry further.
type SourceError struct {
	Source types.SourceKind
	Op     string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// NotFoundError reports that a syntactically valid identifier is absent
// upstream.
type NotFoundError struct {
	Source types.SourceKind
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record found for %q", e.Source, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
