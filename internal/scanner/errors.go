// # internal/scanner/errors.go
package scanner

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedBraces means the token stream ended while a function body
	// was still open.
	ErrUnbalancedBraces = errors.New("token stream ended inside a function body")

	// ErrMalformedHead means a function head token carried no captured name.
	ErrMalformedHead = errors.New("function head has no extractable name")
)

// ScanError annotates a failure with the location of the token the machine
// was holding when the failure surfaced.
type ScanError struct {
	Path      string
	Line      int
	Column    int
	TokenText string
	Err       error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("Error found after %s:%d:%d: '%s'", e.Path, e.Line, e.Column, e.TokenText)
}

func (e *ScanError) Unwrap() error { return e.Err }
