package bond

import "errors"

// ErrInvalidInput marks a precondition violation in caller-supplied data.
var ErrInvalidInput = errors.New("invalid input")
