package domain

import "errors"

// ErrInvalidInput marks a value that fails basic shape validation.
var ErrInvalidInput = errors.New("invalid input")
