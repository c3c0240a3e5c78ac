package esplora

import (
	"errors"
	"fmt"
)

// ErrInvalidHash is returned when a block hash or txid is not a 64 character hex string.
var ErrInvalidHash = errors.New("invalid hash")

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: http status %d: %s", e.Path, e.Code, e.Body)
}
