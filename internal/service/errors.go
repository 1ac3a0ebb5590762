package service

import "errors"

// Controllers map these to HTTP statuses with errors.Is. Anything else a
// service returns is treated as not processable.
var (
	ErrNotFound       = errors.New("not found")
	ErrNotProcessable = errors.New("not processable")
)
