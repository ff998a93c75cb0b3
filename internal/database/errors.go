package database

import "errors"

// ErrNotFound is returned when a requested row does not exist. Handlers map
// it to 404; ownership checks run only after existence is established.
var ErrNotFound = errors.New("not found")
