package models

import "errors"

// ErrInvalidSnapshot is returned when a snapshot cannot be encoded because it
// does not hold valid JSON.
var ErrInvalidSnapshot = errors.New("snapshot is not valid JSON")
