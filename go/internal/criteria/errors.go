package criteria

import "errors"

// ErrNotFound is returned when a criterion id does not reference an existing criterion
var ErrNotFound = errors.New("criterion not found")
