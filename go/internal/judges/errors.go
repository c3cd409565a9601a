package judges

import "errors"

// ErrNotFound is returned when a judge id does not reference an existing judge
var ErrNotFound = errors.New("judge not found")
