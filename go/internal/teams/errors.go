package teams

import "errors"

// ErrNotFound is returned when a team id does not reference an existing team
var ErrNotFound = errors.New("team not found")
