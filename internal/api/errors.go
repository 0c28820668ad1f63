package api

import "errors"

// ErrNotFound reports a 404 from the stats API, usually an unknown
// username or user id.
var ErrNotFound = errors.New("stats api: not found")
