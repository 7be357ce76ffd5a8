package store

import "errors"

// ErrUnavailable is returned by the in-memory backend when it is told to fail,
// standing in for a full or disabled storage.
var ErrUnavailable = errors.New("store: storage unavailable")
