package sentinel

import "errors"

// ErrNotFound is returned (optionally wrapped) by stores when an entity does
// not exist, so callers can translate the fact into an API response.
var ErrNotFound = errors.New("not found")
