package ports

import (
	"printdelivery/internal/core/domain/model/location"
)

// SessionStore hands out the per-caller search session for an opaque id,
// creating it on first use.
type SessionStore interface {
	Session(id string) *location.Session
}
