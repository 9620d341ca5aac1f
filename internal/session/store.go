// Package session persists the logged-in identity and advisory client
// state in a local embedded key-value store. The store is the single
// writer for login and logout; every other component only reads.
package session

import (
	"errors"

	"github.com/shopease/go_shop/internal/domain"
)

// Store holds the durable client-side state: the user session and the
// last-searched-product record.
type Store interface {
	// Current returns the active session, or false when nobody is logged in.
	Current() (domain.UserSession, bool)
	// SetSession replaces the active session in one write.
	SetSession(s domain.UserSession) error
	// Clear removes the session. Clearing an empty store is a no-op.
	Clear() error

	// LastSearch returns the most recent search record, or false when none
	// has been written.
	LastSearch() (domain.LastSearch, bool)
	// SetLastSearch overwrites the search record.
	SetLastSearch(ls domain.LastSearch) error

	Close() error
}

var errNotFound = errors.New("session: key not found")
