package domain

import "time"

// UserSession is the identity of the logged-in user. It is created on a
// successful login, destroyed on logout, and read-only everywhere else.
type UserSession struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Admin  bool   `json:"is_admin"`
}

// LastSearch records the most recent product search: the query, when it was
// issued, and up to three related product names from the result set.
// Advisory display state only; nothing reads it back into control flow.
type LastSearch struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Related   []string  `json:"related_products"`
}
