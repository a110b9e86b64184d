package domain

import "time"

// Session is the authenticated identity for a single request. It is built by
// the auth middleware from a verified token and passed down explicitly; there
// is no ambient "current user" anywhere in the process.
type Session struct {
	Username  string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

// TTL returns the remaining lifetime of the session token. Used when revoking
// a token on logout so the denylist entry expires with the token itself.
func (s *Session) TTL(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}
