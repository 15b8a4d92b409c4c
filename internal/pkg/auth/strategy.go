package auth

import "time"

// Strategy issues and verifies session tokens carried in the auth cookie
// or the Authorization header.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
}

type Options struct {
	TTL time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}
