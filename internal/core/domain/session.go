package domain

import "time"

// Session is the atomic (token, member snapshot) pair representing an
// authenticated client. The two always move together: a store must never
// surface a token without its member record or vice versa.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Member    Member    `json:"member"`
	CreatedAt time.Time `json:"created_at"`
}
