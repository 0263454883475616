package models

import "time"

// RefreshToken is the stored half of the refresh-token invariant: the token
// string itself is a signed JWT, but it is only honored while this row still
// exists. Deleting the row revokes the token regardless of its signature.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}
