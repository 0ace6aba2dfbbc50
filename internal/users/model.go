package users

import "time"

// User is a cached profile of an identity-provider account. The identity
// provider owns everything here except the ID reference; this core only
// reads it for display names and the verified flag.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	PictureURL string    `json:"pictureUrl"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
