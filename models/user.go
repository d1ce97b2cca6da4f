package models

import "time"

// User is keyed by the email the identity provider verified.
type User struct {
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name,omitempty" json:"name,omitempty"`
	Image        string    `bson:"image,omitempty" json:"image,omitempty"`
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	LastLoggedIn time.Time `bson:"last_loggedIn" json:"last_loggedIn"`
}
