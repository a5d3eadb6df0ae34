// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID bson.ObjectID `bson:"_id,omitempty"`

	// Username is the unique name used for login.
	Username string `bson:"username"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `bson:"password"`

	// Email is the user's email address.
	// It must be unique across all users.
	Email string `bson:"email"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `bson:"createdAt"`
}
