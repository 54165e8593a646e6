package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system.
// It contains identity, credential and audit metadata.
type User struct {
	// ID is the store-assigned unique identifier of the user.
	ID primitive.ObjectID `json:"_id" bson:"_id,omitempty"`

	// Username is the unique login name chosen by the user.
	// It is stored trimmed of surrounding whitespace.
	Username string `json:"username" bson:"username"`

	// Email is the user's email address, stored trimmed and lowercased.
	Email string `json:"email" bson:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// The plaintext password is never persisted and this field is
	// never exposed in API responses.
	PasswordHash string `json:"-" bson:"password"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// SignupInput carries the fields required to create an account.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries credentials for a one-shot credential check.
// Username and Email are both optional, but at least one must be
// supplied; Username takes precedence when both are present.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
