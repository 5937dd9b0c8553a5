package auth

import (
	"time"
)

// User account entity. IDs are UUID strings so no ObjectID conversion is
// needed anywhere. The password hash is never serialized to clients.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Username  string    `bson:"username" json:"username"` // unique, 3-30 chars
	Email     string    `bson:"email" json:"email"`       // unique
	Password  string    `bson:"password" json:"-"`        // bcrypt hash
	Role      UserRole  `bson:"role" json:"role"`
	Avatar    string    `bson:"avatar,omitempty" json:"avatar,omitempty"` // public URL
	Bio       string    `bson:"bio,omitempty" json:"bio,omitempty"`       // up to 500 chars
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserRole determines authoring capability: only author and admin may
// create blogs
type UserRole string

const (
	RoleReader UserRole = "reader"
	RoleAuthor UserRole = "author"
	RoleAdmin  UserRole = "admin"
)

// IsValid checks whether the role is one of the known roles
func (r UserRole) IsValid() bool {
	return r == RoleReader || r == RoleAuthor || r == RoleAdmin
}

// CanAuthor reports whether the role may create blogs
func (r UserRole) CanAuthor() bool {
	return r == RoleAuthor || r == RoleAdmin
}

// String returns the role string
func (r UserRole) String() string {
	return string(r)
}

// Summary is the public projection of a user embedded in blog responses
type Summary struct {
	ID       string `bson:"_id" json:"id"`
	Username string `bson:"username" json:"username"`
	Avatar   string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio      string `bson:"bio,omitempty" json:"bio,omitempty"`
}

// ToSummary projects a user to its public summary
func (u *User) ToSummary() Summary {
	return Summary{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
		Bio:      u.Bio,
	}
}
