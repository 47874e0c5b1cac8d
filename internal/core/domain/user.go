package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == RoleUser || s == RolePublisher || s == RoleAdmin
}

// User models an account in the directory. Password holds the bcrypt hash and
// is never serialized to JSON; repositories exclude it from reads unless the
// caller explicitly asks for it (login, password change).
type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Role     string             `json:"role" bson:"role"`
	Password string             `json:"-" bson:"password,omitempty"`

	// Password-reset state: sha256 hex of the raw token plus its expiry.
	ResetPasswordToken  string    `json:"-" bson:"reset_password_token,omitempty"`
	ResetPasswordExpire time.Time `json:"-" bson:"reset_password_expire,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CanModify is the ownership authorization rule shared by every mutating
// operation on bootcamps, courses and reviews: admins may modify anything,
// everyone else only what they own.
func (u *User) CanModify(ownerID primitive.ObjectID) bool {
	return u.Role == RoleAdmin || u.ID == ownerID
}
