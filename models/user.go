package models

import "time"

// DefaultCountry is assigned to an address whose country was left blank.
const DefaultCountry = "India"

// Address is the postal address attached to a user profile.
type Address struct {
	Street  string `json:"street,omitempty" mapstructure:"street" validate:"omitempty,max=200"`
	City    string `json:"city,omitempty" mapstructure:"city" validate:"omitempty,max=100"`
	State   string `json:"state,omitempty" mapstructure:"state" validate:"omitempty,max=100"`
	ZipCode string `json:"zipCode,omitempty" mapstructure:"zipCode" validate:"omitempty,max=20"`
	Country string `json:"country,omitempty" mapstructure:"country" validate:"omitempty,max=100"`
}

// User represents a marketplace account.
//
// PasswordHash holds the bcrypt digest of the user's password and is never
// serialized. Auth endpoints return the narrower [User.Public] and
// [User.Registered] snapshots.
type User struct {
	// ID is the server-assigned identifier (UUIDv7).
	ID string `json:"id"`

	// Name is the display name, 2..50 characters.
	Name string `json:"name"`

	// Email is unique and always stored trimmed and lower-cased.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string `json:"-"`

	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address"`
	Avatar  string  `json:"avatar,omitempty"`

	// Bio is limited to 500 characters.
	Bio string `json:"bio,omitempty"`

	IsVerified        bool    `json:"isVerified"`
	Rating            float64 `json:"rating"`
	TotalTransactions int     `json:"totalTransactions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PublicUser is the user snapshot returned by the auth endpoints and cached
// by the client next to its token.
type PublicUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Public returns the login snapshot of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Avatar:     u.Avatar,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// Registered returns the reduced snapshot sent back after registration.
func (u User) Registered() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// User expands the snapshot back into a [User] with the fields it carries.
func (p PublicUser) User() User {
	return User{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Avatar:     p.Avatar,
		IsVerified: p.IsVerified,
		CreatedAt:  p.CreatedAt,
	}
}
