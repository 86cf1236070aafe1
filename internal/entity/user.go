package entity

import "time"

// UserType is the account role returned by the backend.
type UserType string

const (
	UserTypeFoster       UserType = "foster"
	UserTypeShelter      UserType = "shelter"       // pending shelter application
	UserTypeShelterAdmin UserType = "shelter_admin" // approved shelter
	UserTypeVolunteer    UserType = "volunteer"
	UserTypeAdmin        UserType = "admin"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeFoster, UserTypeShelter, UserTypeShelterAdmin, UserTypeVolunteer, UserTypeAdmin:
		return true
	}
	return false
}

// CanCreateDogs reports whether accounts of this type may publish listings.
// Only approved shelters and admins qualify.
func (t UserType) CanCreateDogs() bool {
	return t == UserTypeShelterAdmin || t == UserTypeAdmin
}

// User is the identity record returned by /auth/me, /auth/login and
// /auth/register.
type User struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      *string    `json:"phone,omitempty"`
	Location   *string    `json:"location,omitempty"`
	UserType   UserType   `json:"user_type"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// UserUpdate carries the editable profile fields. Nil fields are left
// untouched both on the wire and when merged locally.
type UserUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
}

// Apply returns a copy of u with the set fields of upd merged in.
func (u User) Apply(upd UserUpdate) User {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Phone != nil {
		p := *upd.Phone
		u.Phone = &p
	}
	if upd.Location != nil {
		l := *upd.Location
		u.Location = &l
	}
	return u
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the self-service sign-up payload.
type Registration struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	UserType UserType `json:"user_type,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// PasswordChange is the payload of PUT /auth/password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
