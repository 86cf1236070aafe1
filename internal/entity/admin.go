package entity

import "net/url"

// AdminStats is returned by /auth/admin/stats.
type AdminStats struct {
	TotalUsers      int              `json:"total_users"`
	ActiveUsers     int              `json:"active_users"`
	UsersByType     map[UserType]int `json:"users_by_type,omitempty"`
	TotalDogs       int              `json:"total_dogs,omitempty"`
	PendingShelters int              `json:"pending_shelters,omitempty"`
}

// UserQuery filters the admin user list.
type UserQuery struct {
	Search   string
	UserType UserType
}

// AdminUserUpdate is the body of PUT /auth/admin/users/:id. Only set
// fields are sent; an empty password is never sent.
type AdminUserUpdate struct {
	Name       *string   `json:"name,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Location   *string   `json:"location,omitempty"`
	UserType   *UserType `json:"user_type,omitempty"`
	IsActive   *bool     `json:"is_active,omitempty"`
	IsVerified *bool     `json:"is_verified,omitempty"`
	Password   *string   `json:"password,omitempty"`
}

// Empty reports whether no field is set.
func (u AdminUserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Location == nil &&
		u.UserType == nil && u.IsActive == nil && u.IsVerified == nil && u.Password == nil
}

func (q UserQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "search", q.Search)
	setString(v, "user_type", string(q.UserType))
	return v
}
