package entity

import "time"

// ShelterRegistration is submitted by an organisation applying for a
// shelter account. UserType is always "shelter".
type ShelterRegistration struct {
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	Name               string   `json:"name"`
	Phone              string   `json:"phone,omitempty"`
	Location           string   `json:"location,omitempty"`
	ShelterName        string   `json:"shelter_name"`
	ShelterLicense     string   `json:"shelter_license,omitempty"`
	ShelterAddress     string   `json:"shelter_address,omitempty"`
	ShelterWebsite     string   `json:"shelter_website,omitempty"`
	ShelterDescription string   `json:"shelter_description,omitempty"`
	UserType           UserType `json:"user_type"`
}

// ShelterApplication is a pending shelter as listed for admins.
type ShelterApplication struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Phone              *string    `json:"phone,omitempty"`
	Location           *string    `json:"location,omitempty"`
	ShelterName        string     `json:"shelter_name"`
	ShelterLicense     *string    `json:"shelter_license,omitempty"`
	ShelterAddress     *string    `json:"shelter_address,omitempty"`
	ShelterWebsite     *string    `json:"shelter_website,omitempty"`
	ShelterDescription *string    `json:"shelter_description,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
}

// ShelterApproval is the admin decision on a pending shelter.
type ShelterApproval struct {
	UserID     int64  `json:"user_id"`
	Approved   bool   `json:"approved"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

// ShelterStatus is the response of /api/shelters/my-status.
type ShelterStatus struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

// ExternalShelter is a third-party shelter whose listings are synced by
// the backend.
type ExternalShelter struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Website    string     `json:"website,omitempty"`
	Location   string     `json:"location,omitempty"`
	IsActive   bool       `json:"is_active"`
	LastSyncAt *time.Time `json:"last_sync,omitempty"`
}

// SyncResult is returned by an external shelter sync.
type SyncResult struct {
	ShelterID   int64    `json:"shelter_id"`
	DogsFound   int      `json:"dogs_found"`
	DogsAdded   int      `json:"dogs_added"`
	DogsUpdated int      `json:"dogs_updated"`
	Errors      []string `json:"errors,omitempty"`
}
