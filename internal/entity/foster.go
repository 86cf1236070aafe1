package entity

import (
	"net/url"
	"strconv"
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationCompleted ApplicationStatus = "completed"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected, ApplicationCompleted:
		return true
	}
	return false
}

type FosterApplication struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	DogID           int64             `json:"dog_id"`
	Status          ApplicationStatus `json:"status"`
	Message         string            `json:"message,omitempty"`
	Experience      string            `json:"experience,omitempty"`
	LivingSituation string            `json:"living_situation,omitempty"`
	Availability    string            `json:"availability,omitempty"`
	AdminNotes      string            `json:"admin_notes,omitempty"`
	CreatedAt       *time.Time        `json:"created_at,omitempty"`
	UpdatedAt       *time.Time        `json:"updated_at,omitempty"`
}

// ApplicationInput is the body of POST /fosters/apply/:dogId.
type ApplicationInput struct {
	Message         string `json:"message,omitempty"`
	Experience      string `json:"experience,omitempty"`
	LivingSituation string `json:"living_situation,omitempty"`
	Availability    string `json:"availability,omitempty"`
}

// ApplicationQuery filters GET /fosters/applications.
type ApplicationQuery struct {
	Status ApplicationStatus
	DogID  int64
}

func (q ApplicationQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "status", string(q.Status))
	if q.DogID > 0 {
		v.Set("dog_id", strconv.FormatInt(q.DogID, 10))
	}
	return v
}
