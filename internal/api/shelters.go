package api

import (
	"context"
	"net/http"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

// SheltersAPI covers the shelter approval workflow under /api/shelters.
type SheltersAPI struct{ c *Client }

// Receipt is the acknowledgement returned by registration and approval.
type Receipt struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id,omitempty"`
	Status  string `json:"status,omitempty"`
}

func (s *SheltersAPI) Register(ctx context.Context, reg entity.ShelterRegistration) (*Receipt, error) {
	reg.UserType = entity.UserTypeShelter
	var out Receipt
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/api/shelters/register", body: reg}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SheltersAPI) Pending(ctx context.Context) ([]entity.ShelterApplication, error) {
	var out []entity.ShelterApplication
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/api/shelters/pending"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SheltersAPI) Approved(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/api/shelters/approved"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SheltersAPI) Approve(ctx context.Context, decision entity.ShelterApproval) (*Receipt, error) {
	var out Receipt
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/api/shelters/approve", body: decision}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SheltersAPI) MyStatus(ctx context.Context) (*entity.ShelterStatus, error) {
	var out entity.ShelterStatus
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/api/shelters/my-status"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
