package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

// FostersAPI covers /fosters.
type FostersAPI struct{ c *Client }

func (f *FostersAPI) MyApplications(ctx context.Context) ([]entity.FosterApplication, error) {
	var out []entity.FosterApplication
	if err := f.c.do(ctx, request{method: http.MethodGet, path: "/fosters/my-applications"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *FostersAPI) Apply(ctx context.Context, dogID int64, in entity.ApplicationInput) (*entity.FosterApplication, error) {
	var out entity.FosterApplication
	if err := f.c.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/fosters/apply/%d", dogID), body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *FostersAPI) UpdateStatus(ctx context.Context, applicationID int64, status entity.ApplicationStatus) (*entity.FosterApplication, error) {
	var out entity.FosterApplication
	body := struct {
		Status entity.ApplicationStatus `json:"status"`
	}{status}
	if err := f.c.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/fosters/%d/status", applicationID), body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *FostersAPI) Applications(ctx context.Context, q entity.ApplicationQuery) ([]entity.FosterApplication, error) {
	var out []entity.FosterApplication
	if err := f.c.do(ctx, request{method: http.MethodGet, path: "/fosters/applications", query: q.Values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
