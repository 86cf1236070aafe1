package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

// ExternalAPI covers third-party shelters synced by the backend.
type ExternalAPI struct{ c *Client }

func (e *ExternalAPI) Shelters(ctx context.Context) ([]entity.ExternalShelter, error) {
	var out []entity.ExternalShelter
	if err := e.c.do(ctx, request{method: http.MethodGet, path: "/api/external-shelters"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *ExternalAPI) ShelterDogs(ctx context.Context, shelterID int64) ([]entity.Dog, error) {
	var out []entity.Dog
	if err := e.c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/api/external-shelters/%d/dogs", shelterID)}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *ExternalAPI) Dogs(ctx context.Context) ([]entity.Dog, error) {
	var out []entity.Dog
	if err := e.c.do(ctx, request{method: http.MethodGet, path: "/api/external-dogs"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *ExternalAPI) Sync(ctx context.Context, shelterID int64) (*entity.SyncResult, error) {
	var out entity.SyncResult
	if err := e.c.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/api/external-shelters/%d/sync", shelterID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (e *ExternalAPI) SyncAll(ctx context.Context) error {
	return e.c.do(ctx, request{method: http.MethodPost, path: "/api/external-shelters/sync-all"}, nil)
}
