package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

// FavoritesAPI covers /favorites.
type FavoritesAPI struct{ c *Client }

func (f *FavoritesAPI) Get(ctx context.Context) ([]entity.Dog, error) {
	var out []entity.Dog
	if err := f.c.do(ctx, request{method: http.MethodGet, path: "/favorites"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *FavoritesAPI) Add(ctx context.Context, dogID int64) error {
	return f.c.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/favorites/%d", dogID)}, nil)
}

func (f *FavoritesAPI) Remove(ctx context.Context, dogID int64) error {
	return f.c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/favorites/%d", dogID)}, nil)
}
