package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

// SearchAPI covers /search.
type SearchAPI struct{ c *Client }

// Dogs searches listings; query is sent as q alongside the filters.
func (s *SearchAPI) Dogs(ctx context.Context, query string, filters entity.DogQuery) ([]entity.Dog, error) {
	filters.Query = query
	var out []entity.Dog
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/search/dogs", query: filters.Values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SearchAPI) Breeds(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/search/breeds"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SearchAPI) Locations(ctx context.Context, query string) ([]string, error) {
	var q url.Values
	if query != "" {
		q = url.Values{"q": {query}}
	}
	var out []string
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/search/locations", query: q}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
