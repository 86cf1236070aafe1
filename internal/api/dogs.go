package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

// DogsAPI covers /dogs.
type DogsAPI struct{ c *Client }

func (d *DogsAPI) List(ctx context.Context, q entity.DogQuery) ([]entity.Dog, error) {
	var out []entity.Dog
	if err := d.c.do(ctx, request{method: http.MethodGet, path: "/dogs", query: q.Values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns own listings together with dogs synced from external
// shelters.
func (d *DogsAPI) ListAll(ctx context.Context, q entity.DogQuery) ([]entity.Dog, error) {
	var out []entity.Dog
	if err := d.c.do(ctx, request{method: http.MethodGet, path: "/dogs/all", query: q.Values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *DogsAPI) Get(ctx context.Context, id int64) (*entity.Dog, error) {
	var out entity.Dog
	if err := d.c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/dogs/%d", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *DogsAPI) Create(ctx context.Context, in entity.DogInput) (*entity.Dog, error) {
	var out entity.Dog
	if err := d.c.do(ctx, request{method: http.MethodPost, path: "/dogs", body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *DogsAPI) Update(ctx context.Context, id int64, in entity.DogInput) (*entity.Dog, error) {
	var out entity.Dog
	if err := d.c.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/dogs/%d", id), body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *DogsAPI) Delete(ctx context.Context, id int64) error {
	return d.c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/dogs/%d", id)}, nil)
}

// UploadPhoto posts one image as multipart form field "file".
func (d *DogsAPI) UploadPhoto(ctx context.Context, dogID int64, filename string, r io.Reader) (*entity.Photo, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload photo: read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}
	var out entity.Photo
	req := request{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/dogs/%d/photos", dogID),
		rawBody:     buf.Bytes(),
		contentType: mw.FormDataContentType(),
	}
	if err := d.c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *DogsAPI) DeletePhoto(ctx context.Context, dogID, photoID int64) error {
	return d.c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/dogs/%d/photos/%d", dogID, photoID)}, nil)
}

// AdoptionPoster downloads the generated poster as raw bytes.
func (d *DogsAPI) AdoptionPoster(ctx context.Context, id int64) (*entity.Poster, error) {
	resp, err := d.c.send(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/dogs/%d/adoption-poster", id)})
	if err != nil {
		return nil, err
	}
	p := &entity.Poster{
		ContentType: resp.header.Get("Content-Type"),
		Filename:    fmt.Sprintf("adoption-poster-%d", id),
		Data:        resp.body,
	}
	if cd := resp.header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			p.Filename = filepath.Base(params["filename"])
		}
	}
	return p, nil
}
