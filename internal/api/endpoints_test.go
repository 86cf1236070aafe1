package api

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

// Each endpoint group method is a fixed verb and path.
func TestEndpointRoutes(t *testing.T) {
	role := entity.UserTypeShelterAdmin
	tests := []struct {
		name      string
		call      func(ctx context.Context, c *Client) error
		method    string
		path      string
		wantQuery string
	}{
		{"auth me", func(ctx context.Context, c *Client) error { _, err := c.Auth.Me(ctx); return err }, "GET", "/auth/me", ""},
		{"auth profile", func(ctx context.Context, c *Client) error {
			_, err := c.Auth.UpdateProfile(ctx, entity.UserUpdate{})
			return err
		}, "PUT", "/auth/profile", ""},
		{"auth password", func(ctx context.Context, c *Client) error {
			return c.Auth.ChangePassword(ctx, entity.PasswordChange{CurrentPassword: "a", NewPassword: "b"})
		}, "PUT", "/auth/password", ""},
		{"dogs list", func(ctx context.Context, c *Client) error {
			_, err := c.Dogs.List(ctx, entity.DogQuery{Size: entity.DogSmall})
			return err
		}, "GET", "/dogs", "size=small"},
		{"dogs all", func(ctx context.Context, c *Client) error {
			_, err := c.Dogs.ListAll(ctx, entity.DogQuery{})
			return err
		}, "GET", "/dogs/all", ""},
		{"dogs get", func(ctx context.Context, c *Client) error { _, err := c.Dogs.Get(ctx, 5); return err }, "GET", "/dogs/5", ""},
		{"dogs create", func(ctx context.Context, c *Client) error {
			_, err := c.Dogs.Create(ctx, entity.DogInput{})
			return err
		}, "POST", "/dogs", ""},
		{"dogs update", func(ctx context.Context, c *Client) error {
			_, err := c.Dogs.Update(ctx, 5, entity.DogInput{})
			return err
		}, "PUT", "/dogs/5", ""},
		{"dogs delete", func(ctx context.Context, c *Client) error { return c.Dogs.Delete(ctx, 5) }, "DELETE", "/dogs/5", ""},
		{"dogs delete photo", func(ctx context.Context, c *Client) error { return c.Dogs.DeletePhoto(ctx, 5, 8) }, "DELETE", "/dogs/5/photos/8", ""},
		{"fosters mine", func(ctx context.Context, c *Client) error { _, err := c.Fosters.MyApplications(ctx); return err }, "GET", "/fosters/my-applications", ""},
		{"fosters apply", func(ctx context.Context, c *Client) error {
			_, err := c.Fosters.Apply(ctx, 4, entity.ApplicationInput{})
			return err
		}, "POST", "/fosters/apply/4", ""},
		{"fosters status", func(ctx context.Context, c *Client) error {
			_, err := c.Fosters.UpdateStatus(ctx, 11, entity.ApplicationApproved)
			return err
		}, "PUT", "/fosters/11/status", ""},
		{"fosters list", func(ctx context.Context, c *Client) error {
			_, err := c.Fosters.Applications(ctx, entity.ApplicationQuery{Status: entity.ApplicationPending})
			return err
		}, "GET", "/fosters/applications", "status=pending"},
		{"favorites get", func(ctx context.Context, c *Client) error { _, err := c.Favorites.Get(ctx); return err }, "GET", "/favorites", ""},
		{"favorites add", func(ctx context.Context, c *Client) error { return c.Favorites.Add(ctx, 2) }, "POST", "/favorites/2", ""},
		{"favorites remove", func(ctx context.Context, c *Client) error { return c.Favorites.Remove(ctx, 2) }, "DELETE", "/favorites/2", ""},
		{"search dogs", func(ctx context.Context, c *Client) error {
			_, err := c.Search.Dogs(ctx, "lab", entity.DogQuery{})
			return err
		}, "GET", "/search/dogs", "q=lab"},
		{"search breeds", func(ctx context.Context, c *Client) error { _, err := c.Search.Breeds(ctx); return err }, "GET", "/search/breeds", ""},
		{"search locations", func(ctx context.Context, c *Client) error {
			_, err := c.Search.Locations(ctx, "Mad")
			return err
		}, "GET", "/search/locations", "q=Mad"},
		{"shelters register", func(ctx context.Context, c *Client) error {
			_, err := c.Shelters.Register(ctx, entity.ShelterRegistration{})
			return err
		}, "POST", "/api/shelters/register", ""},
		{"shelters pending", func(ctx context.Context, c *Client) error { _, err := c.Shelters.Pending(ctx); return err }, "GET", "/api/shelters/pending", ""},
		{"shelters approved", func(ctx context.Context, c *Client) error { _, err := c.Shelters.Approved(ctx); return err }, "GET", "/api/shelters/approved", ""},
		{"shelters approve", func(ctx context.Context, c *Client) error {
			_, err := c.Shelters.Approve(ctx, entity.ShelterApproval{UserID: 3, Approved: true})
			return err
		}, "POST", "/api/shelters/approve", ""},
		{"shelters status", func(ctx context.Context, c *Client) error { _, err := c.Shelters.MyStatus(ctx); return err }, "GET", "/api/shelters/my-status", ""},
		{"admin stats", func(ctx context.Context, c *Client) error { _, err := c.Admin.Stats(ctx); return err }, "GET", "/auth/admin/stats", ""},
		{"admin users", func(ctx context.Context, c *Client) error {
			_, err := c.Admin.Users(ctx, entity.UserQuery{Search: "ana"})
			return err
		}, "GET", "/auth/admin/users", "search=ana"},
		{"admin role", func(ctx context.Context, c *Client) error { _, err := c.Admin.UpdateRole(ctx, 6, role); return err }, "PUT", "/auth/admin/users/6", ""},
		{"admin delete", func(ctx context.Context, c *Client) error { return c.Admin.DeleteUser(ctx, 6) }, "DELETE", "/auth/admin/users/6", ""},
		{"external shelters", func(ctx context.Context, c *Client) error { _, err := c.External.Shelters(ctx); return err }, "GET", "/api/external-shelters", ""},
		{"external shelter dogs", func(ctx context.Context, c *Client) error { _, err := c.External.ShelterDogs(ctx, 2); return err }, "GET", "/api/external-shelters/2/dogs", ""},
		{"external dogs", func(ctx context.Context, c *Client) error { _, err := c.External.Dogs(ctx); return err }, "GET", "/api/external-dogs", ""},
		{"external sync", func(ctx context.Context, c *Client) error { _, err := c.External.Sync(ctx, 2); return err }, "POST", "/api/external-shelters/2/sync", ""},
		{"external sync all", func(ctx context.Context, c *Client) error { return c.External.SyncAll(ctx) }, "POST", "/api/external-shelters/sync-all", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			if err := tt.call(context.Background(), h.client); err != nil {
				t.Fatalf("call error: %v", err)
			}
			if len(h.requests) != 1 {
				t.Fatalf("requests = %d, want 1", len(h.requests))
			}
			r := h.requests[0]
			if r.Method != tt.method || r.URL.Path != tt.path {
				t.Fatalf("request = %s %s, want %s %s", r.Method, r.URL.Path, tt.method, tt.path)
			}
			if r.URL.RawQuery != tt.wantQuery {
				t.Fatalf("query = %q, want %q", r.URL.RawQuery, tt.wantQuery)
			}
		})
	}
}

func TestShelterRegisterForcesShelterType(t *testing.T) {
	var body string
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		writeJSON(w, http.StatusOK, `{"message":"ok","user_id":12}`)
	})

	rec, err := h.client.Shelters.Register(context.Background(), entity.ShelterRegistration{Email: "s@x.org", UserType: entity.UserTypeAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if rec.UserID != 12 {
		t.Fatalf("receipt = %+v", rec)
	}
	if !strings.Contains(body, `"user_type":"shelter"`) {
		t.Fatalf("body = %s", body)
	}
}

func TestUploadPhotoMultipart(t *testing.T) {
	var gotName, gotContent string
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			t.Errorf("content type: %v", err)
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		part, err := mr.NextPart()
		if err != nil {
			t.Errorf("next part: %v", err)
			return
		}
		gotName = part.FileName()
		b, _ := io.ReadAll(part)
		gotContent = string(b)
		writeJSON(w, http.StatusOK, `{"id":1,"url":"/static/rex.jpg"}`)
	})

	photo, err := h.client.Dogs.UploadPhoto(context.Background(), 3, "/tmp/pics/rex.jpg", strings.NewReader("JPEGDATA"))
	if err != nil {
		t.Fatalf("UploadPhoto() error: %v", err)
	}
	if photo.URL != "/static/rex.jpg" || gotName != "rex.jpg" || gotContent != "JPEGDATA" {
		t.Fatalf("photo=%+v name=%q content=%q", photo, gotName, gotContent)
	}
	if h.requests[0].URL.Path != "/dogs/3/photos" {
		t.Fatalf("path = %s", h.requests[0].URL.Path)
	}
}

func TestAdoptionPoster(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="rex-poster.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	p, err := h.client.Dogs.AdoptionPoster(context.Background(), 3)
	if err != nil {
		t.Fatalf("AdoptionPoster() error: %v", err)
	}
	if p.ContentType != "application/pdf" || p.Filename != "rex-poster.pdf" || string(p.Data) != "%PDF-1.4" {
		t.Fatalf("poster = %+v", p)
	}
	if h.requests[0].URL.Path != "/dogs/3/adoption-poster" {
		t.Fatalf("path = %s", h.requests[0].URL.Path)
	}
}
