// Package config reads the client configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/credential"
	"github.com/ovaphlow/pitchfork/foster-client-go/pkg/database"
	"github.com/ovaphlow/pitchfork/foster-client-go/pkg/utilities"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

type Config struct {
	APIURL      string
	HTTPTimeout time.Duration

	// CredentialStore is StoreFile or StorePostgres.
	CredentialStore    string
	CredentialFile     string
	CredentialProfile  string
	CredentialPassword string

	Database database.Config
	Log      utilities.Config
}

// Load reads the configuration. Callers load .env beforehand if they want
// one.
func Load() (Config, error) {
	cfg := Config{
		APIURL:             getEnv("FOSTER_API_URL", api.DefaultBaseURL),
		CredentialStore:    strings.ToLower(getEnv("FOSTER_CREDENTIAL_STORE", StoreFile)),
		CredentialFile:     getEnv("FOSTER_CREDENTIAL_FILE", credential.DefaultPath()),
		CredentialProfile:  getEnv("FOSTER_CREDENTIAL_PROFILE", "default"),
		CredentialPassword: os.Getenv("FOSTER_CREDENTIAL_PASSPHRASE"),
		Database:           database.ConfigFromEnv(),
		Log:                utilities.ConfigFromEnv(),
	}

	secs, err := strconv.Atoi(getEnv("FOSTER_HTTP_TIMEOUT_SEC", "30"))
	if err != nil || secs <= 0 {
		return Config{}, fmt.Errorf("FOSTER_HTTP_TIMEOUT_SEC: want a positive integer, got %q", os.Getenv("FOSTER_HTTP_TIMEOUT_SEC"))
	}
	cfg.HTTPTimeout = time.Duration(secs) * time.Second

	switch cfg.CredentialStore {
	case StoreFile:
	case StorePostgres:
		if cfg.Database.DSN == "" {
			return Config{}, fmt.Errorf("FOSTER_CREDENTIAL_STORE=postgres requires DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("FOSTER_CREDENTIAL_STORE: unknown store %q", cfg.CredentialStore)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
