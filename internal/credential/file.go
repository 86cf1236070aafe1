package credential

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrBadPassphrase is returned when a sealed credential file cannot be
// opened with the configured passphrase.
var ErrBadPassphrase = errors.New("credential file: wrong passphrase")

// fileEnvelope is the on-disk layout. Exactly one of Record or Sealed is set.
type fileEnvelope struct {
	Record *Record `json:"record,omitempty"`
	Salt   []byte  `json:"salt,omitempty"`
	Nonce  []byte  `json:"nonce,omitempty"`
	Sealed []byte  `json:"sealed,omitempty"`
}

// FileBackend stores the credential as JSON in a single 0600 file. When a
// passphrase is configured the record is sealed before it touches disk.
type FileBackend struct {
	path       string
	passphrase []byte

	mu sync.Mutex
}

func NewFileBackend(path, passphrase string) (*FileBackend, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("credential file path is required")
	}
	var pass []byte
	if passphrase != "" {
		pass = []byte(passphrase)
	}
	return &FileBackend{path: path, passphrase: pass}, nil
}

// DefaultPath returns ~/.pitchfork/foster/credential.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".pitchfork", "foster", "credential.json")
	}
	return filepath.Join(home, ".pitchfork", "foster", "credential.json")
}

func (f *FileBackend) Load(ctx context.Context) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCredential
		}
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	if len(b) == 0 {
		return nil, ErrNoCredential
	}
	var env fileEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode credential file: %w", err)
	}
	if env.Record != nil {
		return env.Record, nil
	}
	if len(env.Sealed) == 0 {
		return nil, ErrNoCredential
	}
	if len(f.passphrase) == 0 {
		return nil, ErrBadPassphrase
	}
	plain, err := open(f.passphrase, env.Salt, env.Nonce, env.Sealed)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(plain, &rec); err != nil {
		return nil, fmt.Errorf("decode sealed credential: %w", err)
	}
	return &rec, nil
}

func (f *FileBackend) Save(ctx context.Context, rec Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	env := fileEnvelope{Record: &rec}
	if len(f.passphrase) > 0 {
		plain, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode credential: %w", err)
		}
		salt, nonce, sealed, err := seal(f.passphrase, plain)
		if err != nil {
			return err
		}
		env = fileEnvelope{Salt: salt, Nonce: nonce, Sealed: sealed}
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("mkdir credential dir: %w", err)
	}
	// write then rename so a crash never leaves a truncated file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace credential file: %w", err)
	}
	return nil
}

func (f *FileBackend) Delete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}
