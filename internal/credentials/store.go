// Package credentials keeps username/password-digest pairs in a flat CSV file.
package credentials

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"defense-dash/internal/models"
)

var (
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCredentials   = errors.New("username and password are required")
)

var header = []string{"username", "password_hash"}

// Hash returns the hex SHA-256 digest of password. No salt is applied, so equal
// passwords always produce equal digests.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Store is an append-only credential file. It does no locking.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads every record. A missing file is created with only the header.
func (s *Store) Load(ctx context.Context) ([]models.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ensure(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open credential file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var creds []models.Credential
	first := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read credential file: %w", err)
		}
		if first {
			first = false
			if len(rec) >= 2 && rec[0] == header[0] {
				continue
			}
		}
		if len(rec) < 2 {
			continue
		}
		creds = append(creds, models.Credential{Username: rec[0], PasswordHash: rec[1]})
	}
	return creds, nil
}

// Register appends a new record unless username is already taken.
func (s *Store) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}

	creds, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for _, c := range creds {
		if c.Username == username {
			return ErrDuplicateUser
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open credential file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{username, Hash(password)}); err != nil {
		return fmt.Errorf("append credential: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("append credential: %w", err)
	}
	return nil
}

// Authenticate succeeds when any record carries username and the digest of password.
func (s *Store) Authenticate(ctx context.Context, username, password string) error {
	creds, err := s.Load(ctx)
	if err != nil {
		return err
	}
	digest := Hash(password)
	for _, c := range creds {
		if c.Username == username && c.PasswordHash == digest {
			return nil
		}
	}
	return ErrInvalidCredentials
}

func (s *Store) ensure() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat credential file: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create credential file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write credential header: %w", err)
	}
	w.Flush()
	return w.Error()
}
