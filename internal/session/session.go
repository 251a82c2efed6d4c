// Package session persists the admin's auth token and minimal profile
// between runs. Both values live under a fixed pair of storage keys and
// are written, read, and cleared as a unit; an absent or unreadable store
// simply means logged-out.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ccmg/qbank-admin/internal/model"
)

// Storage keys, kept verbatim from the web client so an exported store
// stays interoperable.
const (
	TokenStorageKey = "ccmg_admin_token"
	UserStorageKey  = "ccmg_admin_user"
)

// Session is the persisted unit: a bearer token and the profile it
// belongs to.
type Session struct {
	Token string
	User  *model.User
}

// Store is a file-backed session store. Not goroutine-safe; the admin
// runtime is single-threaded.
type Store struct {
	path    string
	current Session
	log     zerolog.Logger
}

// NewStore opens (or lazily creates on first Save) the store at path and
// loads any existing session. Read failures degrade to logged-out.
func NewStore(path string, log zerolog.Logger) *Store {
	s := &Store{
		path: path,
		log:  log.With().Str("component", "session").Logger(),
	}
	s.current = s.load()
	return s
}

type storageFile map[string]json.RawMessage

func (s *Store) load() Session {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Msg("không thể đọc thông tin phiên đăng nhập")
		}
		return Session{}
	}

	var stored storageFile
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.log.Warn().Err(err).Msg("phiên đăng nhập lưu trữ bị hỏng")
		return Session{}
	}

	var session Session
	if rawToken, ok := stored[TokenStorageKey]; ok {
		_ = json.Unmarshal(rawToken, &session.Token)
	}
	if rawUser, ok := stored[UserStorageKey]; ok {
		var user model.User
		if err := json.Unmarshal(rawUser, &user); err == nil {
			session.User = &user
		}
	}
	return session
}

// Save persists the session and makes it current.
func (s *Store) Save(session Session) error {
	stored := storageFile{}
	if session.Token != "" {
		token, _ := json.Marshal(session.Token)
		stored[TokenStorageKey] = token
	}
	if session.User != nil {
		user, err := json.Marshal(session.User)
		if err != nil {
			return err
		}
		stored[UserStorageKey] = user
	}

	raw, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return err
	}

	s.current = session
	return nil
}

// Clear forgets the session in memory and on disk.
func (s *Store) Clear() error {
	s.current = Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Current returns the loaded session.
func (s *Store) Current() Session {
	return s.current
}

// Token implements gateway.TokenSource.
func (s *Store) Token() string {
	return s.current.Token
}

// IsAuthenticated reports whether a usable token is present: absence of a
// token implies logged-out, and a JWT past its exp claim counts as absent.
func (s *Store) IsAuthenticated() bool {
	return s.current.Token != "" && !s.tokenExpired()
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; the server remains the authority. Opaque (non-JWT) tokens
// never count as expired here.
func (s *Store) tokenExpired() bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.current.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
