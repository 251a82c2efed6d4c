package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ccmg/qbank-admin/internal/model"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "session.json")
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSaveAndReload(t *testing.T) {
	path := tempStorePath(t)
	store := NewStore(path, zerolog.Nop())

	session := Session{
		Token: "opaque-token",
		User:  &model.User{ID: "admin", UserName: "admin", IsActive: true},
	}
	if err := store.Save(session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewStore(path, zerolog.Nop())
	got := reloaded.Current()
	if got.Token != "opaque-token" {
		t.Fatalf("Token = %q, want persisted", got.Token)
	}
	if got.User == nil || got.User.UserName != "admin" {
		t.Fatalf("User = %#v, want the persisted profile", got.User)
	}
}

func TestStorageKeysStayInteroperable(t *testing.T) {
	path := tempStorePath(t)
	store := NewStore(path, zerolog.Nop())
	if err := store.Save(Session{Token: "t", User: &model.User{ID: "u1"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	var stored map[string]json.RawMessage
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("decode store: %v", err)
	}
	if _, ok := stored[TokenStorageKey]; !ok {
		t.Fatalf("store is missing key %q", TokenStorageKey)
	}
	if _, ok := stored[UserStorageKey]; !ok {
		t.Fatalf("store is missing key %q", UserStorageKey)
	}
}

func TestCorruptStoreDegradesToLoggedOut(t *testing.T) {
	path := tempStorePath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewStore(path, zerolog.Nop())
	if store.IsAuthenticated() {
		t.Fatal("a corrupt store must read as logged-out")
	}
	if store.Token() != "" {
		t.Fatalf("Token = %q, want empty", store.Token())
	}
}

func TestClearForgetsSession(t *testing.T) {
	path := tempStorePath(t)
	store := NewStore(path, zerolog.Nop())
	if err := store.Save(Session{Token: "t"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.IsAuthenticated() {
		t.Fatal("cleared store must be logged-out")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("cleared store must remove the file")
	}

	// Clearing an already-clear store is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestIsAuthenticated(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"no token", "", false},
		{"opaque token", "not-a-jwt", true},
		{"live jwt", "", true},
		{"expired jwt", "", false},
	}
	tests[2].token = signedToken(t, time.Now().Add(time.Hour))
	tests[3].token = signedToken(t, time.Now().Add(-time.Hour))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(tempStorePath(t), zerolog.Nop())
			if tt.token != "" {
				if err := store.Save(Session{Token: tt.token}); err != nil {
					t.Fatalf("Save: %v", err)
				}
			}
			if got := store.IsAuthenticated(); got != tt.want {
				t.Fatalf("IsAuthenticated = %v, want %v", got, tt.want)
			}
		})
	}
}
