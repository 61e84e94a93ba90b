// Package session tracks the single logged-in identity for the running
// instance. There is exactly one session per process and nothing persists
// across restarts.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"sync"

	"github.com/go-faster/errors"
)

// Role is the session's access level.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Sentinel errors for login.
var (
	ErrInvalidCredential = errors.New("invalid admin credential")
	ErrUnknownRole       = errors.New("unknown role")
)

// Session is the current user's role and login state.
type Session struct {
	Role     Role
	LoggedIn bool
}

// Authenticator verifies an admin credential. The static implementation
// below is a demo placeholder; a real deployment plugs in proper
// credential verification here.
type Authenticator interface {
	Authenticate(ctx context.Context, secret string) error
}

// StaticAuthenticator accepts a single shared secret. It stores only the
// HMAC-SHA256 of the secret and compares digests in constant time.
type StaticAuthenticator struct {
	keyHash []byte
	pepper  []byte
}

// NewStaticAuthenticator derives the stored digest from the given secret
// and HMAC pepper.
func NewStaticAuthenticator(secret string, pepper []byte) *StaticAuthenticator {
	return &StaticAuthenticator{
		keyHash: hmacSum(secret, pepper),
		pepper:  pepper,
	}
}

// Authenticate checks the candidate secret against the stored digest.
func (a *StaticAuthenticator) Authenticate(_ context.Context, secret string) error {
	if subtle.ConstantTimeCompare(hmacSum(secret, a.pepper), a.keyHash) != 1 {
		return ErrInvalidCredential
	}
	return nil
}

func hmacSum(secret string, pepper []byte) []byte {
	mac := hmac.New(sha256.New, pepper)
	mac.Write([]byte(secret))
	return mac.Sum(nil)
}

// Manager holds the process-wide session state.
type Manager struct {
	auth Authenticator

	mu      sync.RWMutex
	current Session
}

// NewManager returns a Manager in the logged-out customer state.
func NewManager(auth Authenticator) *Manager {
	return &Manager{
		auth:    auth,
		current: Session{Role: RoleCustomer},
	}
}

// Login sets the session role. Customer logins always succeed; admin
// logins require the Authenticator to accept the secret. An invalid admin
// credential leaves the session unchanged.
func (m *Manager) Login(ctx context.Context, role Role, secret string) error {
	switch role {
	case RoleCustomer:
	case RoleAdmin:
		if err := m.auth.Authenticate(ctx, secret); err != nil {
			return err
		}
	default:
		return errors.Wrapf(ErrUnknownRole, "role %q", role)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{Role: role, LoggedIn: true}
	return nil
}

// Logout resets the session to a logged-out customer.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{Role: RoleCustomer}
}

// Current returns the session state.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsAdmin reports whether a logged-in admin session is active. Admin-gated
// operations must check this, not just the role.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Role == RoleAdmin && m.current.LoggedIn
}
