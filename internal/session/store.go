// Package session holds the authenticated identity and credential, persists
// them across restarts, and gates access to role-scoped views.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/workdlabs/workd/pkg/domain"
)

const (
	identityFile = "identity.json"
	tokenFile    = "token"
)

// Session is the in-memory record of who is logged in. Identity and Token
// are always both present; a partial session is never constructed.
type Session struct {
	Identity domain.Identity
	Token    string
}

// Store is the single source of truth for the active session. It restores
// state from the state directory once per process and persists changes on
// Login/Logout.
type Store struct {
	dir string

	mu          sync.Mutex
	once        sync.Once
	initialized bool
	current     *Session
}

// NewStore creates a store backed by dir. Nothing is read until Initialize.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Initialize restores the persisted session, if any. It runs at most once per
// process; missing or corrupt storage leaves the store empty. After the first
// call the store always reports initialized.
func (s *Store) Initialize() {
	s.once.Do(func() {
		sess := s.restore()
		s.mu.Lock()
		s.current = sess
		s.initialized = true
		s.mu.Unlock()
	})
}

// restore reads both persisted keys. Either key missing, unreadable, or
// carrying an unknown role means no session.
func (s *Store) restore() *Session {
	idData, err := os.ReadFile(filepath.Join(s.dir, identityFile))
	if err != nil {
		return nil
	}
	tokData, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return nil
	}
	var id domain.Identity
	if err := json.Unmarshal(idData, &id); err != nil {
		return nil
	}
	token := strings.TrimSpace(string(tokData))
	if id.ID == "" || token == "" || !domain.Known(string(id.Role)) {
		return nil
	}
	return &Session{Identity: id, Token: token}
}

// Initialized reports whether restoration has completed. Route decisions are
// deferred until this is true.
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Current returns a copy of the active session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Login installs the session in memory and persists identity and credential.
// The in-memory session is set even if persistence fails; the returned error
// only reports that the session will not survive a restart.
func (s *Store) Login(id domain.Identity, token string) error {
	s.mu.Lock()
	s.current = &Session{Identity: id, Token: token}
	s.initialized = true
	s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("session.Login: create state dir: %w", err)
	}
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("session.Login: marshal identity: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, identityFile), data, 0o600); err != nil {
		return fmt.Errorf("session.Login: save identity: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("session.Login: save token: %w", err)
	}
	return nil
}

// Logout clears the in-memory session and removes both persisted keys.
// Idempotent: logging out with no active session is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	var errs []error
	for _, name := range []string{identityFile, tokenFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("session.Logout: remove %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Snapshot returns the current state for route decisions.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{Initialized: s.initialized}
	if s.current != nil {
		id := s.current.Identity
		snap.Identity = &id
	}
	return snap
}
