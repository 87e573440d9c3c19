// Package session is the explicit replacement for ambient credential and
// profile storage. Every component that needs the token or the cached
// profile receives a *Session.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/logger"
)

// ProfileFetcher loads the current user's profile
type ProfileFetcher interface {
	GetMyProfile(ctx context.Context) (*api.Profile, error)
}

// Gate is the result of the admin check
type Gate int

const (
	GateChecking Gate = iota
	GateAllowed
	GateDenied
)

func (g Gate) String() string {
	switch g {
	case GateChecking:
		return "checking"
	case GateAllowed:
		return "allowed"
	default:
		return "denied"
	}
}

// Session combines the credential store with the cached profile
type Session struct {
	store CredentialStore
	log   *logger.Logger

	mu         sync.RWMutex
	profile    *api.Profile
	generation uint64
	inFlight   bool
}

// New creates a session over store
func New(store CredentialStore, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{store: store, log: log}
}

// Store returns the credential store
func (s *Session) Store() CredentialStore {
	return s.store
}

// Token satisfies api.TokenSource
func (s *Session) Token() string {
	return s.store.Token()
}

// HasToken is the auth gate consulted before gated navigation
func (s *Session) HasToken() bool {
	return s.store.HasToken()
}

// Profile returns the cached profile, nil when logged out or not yet loaded
func (s *Session) Profile() *api.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// AvatarURL returns the cached profile image
func (s *Session) AvatarURL() string {
	if p := s.Profile(); p != nil {
		return p.ProfileImage
	}
	return ""
}

// IsAdmin reports whether the cached profile has the admin role
func (s *Session) IsAdmin() bool {
	p := s.Profile()
	return p != nil && strings.EqualFold(p.Role, "admin")
}

// AdminGate decides whether the admin console may be shown
func (s *Session) AdminGate() Gate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil && s.inFlight && s.store.HasToken() {
		return GateChecking
	}
	if s.profile != nil && strings.EqualFold(s.profile.Role, "admin") {
		return GateAllowed
	}
	return GateDenied
}

// Login stores a freshly issued token
func (s *Session) Login(token, username string) error {
	return s.store.Save(token, username)
}

// Logout clears the credential and cached profile
func (s *Session) Logout() error {
	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()
	return s.store.Clear()
}

// Generation returns the id of the latest refresh
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// BeginRefresh starts a new profile refresh and returns its generation.
// Results carrying an older generation are discarded by Apply.
func (s *Session) BeginRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.inFlight = true
	return s.generation
}

// Apply stores the outcome of the refresh identified by gen. It returns
// false when a newer refresh has started since.
func (s *Session) Apply(gen uint64, profile *api.Profile, err error) bool {
	s.mu.Lock()
	if latest := s.generation; gen != latest {
		s.mu.Unlock()
		s.log.Debug("discarding stale profile response (gen %d, latest %d)", gen, latest)
		return false
	}
	s.inFlight = false
	if err == nil {
		s.profile = profile
		s.mu.Unlock()
		return true
	}
	s.mu.Unlock()

	TreatFailureAsLogout(s, err)
	return true
}

// RefreshProfile runs one refresh cycle. Without a token the cached profile
// is dropped and no request is made. Errors never escape.
func (s *Session) RefreshProfile(ctx context.Context, fetcher ProfileFetcher) {
	gen := s.BeginRefresh()
	if !s.store.HasToken() {
		s.Apply(gen, nil, nil)
		return
	}
	profile, err := fetcher.GetMyProfile(ctx)
	s.Apply(gen, profile, err)
}

// TreatFailureAsLogout is the single place where a failed profile fetch is
// turned into a logged-out session. The error is logged and dropped.
func TreatFailureAsLogout(s *Session, err error) {
	s.log.WarnWithFields("profile fetch failed, clearing session", []logger.Field{logger.Error(err)})
	if clearErr := s.Logout(); clearErr != nil {
		s.log.Error("failed to clear credentials: %v", clearErr)
	}
}
