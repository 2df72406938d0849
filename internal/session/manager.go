// Package session owns the single resident CAOS session and the mocked
// authentication operations that mutate it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/caoslabs/caos/internal/platform/id"
	"github.com/caoslabs/caos/internal/profile"
	"github.com/caoslabs/caos/internal/session/storage"
	"golang.org/x/crypto/bcrypt"
)

// Latency configures the simulated network delay per operation. Zero values
// disable the delay, which is what every test wants.
type Latency struct {
	Login     time.Duration
	Register  time.Duration
	Federated time.Duration
	Update    time.Duration
}

// DefaultLatency is the production delay profile for the mocked backend.
var DefaultLatency = Latency{
	Login:     800 * time.Millisecond,
	Register:  1000 * time.Millisecond,
	Federated: 1500 * time.Millisecond,
	Update:    500 * time.Millisecond,
}

// Config carries the Manager dependencies.
type Config struct {
	Store       storage.Store
	Clock       func() time.Time
	IDGenerator func() (string, error)
	Latency     Latency
	Logger      *log.Logger
}

// Manager holds the current session and performs the authentication
// operations. Every operation succeeds: unmatched logins fabricate
// a demo visitor instead of failing, and store failures degrade to an
// absent session rather than surfacing.
type Manager struct {
	store       storage.Store
	clock       func() time.Time
	idGenerator func() (string, error)
	latency     Latency
	logger      *log.Logger

	mu      sync.Mutex
	current *profile.Profile
}

// NewManager creates a session manager from the provided configuration.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = id.NewID
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	return &Manager{
		store:       cfg.Store,
		clock:       cfg.Clock,
		idGenerator: cfg.IDGenerator,
		latency:     cfg.Latency,
		logger:      cfg.Logger,
	}, nil
}

// Current returns a copy of the resident profile, if any.
func (m *Manager) Current() (profile.Profile, bool) {
	if m == nil {
		return profile.Profile{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return profile.Profile{}, false
	}
	return m.current.Clone(), true
}

// Restore loads a previously persisted session. A missing, unreadable, or
// corrupt record degrades to an absent session and never fails startup.
func (m *Manager) Restore(ctx context.Context) (profile.Profile, bool) {
	if m == nil {
		return profile.Profile{}, false
	}

	record, err := m.store.Get(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return profile.Profile{}, false
	}
	if err != nil {
		m.logger.Printf("restore session: %v", err)
		return profile.Profile{}, false
	}

	m.setCurrent(record.Profile)
	return record.Profile.Clone(), true
}

// Login resolves an email to a session. A persisted account matching the
// email is reused; anything else yields the fixed demo visitor. It never
// fails: store errors degrade to the demo identity.
func (m *Manager) Login(ctx context.Context, email string) (profile.Profile, error) {
	if m == nil {
		return profile.Profile{}, fmt.Errorf("session manager is not configured")
	}
	if err := m.simulateDelay(ctx, m.latency.Login); err != nil {
		return profile.Profile{}, err
	}

	email = strings.TrimSpace(email)
	record, err := m.store.Get(ctx)
	switch {
	case err == nil && strings.EqualFold(record.Profile.Email, email):
		m.setCurrent(record.Profile)
		return record.Profile.Clone(), nil
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		m.logger.Printf("login lookup: %v", err)
	}

	demo := profile.DemoVisitor(email, m.clock)
	m.setCurrent(demo)
	return demo, nil
}

// Register creates a fresh account from the email, persists it, and makes it
// the resident session. The password is hashed and stored but never checked
// by this mocked flow.
func (m *Manager) Register(ctx context.Context, email, password string) (profile.Profile, error) {
	if m == nil {
		return profile.Profile{}, fmt.Errorf("session manager is not configured")
	}
	if err := m.simulateDelay(ctx, m.latency.Register); err != nil {
		return profile.Profile{}, err
	}

	account, err := profile.NewFromEmail(email, m.clock, m.idGenerator)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	record := storage.Record{Profile: account}
	if password != "" {
		// Best effort, like the store write below: the mocked contract never
		// reads the hash, so a bcrypt failure (such as its 72 byte input
		// limit) must not fail the registration.
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			m.logger.Printf("hash password: %v", err)
		} else {
			record.PasswordHash = string(hash)
		}
	}

	if err := m.store.Put(ctx, record); err != nil {
		m.logger.Printf("persist registered session: %v", err)
	}

	m.setCurrent(account)
	return account.Clone(), nil
}

// FederatedLogin resolves the fixed federated identity. Its empty bio routes
// the caller into onboarding.
func (m *Manager) FederatedLogin(ctx context.Context) (profile.Profile, error) {
	if m == nil {
		return profile.Profile{}, fmt.Errorf("session manager is not configured")
	}
	if err := m.simulateDelay(ctx, m.latency.Federated); err != nil {
		return profile.Profile{}, err
	}

	identity := profile.FederatedIdentity(m.clock)
	if err := m.store.Put(ctx, storage.Record{Profile: identity}); err != nil {
		m.logger.Printf("persist federated session: %v", err)
	}

	m.setCurrent(identity)
	return identity, nil
}

// UpdateProfile replaces the resident profile with the provided one and
// persists it, keeping any stored password hash.
func (m *Manager) UpdateProfile(ctx context.Context, updated profile.Profile) (profile.Profile, error) {
	if m == nil {
		return profile.Profile{}, fmt.Errorf("session manager is not configured")
	}
	if err := m.simulateDelay(ctx, m.latency.Update); err != nil {
		return profile.Profile{}, err
	}

	record := storage.Record{Profile: updated.Clone()}
	if existing, err := m.store.Get(ctx); err == nil {
		record.PasswordHash = existing.PasswordHash
	} else if !errors.Is(err, storage.ErrNotFound) {
		m.logger.Printf("update session lookup: %v", err)
	}

	if err := m.store.Put(ctx, record); err != nil {
		m.logger.Printf("persist updated session: %v", err)
	}

	m.setCurrent(updated)
	return updated.Clone(), nil
}

// Logout clears the resident session and its persisted record.
func (m *Manager) Logout(ctx context.Context) error {
	if m == nil {
		return fmt.Errorf("session manager is not configured")
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (m *Manager) setCurrent(p profile.Profile) {
	cloned := p.Clone()
	m.mu.Lock()
	m.current = &cloned
	m.mu.Unlock()
}

func (m *Manager) simulateDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
