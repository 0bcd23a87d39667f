package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samiul132/anginar-bazar/internal/store"
	"github.com/samiul132/anginar-bazar/internal/upstream"
	"github.com/sirupsen/logrus"
)

// ErrNoSession is returned when no auth session exists for a sid.
var ErrNoSession = errors.New("no session")

// Session is the auth state for one browser session: the upstream
// bearer token and the customer profile, always set and cleared
// together. Both present means "authenticated".
type Session struct {
	Token    string            `json:"auth_token"`
	Customer upstream.Customer `json:"customer_data"`
}

// Manager persists sessions as a single JSON blob per sid, independent
// of the cart blob.
type Manager struct {
	store store.Store
	log   logrus.FieldLogger
}

func NewManager(st store.Store, log logrus.FieldLogger) *Manager {
	return &Manager{store: st, log: log}
}

func key(sid string) string {
	return "session:" + sid
}

func (m *Manager) Load(ctx context.Context, sid string) (Session, error) {
	data, err := m.store.Get(ctx, key(sid))
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("loading session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decoding session: %w", err)
	}
	if s.Token == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}

func (m *Manager) Save(ctx context.Context, sid string, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := m.store.Set(ctx, key(sid), data); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (m *Manager) Clear(ctx context.Context, sid string) error {
	return m.store.Delete(ctx, key(sid))
}

// Token returns the bearer token for sid, or "" when unauthenticated.
func (m *Manager) Token(ctx context.Context, sid string) string {
	s, err := m.Load(ctx, sid)
	if err != nil {
		return ""
	}
	return s.Token
}

// IsAuthenticated reports whether sid holds a token and a named profile.
func (m *Manager) IsAuthenticated(ctx context.Context, sid string) bool {
	s, err := m.Load(ctx, sid)
	if err != nil {
		return false
	}
	return s.Token != "" && s.Customer.Name != ""
}
