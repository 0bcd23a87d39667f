package address

import (
	"context"
	"errors"

	"github.com/samiul132/anginar-bazar/internal/session"
	"github.com/samiul132/anginar-bazar/internal/upstream"
	"github.com/sirupsen/logrus"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Service proxies the server-owned address book. The upstream enforces
// the single-default invariant; this layer's job is to always encode
// is_default as an integer literal and to pick the pre-selected
// default for the UI.
type Service struct {
	api      *upstream.Client
	sessions *session.Manager
	log      logrus.FieldLogger
}

func NewService(api *upstream.Client, sessions *session.Manager, log logrus.FieldLogger) *Service {
	return &Service{api: api, sessions: sessions, log: log}
}

func (s *Service) token(ctx context.Context, sid string) (string, error) {
	token := s.sessions.Token(ctx, sid)
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

func (s *Service) List(ctx context.Context, sid string) ([]upstream.Address, error) {
	token, err := s.token(ctx, sid)
	if err != nil {
		return nil, err
	}
	addrs, err := s.api.Address.List(ctx, token)
	if err != nil {
		return nil, err
	}
	if addrs == nil {
		addrs = []upstream.Address{}
	}
	return addrs, nil
}

func (s *Service) Add(ctx context.Context, sid string, payload upstream.AddressPayload) error {
	token, err := s.token(ctx, sid)
	if err != nil {
		return err
	}
	_, err = s.api.Address.Add(ctx, token, payload)
	return err
}

func (s *Service) Update(ctx context.Context, sid string, addressID int, payload upstream.AddressPayload) error {
	token, err := s.token(ctx, sid)
	if err != nil {
		return err
	}
	_, err = s.api.Address.Update(ctx, token, addressID, payload)
	return err
}

func (s *Service) Delete(ctx context.Context, sid string, addressID int) error {
	token, err := s.token(ctx, sid)
	if err != nil {
		return err
	}
	_, err = s.api.Address.Delete(ctx, token, addressID)
	return err
}

// Default picks the address the checkout pre-selects: the one with
// is_default == 1, else the first in the list, else nil.
func Default(addrs []upstream.Address) *upstream.Address {
	for i := range addrs {
		if addrs[i].IsDefault == 1 {
			return &addrs[i]
		}
	}
	if len(addrs) > 0 {
		return &addrs[0]
	}
	return nil
}
