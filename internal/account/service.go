package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samiul132/anginar-bazar/internal/session"
	"github.com/samiul132/anginar-bazar/internal/upstream"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrOTPRejected      = errors.New("otp verification failed")
)

// Service owns the authentication and account flows. All authority
// lives upstream; this layer validates input, calls through and keeps
// the local session blob in step with what the service returns.
type Service struct {
	api      *upstream.Client
	sessions *session.Manager
	log      logrus.FieldLogger
}

func NewService(api *upstream.Client, sessions *session.Manager, log logrus.FieldLogger) *Service {
	return &Service{api: api, sessions: sessions, log: log}
}

// normalizePhone trims whitespace and checks the minimum length the
// upstream accepts. Length is the only local check; number validity is
// decided by the OTP delivery itself.
func normalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if len(phone) < 10 {
		return "", ErrInvalidPhone
	}
	return phone, nil
}

// RequestOTP asks the upstream to send an OTP to the phone.
func (s *Service) RequestOTP(ctx context.Context, phone string) error {
	phone, err := normalizePhone(phone)
	if err != nil {
		return err
	}
	if _, err := s.api.Auth.AuthenticateCustomer(ctx, phone); err != nil {
		return fmt.Errorf("requesting otp: %w", err)
	}
	return nil
}

// VerifyOTP exchanges the code for a bearer token and stores the
// session. requiresProfile is true when the account has no usable name
// yet and must go through InitProfile.
func (s *Service) VerifyOTP(ctx context.Context, sid, phone, otp string) (upstream.Customer, bool, error) {
	phone, err := normalizePhone(phone)
	if err != nil {
		return upstream.Customer{}, false, err
	}
	if strings.TrimSpace(otp) == "" {
		return upstream.Customer{}, false, ErrOTPRejected
	}

	env, err := s.api.Auth.VerifyOTP(ctx, phone, otp)
	if err != nil {
		return upstream.Customer{}, false, err
	}
	if env.Token == "" || env.User == nil {
		return upstream.Customer{}, false, ErrOTPRejected
	}

	customer := *env.User
	if customer.Phone == "" {
		customer.Phone = phone
	}
	if err := s.sessions.Save(ctx, sid, session.Session{Token: env.Token, Customer: customer}); err != nil {
		// the upstream accepted the login; a failed local save only
		// costs this request its session
		s.log.WithError(err).Warn("saving session after otp verify failed")
	}

	requiresProfile := !hasUsableName(customer.Name)
	return customer, requiresProfile, nil
}

// InitProfile completes a fresh account and refreshes the stored
// customer profile.
func (s *Service) InitProfile(ctx context.Context, sid string, req upstream.InitProfileRequest) (upstream.Customer, error) {
	sess, err := s.sessions.Load(ctx, sid)
	if err != nil {
		return upstream.Customer{}, ErrNotAuthenticated
	}

	env, err := s.api.Auth.InitProfile(ctx, sess.Token, req)
	if err != nil {
		return upstream.Customer{}, err
	}
	if env.User == nil {
		if env.Message != "" {
			return upstream.Customer{}, errors.New(env.Message)
		}
		return upstream.Customer{}, errors.New("failed to complete profile")
	}

	customer := *env.User
	if customer.Phone == "" {
		customer.Phone = sess.Customer.Phone
	}
	sess.Customer = customer
	if err := s.sessions.Save(ctx, sid, sess); err != nil {
		s.log.WithError(err).Warn("saving session after init profile failed")
	}
	return customer, nil
}

// Profile returns the cached customer for the session.
func (s *Service) Profile(ctx context.Context, sid string) (upstream.Customer, error) {
	sess, err := s.sessions.Load(ctx, sid)
	if err != nil {
		return upstream.Customer{}, ErrNotAuthenticated
	}
	return sess.Customer, nil
}

// Logout discards the local session. The upstream token is simply
// abandoned; the service expires it on its own schedule.
func (s *Service) Logout(ctx context.Context, sid string) error {
	return s.sessions.Clear(ctx, sid)
}

// DeleteAccount removes the account upstream, then tears the session
// down.
func (s *Service) DeleteAccount(ctx context.Context, sid string) error {
	sess, err := s.sessions.Load(ctx, sid)
	if err != nil {
		return ErrNotAuthenticated
	}
	if _, err := s.api.Auth.DeleteAccount(ctx, sess.Token); err != nil {
		return err
	}
	return s.sessions.Clear(ctx, sid)
}

// OrdersResult is the my-orders response shape the storefront renders.
type OrdersResult struct {
	Success     bool             `json:"success"`
	Data        []upstream.Order `json:"data"`
	CurrentPage int              `json:"current_page"`
	LastPage    int              `json:"last_page"`
	Total       int              `json:"total"`
	Message     string           `json:"message,omitempty"`
}

// MyOrders lists the customer's order history. Without a token it
// resolves locally to a not-authenticated result and never issues a
// network call; this is a convenience gate, not a security boundary.
func (s *Service) MyOrders(ctx context.Context, sid string, page int) (OrdersResult, error) {
	token := s.sessions.Token(ctx, sid)
	if token == "" {
		return OrdersResult{
			Success:     false,
			Data:        []upstream.Order{},
			CurrentPage: 1,
			LastPage:    1,
			Message:     "Not authenticated",
		}, nil
	}

	orders, err := s.api.Orders.MyOrders(ctx, token, page)
	if err != nil {
		return OrdersResult{}, err
	}
	if orders.Data == nil {
		orders.Data = []upstream.Order{}
	}
	return OrdersResult{
		Success:     true,
		Data:        orders.Data,
		CurrentPage: orders.CurrentPage,
		LastPage:    orders.LastPage,
		Total:       orders.Total,
	}, nil
}

// OrderDetails fetches one order. Guest orders have no token to query
// with, so they get a limited local response.
func (s *Service) OrderDetails(ctx context.Context, sid string, orderID int, guest bool) (*upstream.Order, string, error) {
	if guest {
		return nil, "Guest order - limited details available", nil
	}

	token := s.sessions.Token(ctx, sid)
	if token == "" {
		return nil, "", ErrNotAuthenticated
	}
	order, err := s.api.Orders.Details(ctx, token, orderID)
	if err != nil {
		return nil, "", err
	}
	return &order, "", nil
}

func hasUsableName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && name != "null"
}
