package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samiul132/anginar-bazar/internal/address"
	"github.com/samiul132/anginar-bazar/internal/cart"
	"github.com/samiul132/anginar-bazar/internal/session"
	"github.com/samiul132/anginar-bazar/internal/upstream"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNoAddress = errors.New("no delivery address")
)

// Delivery types offered at checkout.
const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
)

// DefaultPaymentMethod is the only supported method; there is no
// payment gateway.
const DefaultPaymentMethod = "Cash On delivery"

var (
	baseDeliveryFee = decimal.NewFromInt(30)
	expressCharge   = decimal.NewFromInt(20)
)

// Guest orders ship within the fixed service area.
var guestLocation = struct {
	DivisionID, DistrictID, UpazilaID int
}{DivisionID: 1, DistrictID: 6, UpazilaID: 58}

var validate = validator.New()

// Service assembles and places orders from the session's cart. The
// upstream owns pricing and stock authority; the snapshot sent as
// cart_data is what the customer saw.
type Service struct {
	api       *upstream.Client
	carts     *cart.Manager
	sessions  *session.Manager
	addresses *address.Service
	log       logrus.FieldLogger
}

func NewService(api *upstream.Client, carts *cart.Manager, sessions *session.Manager, addresses *address.Service, log logrus.FieldLogger) *Service {
	return &Service{api: api, carts: carts, sessions: sessions, addresses: addresses, log: log}
}

// Totals is the checkout price summary.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	Payable        decimal.Decimal `json:"payable"`
}

// Summary computes the price breakdown for the current cart.
// Authenticated customers pay the base fee, plus the express surcharge
// for express delivery; guest orders ship free.
func (s *Service) Summary(ctx context.Context, sid, deliveryType string) Totals {
	subtotal := s.carts.Total(ctx, sid)

	shipping := decimal.Zero
	if s.sessions.IsAuthenticated(ctx, sid) {
		shipping = baseDeliveryFee
		if deliveryType == DeliveryExpress {
			shipping = shipping.Add(expressCharge)
		}
	}

	return Totals{
		Subtotal:       subtotal,
		ShippingCharge: shipping,
		Payable:        subtotal.Add(shipping),
	}
}

// GuestInfo is required when placing an order without a session.
type GuestInfo struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required,min=10"`
	StreetAddress string `json:"street_address" validate:"required"`
}

// PlaceOrderRequest is the checkout submission.
type PlaceOrderRequest struct {
	DeliveryType  string     `json:"delivery_type"`
	PaymentMethod string     `json:"payment_method"`
	OrderNote     string     `json:"order_note"`
	AddressID     int        `json:"address_id"`
	Guest         *GuestInfo `json:"guest"`
}

// PlaceOrderResult reports a successfully placed order.
type PlaceOrderResult struct {
	OrderID      int             `json:"order_id"`
	Payable      decimal.Decimal `json:"payable"`
	AutoLoggedIn bool            `json:"auto_logged_in"`
}

// PlaceOrder validates the request, submits the order and, on success,
// clears the cart. A guest order whose response carries token+user is
// auto-logged-in.
func (s *Service) PlaceOrder(ctx context.Context, sid string, req PlaceOrderRequest) (PlaceOrderResult, error) {
	items := s.carts.Items(ctx, sid)
	if len(items) == 0 {
		return PlaceOrderResult{}, ErrEmptyCart
	}

	if req.DeliveryType == "" {
		req.DeliveryType = DeliveryStandard
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = DefaultPaymentMethod
	}

	totals := s.Summary(ctx, sid, req.DeliveryType)

	payload := upstream.OrderPayload{
		TotalAmount:    totals.Subtotal,
		ShippingCharge: totals.ShippingCharge,
		PayableAmount:  totals.Payable,
		PaymentMethod:  req.PaymentMethod,
		OrderNote:      req.OrderNote,
		CartData:       snapshot(items),
	}

	// authenticated means token plus a named profile, the same
	// predicate Summary charges shipping by. A requires-profile
	// session still checks out as a guest.
	authenticated := s.sessions.IsAuthenticated(ctx, sid)

	var token string
	if authenticated {
		token = s.sessions.Token(ctx, sid)
		addressID, err := s.resolveAddress(ctx, sid, req.AddressID)
		if err != nil {
			return PlaceOrderResult{}, err
		}
		payload.AddressID = addressID
	} else {
		if req.Guest == nil {
			return PlaceOrderResult{}, ErrNoAddress
		}
		if err := validate.Struct(req.Guest); err != nil {
			return PlaceOrderResult{}, fmt.Errorf("invalid guest details: %w", err)
		}
		payload.Name = req.Guest.Name
		payload.Phone = req.Guest.Phone
		payload.StreetAddress = req.Guest.StreetAddress
		payload.DivisionID = guestLocation.DivisionID
		payload.DistrictID = guestLocation.DistrictID
		payload.UpazilaID = guestLocation.UpazilaID
	}

	placed, env, err := s.api.Orders.Place(ctx, token, payload)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	s.carts.Clear(ctx, sid)

	result := PlaceOrderResult{OrderID: placed.ID, Payable: totals.Payable}

	if !authenticated && env.Token != "" && env.User != nil {
		customer := *env.User
		if customer.Name == "" {
			customer.Name = req.Guest.Name
		}
		if customer.Phone == "" {
			customer.Phone = req.Guest.Phone
		}
		if err := s.sessions.Save(ctx, sid, session.Session{Token: env.Token, Customer: customer}); err != nil {
			s.log.WithError(err).Warn("guest auto-login failed")
		} else {
			result.AutoLoggedIn = true
		}
	}

	return result, nil
}

// resolveAddress uses the requested address or falls back to the
// customer's default.
func (s *Service) resolveAddress(ctx context.Context, sid string, addressID int) (int, error) {
	if addressID > 0 {
		return addressID, nil
	}
	addrs, err := s.addresses.List(ctx, sid)
	if err != nil {
		return 0, err
	}
	d := address.Default(addrs)
	if d == nil {
		return 0, ErrNoAddress
	}
	return d.ID, nil
}

func snapshot(items []cart.Item) []upstream.CartLine {
	lines := make([]upstream.CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, upstream.CartLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return lines
}
