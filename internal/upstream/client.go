package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Endpoints consumed from the remote catalog/order service.
const (
	epAuthenticateCustomer = "/authenticate-customer"
	epVerifyOTP            = "/verify-otp"
	epInitProfile          = "/init-profile"
	epDeleteAccount        = "/delete-account"
	epAddress              = "/address"
	epHomeData             = "/get-home-data"
	epAllProducts          = "/get_all_products"
	epCategories           = "/get-categories"
	epBrands               = "/get-brands"
	epPopularItems         = "/get-popular-items"
	epSearch               = "/search"
	epPlaceOrder           = "/place-order"
	epMyOrders             = "/my-orders"
	epContactUs            = "/contact-us"
)

// APIError carries the upstream failure message for a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Envelope is the upstream response shape, decoded once at this
// boundary. A few endpoints (verify-otp, init-profile, place-order)
// additionally return token/user/status at the top level.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Status  string          `json:"status,omitempty"`
	Token   string          `json:"token,omitempty"`
	User    *Customer       `json:"user,omitempty"`
}

// decode unmarshals the data payload into out. Absent data is not an
// error; the zero value of out is left untouched.
func (e Envelope) decode(out any) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decoding upstream data: %w", err)
	}
	return nil
}

// Client is the thin wrapper around the remote REST service. It injects
// headers, performs the call and normalizes the JSON envelope. It does
// not retry, back off or cache; every call is a fresh round trip.
type Client struct {
	baseURL   string
	assetBase string
	httpc     *http.Client
	log       logrus.FieldLogger

	Auth    *AuthAPI
	Catalog *CatalogAPI
	Orders  *OrdersAPI
	Address *AddressAPI
	Contact *ContactAPI
}

func NewClient(baseURL, assetBase string, log logrus.FieldLogger) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		assetBase: strings.TrimRight(assetBase, "/"),
		httpc:     &http.Client{},
		log:       log,
	}
	c.Auth = &AuthAPI{c: c}
	c.Catalog = &CatalogAPI{c: c}
	c.Orders = &OrdersAPI{c: c}
	c.Address = &AddressAPI{c: c}
	c.Contact = &ContactAPI{c: c}
	return c
}

// request performs one upstream call. token may be empty for public
// endpoints. payload, when non-nil, is sent as a JSON body.
func (c *Client) request(ctx context.Context, method, endpoint, token string, payload any) (Envelope, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return Envelope{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("calling %s %s: %w", method, endpoint, err)
	}
	defer res.Body.Close()

	var env Envelope
	decodeErr := json.NewDecoder(res.Body).Decode(&env)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", res.StatusCode)
		}
		c.log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"status":   res.StatusCode,
		}).Warn("upstream request failed")
		return env, &APIError{Status: res.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return Envelope{}, fmt.Errorf("decoding response of %s: %w", endpoint, decodeErr)
	}
	return env, nil
}
