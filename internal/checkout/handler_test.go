package checkout

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/samiul132/anginar-bazar/internal/cart"
	"github.com/samiul132/anginar-bazar/internal/session"
)

func newCheckoutApp(upstreamURL string) (*fiber.App, fixture) {
	f := newFixture(upstreamURL)
	app := fiber.New()
	app.Use(session.Middleware("test-secret"))
	cart.NewHandler(f.carts).RegisterRoutes(app)
	NewHandler(f.service).RegisterRoutes(app)
	return app, f
}

// doJSON sends a request reusing the session cookie from earlier
// responses so all calls share one cart.
func doJSON(t *testing.T, app *fiber.App, cookie *string, method, target, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if *cookie != "" {
		req.Header.Set("Cookie", session.CookieName+"="+*cookie)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			*cookie = c.Value
		}
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp.StatusCode, string(raw)
}

func TestPlaceOrderRoute_EmptyCart(t *testing.T) {
	app, _ := newCheckoutApp("http://127.0.0.1:0")
	cookie := ""

	status, body := doJSON(t, app, &cookie, "POST", "/api/v1/checkout", `{}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", status, body)
	}
	if !strings.Contains(body, "cart is empty") {
		t.Errorf("unexpected body %s", body)
	}
}

func TestPlaceOrderRoute_InvalidGuestDetails(t *testing.T) {
	app, _ := newCheckoutApp("http://127.0.0.1:0")
	cookie := ""

	doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":1,"name":"Rice","price":"100","quantity":1}`)

	status, body := doJSON(t, app, &cookie, "POST", "/api/v1/checkout",
		`{"guest":{"name":"A","phone":"017","street_address":""}}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for failed validation, got %d: %s", status, body)
	}
}

func TestPlaceOrderRoute_UpstreamUnreachableIs502(t *testing.T) {
	// port 0 is never listening, so the order call fails at transport
	// level rather than with an upstream error envelope
	app, _ := newCheckoutApp("http://127.0.0.1:0")
	cookie := ""

	doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":1,"name":"Rice","price":"100","quantity":1}`)

	status, body := doJSON(t, app, &cookie, "POST", "/api/v1/checkout",
		`{"guest":{"name":"Guest One","phone":"01898765432","street_address":"7 Lake View"}}`)
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", status, body)
	}
}

func TestPlaceOrderRoute_UpstreamRejectionIs502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"out of stock"}`))
	}))
	defer srv.Close()

	app, _ := newCheckoutApp(srv.URL)
	cookie := ""

	doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":1,"name":"Rice","price":"100","quantity":1}`)

	status, body := doJSON(t, app, &cookie, "POST", "/api/v1/checkout",
		`{"guest":{"name":"Guest One","phone":"01898765432","street_address":"7 Lake View"}}`)
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", status, body)
	}
	if !strings.Contains(body, "out of stock") {
		t.Errorf("expected the upstream message, got %s", body)
	}
}

func TestSummaryRoute(t *testing.T) {
	app, _ := newCheckoutApp("http://127.0.0.1:0")
	cookie := ""

	doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":1,"name":"Rice","price":"100","quantity":2}`)

	status, body := doJSON(t, app, &cookie, "GET", "/api/v1/checkout/summary", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, `"subtotal":"200"`) {
		t.Errorf("unexpected body %s", body)
	}
	if !strings.Contains(body, `"shipping_charge":"0"`) {
		t.Errorf("guest summary must carry no shipping, got %s", body)
	}
}
