package cart

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samiul132/anginar-bazar/internal/session"
	"github.com/samiul132/anginar-bazar/internal/store"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(session.Middleware("test-secret"))
	NewHandler(NewManager(store.NewMemoryStore(), testLogger(), time.Hour)).RegisterRoutes(app)
	return app
}

// doJSON sends a request reusing the session cookie from earlier
// responses so all calls hit the same cart.
func doJSON(t *testing.T, app *fiber.App, cookie *string, method, target, body string) (*http.Response, string) {
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

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	resp.Body.Close()
	return resp, string(raw)
}

func TestGetCart_Empty(t *testing.T) {
	app := newTestApp()
	cookie := ""

	resp, body := doJSON(t, app, &cookie, "GET", "/api/v1/cart", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"count":0`) {
		t.Errorf("expected empty cart, got %s", body)
	}
}

func TestAddToCart(t *testing.T) {
	app := newTestApp()
	cookie := ""

	resp, body := doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":7,"name":"Mango","price":"120","quantity":2}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, `"count":1`) {
		t.Errorf("expected one line, got %s", body)
	}
	if !strings.Contains(body, `"quantity":2`) {
		t.Errorf("expected quantity 2, got %s", body)
	}

	// same product again merges into the existing line
	_, body = doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":7,"name":"Mango","price":"120","quantity":3}`)
	if !strings.Contains(body, `"count":1`) {
		t.Errorf("expected merged line, got %s", body)
	}
	if !strings.Contains(body, `"quantity":5`) {
		t.Errorf("expected quantity 5, got %s", body)
	}
}

func TestAddToCart_DefaultsQuantity(t *testing.T) {
	app := newTestApp()
	cookie := ""

	_, body := doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":3,"name":"Rice","price":"60"}`)
	if !strings.Contains(body, `"quantity":1`) {
		t.Errorf("expected quantity defaulted to 1, got %s", body)
	}
}

func TestAddToCart_RejectsInvalidProduct(t *testing.T) {
	app := newTestApp()
	cookie := ""

	resp, body := doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":0,"quantity":1}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "invalid product_id") {
		t.Errorf("unexpected body %s", body)
	}
}

func TestUpdateQuantity_RemovesAtZero(t *testing.T) {
	app := newTestApp()
	cookie := ""

	doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":1,"name":"Salt","price":"25","quantity":2}`)

	_, body := doJSON(t, app, &cookie, "PATCH", "/api/v1/cart",
		`{"product_id":1,"quantity":0}`)
	if !strings.Contains(body, `"count":0`) {
		t.Errorf("expected line removed, got %s", body)
	}
}

func TestRemoveAndClear(t *testing.T) {
	app := newTestApp()
	cookie := ""

	doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":1,"name":"Salt","price":"25","quantity":1}`)
	doJSON(t, app, &cookie, "POST", "/api/v1/cart",
		`{"product_id":2,"name":"Oil","price":"180","quantity":1}`)

	_, body := doJSON(t, app, &cookie, "DELETE", "/api/v1/cart/1", "")
	if !strings.Contains(body, `"count":1`) {
		t.Errorf("expected one line left, got %s", body)
	}

	_, body = doJSON(t, app, &cookie, "DELETE", "/api/v1/cart", "")
	if !strings.Contains(body, `"count":0`) {
		t.Errorf("expected cleared cart, got %s", body)
	}
}
