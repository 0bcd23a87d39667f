package catalog

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/samiul132/anginar-bazar/internal/upstream"
)

func newCatalogApp(upstreamURL string) *fiber.App {
	app := fiber.New()
	service := NewService(upstream.NewClient(upstreamURL, "", testLogger()), testLogger())
	NewHandler(service).RegisterRoutes(app)
	return app
}

func getRoute(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestHomeRoute_UpstreamErrorIs502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"success":false,"message":"under maintenance"}`))
	}))
	defer srv.Close()
	app := newCatalogApp(srv.URL)

	status, body := getRoute(t, app, "/api/v1/home")
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", status, body)
	}
	if !strings.Contains(body, "under maintenance") {
		t.Errorf("expected the upstream message, got %s", body)
	}
}

func TestHomeRoute_TransportErrorIs502(t *testing.T) {
	app := newCatalogApp("http://127.0.0.1:0")

	status, _ := getRoute(t, app, "/api/v1/home")
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", status)
	}
}

func TestShopRoute_FiltersAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"products":{"data":[
			{"id":1,"product_name":"banana","sale_price":"30"},
			{"id":2,"product_name":"apple","sale_price":"50","promotional_price":"20"},
			{"id":3,"product_name":"carrot","sale_price":"400"}
		],"current_page":1,"last_page":1,"total":3},"max_price":"400"}}`))
	}))
	defer srv.Close()
	app := newCatalogApp(srv.URL)

	status, body := getRoute(t, app, "/api/v1/shop?max_price=100&sort=price_asc")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if !strings.Contains(body, `"total":2`) {
		t.Errorf("expected two products within range, got %s", body)
	}
	if strings.Contains(body, "carrot") {
		t.Errorf("carrot is over max_price, got %s", body)
	}
	if strings.Index(body, "apple") > strings.Index(body, "banana") {
		t.Errorf("expected price ascending order, got %s", body)
	}
	// bounds come from the unfiltered list
	if !strings.Contains(body, `"min_price":20`) || !strings.Contains(body, `"max_price":400`) {
		t.Errorf("unexpected price bounds, got %s", body)
	}
}

func TestSearchRoute_BlankQuery(t *testing.T) {
	app := newCatalogApp("http://127.0.0.1:0")

	status, body := getRoute(t, app, "/api/v1/search?keywords=++")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, `"data":[]`) {
		t.Errorf("expected empty result page, got %s", body)
	}
}
