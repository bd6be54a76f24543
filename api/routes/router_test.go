package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bazaarhq/bazaar-backend/api/controllers"
	"github.com/bazaarhq/bazaar-backend/internal/catalog"
	"github.com/bazaarhq/bazaar-backend/internal/directory"
	"github.com/bazaarhq/bazaar-backend/internal/orders"
	"github.com/bazaarhq/bazaar-backend/internal/seed"
	"github.com/bazaarhq/bazaar-backend/internal/users"
	"github.com/bazaarhq/bazaar-backend/pkg/config"
	"github.com/bazaarhq/bazaar-backend/pkg/db"
	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
	"github.com/bazaarhq/bazaar-backend/pkg/logger"
	"github.com/bazaarhq/bazaar-backend/pkg/metrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	path := fmt.Sprintf("file:routes_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	client, err := db.New(ctx, config.DBConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := models.AutoMigrate(client.DB()); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	if err := seed.Run(ctx, client.DB()); err != nil {
		t.Fatalf("seeding test db: %v", err)
	}

	logg := logger.New(logger.Options{ServiceName: "bazaar-test", Level: zerolog.ErrorLevel, Output: io.Discard})

	catalogRepo := catalog.NewRepository(client.DB())
	directoryRepo := directory.NewRepository(client.DB())
	userRepo := users.NewRepository(client.DB())
	orderRepo := orders.NewRepository(client.DB())

	directoryService, err := directory.NewService(directoryRepo)
	if err != nil {
		t.Fatalf("building directory service: %v", err)
	}
	catalogService, err := catalog.NewService(catalogRepo, directoryRepo)
	if err != nil {
		t.Fatalf("building catalog service: %v", err)
	}
	userService, err := users.NewService(userRepo)
	if err != nil {
		t.Fatalf("building user service: %v", err)
	}
	orderService, err := orders.NewService(orders.ServiceParams{
		DBClient:  client,
		Repo:      orderRepo,
		Products:  catalogRepo,
		Customers: userRepo,
		Branches:  directoryRepo,
		Logger:    logg,
	})
	if err != nil {
		t.Fatalf("building order service: %v", err)
	}

	router := New(RouterParams{
		Logger:    logg,
		Metrics:   metrics.NewHTTP("bazaar-test"),
		Health:    controllers.NewHealthController(client, logg),
		Products:  controllers.NewProductController(catalogService, logg),
		Directory: controllers.NewDirectoryController(directoryService, logg),
		Orders:    controllers.NewOrderController(orderService, logg),
		Users:     controllers.NewUserController(userService, logg),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, server *httptest.Server, path string, dest any) int {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			t.Fatalf("decoding GET %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, server *httptest.Server, path string, body any, dest any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encoding body: %v", err)
	}
	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			t.Fatalf("decoding POST %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func findProduct(t *testing.T, server *httptest.Server, name string) map[string]any {
	t.Helper()
	var products []map[string]any
	if status := getJSON(t, server, "/api/products", &products); status != http.StatusOK {
		t.Fatalf("listing products: status %d", status)
	}
	for _, p := range products {
		if p["name"] == name {
			return p
		}
	}
	t.Fatalf("product %q not in catalog", name)
	return nil
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	var body map[string]any
	if status := getJSON(t, server, "/api/health", &body); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	if body["status"] != "ok" {
		t.Fatalf("got %v", body)
	}
	if body["timestamp"] == nil {
		t.Fatal("expected timestamp")
	}
}

func TestCitiesEndpoint(t *testing.T) {
	server := newTestServer(t)

	var cities []string
	if status := getJSON(t, server, "/api/cities", &cities); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}

	want := []string{"Balkh", "Herat", "Jalalabad", "Kabul", "Kandahar"}
	if len(cities) != len(want) {
		t.Fatalf("got %v, want %v", cities, want)
	}
	for i := range want {
		if cities[i] != want[i] {
			t.Fatalf("got %v, want %v", cities, want)
		}
	}
}

func TestBranchesEndpoint(t *testing.T) {
	server := newTestServer(t)

	var branches []map[string]any
	if status := getJSON(t, server, "/api/branches?city=Kabul", &branches); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	if len(branches) != 1 {
		t.Fatalf("got %d branches, want 1", len(branches))
	}
	if branches[0]["name"] != "Kabul Central Branch" {
		t.Fatalf("got %v", branches[0])
	}
}

func TestProductListingAndFilters(t *testing.T) {
	server := newTestServer(t)

	var all []map[string]any
	if status := getJSON(t, server, "/api/products", &all); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	if len(all) != 5 {
		t.Fatalf("got %d products, want 5", len(all))
	}

	var kabul []map[string]any
	if status := getJSON(t, server, "/api/products?city=Kabul", &kabul); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	if len(kabul) != 1 || kabul[0]["name"] != "Afghan Rug" {
		t.Fatalf("got %v", kabul)
	}

	var grocery []map[string]any
	if status := getJSON(t, server, "/api/products?category=Grocery", &grocery); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	if len(grocery) != 2 {
		t.Fatalf("got %d grocery products, want 2", len(grocery))
	}

	var branches []map[string]any
	getJSON(t, server, "/api/branches?city=Balkh", &branches)
	var byBranch []map[string]any
	if status := getJSON(t, server, "/api/products?branch="+branches[0]["id"].(string), &byBranch); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	if len(byBranch) != 1 || byBranch[0]["name"] != "Dried Fruits" {
		t.Fatalf("got %v", byBranch)
	}

	var envelope map[string]any
	if status := getJSON(t, server, "/api/products?branch=not-a-uuid", &envelope); status != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400 for malformed branch filter", status)
	}
}

func TestProductGetAndNotFound(t *testing.T) {
	server := newTestServer(t)

	rug := findProduct(t, server, "Afghan Rug")

	var fetched map[string]any
	if status := getJSON(t, server, "/api/products/"+rug["id"].(string), &fetched); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	if fetched["price"] != 49.99 {
		t.Fatalf("got price %v", fetched["price"])
	}
	if fetched["location"] != "Kabul" {
		t.Fatalf("got location %v", fetched["location"])
	}

	var envelope map[string]any
	if status := getJSON(t, server, "/api/products/7f9c24e5-1b0a-4b7e-9c2d-3f4a5b6c7d8e", &envelope); status != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", status)
	}
	if status := getJSON(t, server, "/api/products/not-a-uuid", &envelope); status != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", status)
	}
}

func TestProductCreation(t *testing.T) {
	server := newTestServer(t)

	var created map[string]any
	status := postJSON(t, server, "/api/products", map[string]any{
		"name":     "Saffron",
		"price":    14.5,
		"location": "Herat",
		"stock":    20,
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("got status %d, want 201", status)
	}
	if created["category"] != "uncategorized" {
		t.Fatalf("got category %v", created["category"])
	}

	var envelope map[string]any
	status = postJSON(t, server, "/api/products", map[string]any{
		"name":     "Broken",
		"price":    -2,
		"location": "Herat",
	}, &envelope)
	if status != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", status)
	}

	var all []map[string]any
	getJSON(t, server, "/api/products", &all)
	if len(all) != 6 {
		t.Fatalf("got %d products, rejected draft must not persist", len(all))
	}
}

func TestUserCreationAndConflict(t *testing.T) {
	server := newTestServer(t)

	var created map[string]any
	status := postJSON(t, server, "/api/users", map[string]any{
		"name":  "Hamid",
		"email": "hamid@example.com",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("got status %d, want 201", status)
	}
	if created["role"] != "customer" {
		t.Fatalf("got role %v", created["role"])
	}

	var envelope map[string]any
	status = postJSON(t, server, "/api/users", map[string]any{
		"name":  "Hamid Again",
		"email": "hamid@example.com",
	}, &envelope)
	if status != http.StatusConflict {
		t.Fatalf("got status %d, want 409", status)
	}
}

func TestOrderLifecycleEndToEnd(t *testing.T) {
	server := newTestServer(t)

	tea := findProduct(t, server, "Green Tea")
	rug := findProduct(t, server, "Afghan Rug")

	var customer map[string]any
	if status := postJSON(t, server, "/api/users", map[string]any{
		"name":  "Order Customer",
		"email": "orders@example.com",
	}, &customer); status != http.StatusCreated {
		t.Fatalf("creating customer: status %d", status)
	}

	var branches []map[string]any
	getJSON(t, server, "/api/branches?city=Kabul", &branches)
	branchID := branches[0]["id"].(string)

	var order map[string]any
	status := postJSON(t, server, "/api/orders", map[string]any{
		"customer_id": customer["id"],
		"branch_id":   branchID,
		"items": []map[string]any{
			{"product_id": tea["id"], "quantity": 2},
			{"product_id": rug["id"], "quantity": 1},
		},
	}, &order)
	if status != http.StatusCreated {
		t.Fatalf("got status %d, want 201 (body %v)", status, order)
	}
	if order["status"] != "pending" {
		t.Fatalf("got status %v", order["status"])
	}
	if order["total"] != 61.97 {
		t.Fatalf("got total %v, want 61.97", order["total"])
	}

	orderID := order["id"].(string)

	var fetched map[string]any
	if status := getJSON(t, server, "/api/orders/"+orderID, &fetched); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	items := fetched["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}

	var listed []map[string]any
	if status := getJSON(t, server, "/api/orders?customer_id="+customer["id"].(string), &listed); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	if len(listed) != 1 {
		t.Fatalf("got %d orders", len(listed))
	}

	// Shipping a pending order skips confirmation and must be refused.
	var envelope map[string]any
	if status := postJSON(t, server, "/api/orders/"+orderID+"/ship", nil, &envelope); status != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422", status)
	}

	var confirmed map[string]any
	if status := postJSON(t, server, "/api/orders/"+orderID+"/confirm", nil, &confirmed); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	if confirmed["status"] != "confirmed" {
		t.Fatalf("got %v", confirmed["status"])
	}

	var shipped map[string]any
	if status := postJSON(t, server, "/api/orders/"+orderID+"/ship", nil, &shipped); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	var delivered map[string]any
	if status := postJSON(t, server, "/api/orders/"+orderID+"/deliver", nil, &delivered); status != http.StatusOK {
		t.Fatalf("got status %d", status)
	}
	if delivered["status"] != "delivered" {
		t.Fatalf("got %v", delivered["status"])
	}

	if status := postJSON(t, server, "/api/orders/"+orderID+"/cancel", nil, &envelope); status != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422 for cancel after delivery", status)
	}
}

func TestOrderValidationFailures(t *testing.T) {
	server := newTestServer(t)

	var customer map[string]any
	postJSON(t, server, "/api/users", map[string]any{
		"name":  "Cart Customer",
		"email": "cart@example.com",
	}, &customer)

	var branches []map[string]any
	getJSON(t, server, "/api/branches?city=Herat", &branches)
	branchID := branches[0]["id"].(string)

	var envelope map[string]any
	status := postJSON(t, server, "/api/orders", map[string]any{
		"customer_id": customer["id"],
		"branch_id":   branchID,
		"items":       []map[string]any{},
	}, &envelope)
	if status != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400 for empty cart", status)
	}

	status = postJSON(t, server, "/api/orders", map[string]any{
		"customer_id": customer["id"],
		"branch_id":   branchID,
		"items": []map[string]any{
			{"product_id": "7f9c24e5-1b0a-4b7e-9c2d-3f4a5b6c7d8e", "quantity": 1},
		},
	}, &envelope)
	if status != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400 for unknown product", status)
	}

	if status := getJSON(t, server, "/api/orders", &envelope); status != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400 for missing customer_id", status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	getJSON(t, server, "/api/health", nil)

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading metrics: %v", err)
	}
	if !bytes.Contains(body, []byte("http_requests_total")) {
		t.Fatal("expected request counter in metrics exposition")
	}
}

func TestRequestIDHeader(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("expected generated request id header")
	}

	req, _ := http.NewRequest("GET", server.URL+"/api/health", nil)
	req.Header.Set("X-Request-Id", "caller-supplied")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with request id: %v", err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get("X-Request-Id"); got != "caller-supplied" {
		t.Fatalf("got %q, want caller-supplied id echoed", got)
	}
}
