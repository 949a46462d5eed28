package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/laundryhub/pkg/account"
	"github.com/example/laundryhub/pkg/business"
	"github.com/example/laundryhub/pkg/config"
	"github.com/example/laundryhub/pkg/models"
	"github.com/example/laundryhub/pkg/orders"
	"github.com/example/laundryhub/pkg/payment"
	"github.com/example/laundryhub/pkg/places"
	"github.com/example/laundryhub/pkg/quotes"
	"github.com/example/laundryhub/pkg/repository"
	"github.com/example/laundryhub/pkg/wizard"
)

// memBackend is an in-memory stand-in for MySQL, Redis and Mongo behind every
// service interface the server wires up.
type memBackend struct {
	mu        sync.Mutex
	orders    map[string]*models.Order
	customers map[string]*models.Customer
	addresses map[string]*models.Address
	quotes    map[string]*models.QuoteRequest
	inquiries []*models.BusinessInquiry
	blobs     map[string][]byte
	summaries map[string]*repository.OrderSummary
	auditLogs []*repository.AuditLog

	gatewayErr error
}

func newMemBackend() *memBackend {
	return &memBackend{
		orders:    make(map[string]*models.Order),
		customers: make(map[string]*models.Customer),
		addresses: make(map[string]*models.Address),
		quotes:    make(map[string]*models.QuoteRequest),
		blobs:     make(map[string][]byte),
		summaries: make(map[string]*repository.OrderSummary),
	}
}

func (b *memBackend) CreateOrder(_ context.Context, order *models.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := *order
	b.orders[order.ID] = &cp
	return nil
}

func (b *memBackend) GetOrder(_ context.Context, id string) (*models.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	order, ok := b.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (b *memBackend) ListOrders(_ context.Context, customerID string, page, pageSize int) ([]models.Order, int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Order{}
	for _, o := range b.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (b *memBackend) UpdateOrderStatus(_ context.Context, order *models.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	stored, ok := b.orders[order.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Status = order.Status
	return nil
}

func (b *memBackend) UpdateOrderCheckoutURL(_ context.Context, orderID, checkoutURL string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if stored, ok := b.orders[orderID]; ok {
		stored.CheckoutURL = checkoutURL
	}
	return nil
}

func (b *memBackend) CreateSession(_ context.Context, amount decimal.Decimal, description string) (*payment.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gatewayErr != nil {
		return nil, b.gatewayErr
	}
	return &payment.Session{ID: "sess_1", CheckoutURL: "https://pay.example.com/sess_1"}, nil
}

func (b *memBackend) CacheOrderSummary(_ context.Context, summary *repository.OrderSummary) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := *summary
	b.summaries[summary.ID] = &cp
	return nil
}

func (b *memBackend) GetOrderSummary(_ context.Context, orderID string) (*repository.OrderSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	summary, ok := b.summaries[orderID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *summary
	return &cp, nil
}

func (b *memBackend) InvalidateOrderSummary(_ context.Context, orderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.summaries, orderID)
	return nil
}

func (b *memBackend) CreateAuditLog(_ context.Context, log *repository.AuditLog) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := *log
	b.auditLogs = append(b.auditLogs, &cp)
	return nil
}

func (b *memBackend) GetAuditLogs(_ context.Context, orderID string, limit int64) ([]*repository.AuditLog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*repository.AuditLog
	for i := len(b.auditLogs) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if b.auditLogs[i].OrderID == orderID {
			out = append(out, b.auditLogs[i])
		}
	}
	return out, nil
}

func (b *memBackend) Send(_ interface{}) {}

func (b *memBackend) GetCustomer(_ context.Context, id string) (*models.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	customer, ok := b.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *customer
	return &cp, nil
}

func (b *memBackend) UpdateCustomer(_ context.Context, id, name, email, phone string) (*models.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	customer, ok := b.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if name != "" {
		customer.Name = name
	}
	if email != "" {
		customer.Email = email
	}
	if phone != "" {
		customer.Phone = phone
	}
	cp := *customer
	return &cp, nil
}

func (b *memBackend) CreateAddress(_ context.Context, address *models.Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := *address
	b.addresses[address.ID] = &cp
	return nil
}

func (b *memBackend) GetAddress(_ context.Context, id, customerID string) (*models.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	address, ok := b.addresses[id]
	if !ok || address.CustomerID != customerID {
		return nil, repository.ErrNotFound
	}
	cp := *address
	return &cp, nil
}

func (b *memBackend) ListAddresses(_ context.Context, customerID string) ([]models.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Address{}
	for _, a := range b.addresses {
		if a.CustomerID == customerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (b *memBackend) DeleteAddress(_ context.Context, id, customerID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	address, ok := b.addresses[id]
	if !ok || address.CustomerID != customerID {
		return repository.ErrNotFound
	}
	delete(b.addresses, id)
	return nil
}

func (b *memBackend) CreateQuoteRequest(_ context.Context, quote *models.QuoteRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := *quote
	b.quotes[quote.ID] = &cp
	return nil
}

func (b *memBackend) GetQuoteRequest(_ context.Context, id string) (*models.QuoteRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	quote, ok := b.quotes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *quote
	return &cp, nil
}

func (b *memBackend) ListQuoteRequests(_ context.Context, customerID string) ([]models.QuoteRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.QuoteRequest{}
	for _, q := range b.quotes {
		if q.CustomerID == customerID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (b *memBackend) UpdateQuoteRequest(_ context.Context, quote *models.QuoteRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.quotes[quote.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *quote
	b.quotes[quote.ID] = &cp
	return nil
}

func (b *memBackend) CreateBusinessInquiry(_ context.Context, inquiry *models.BusinessInquiry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inquiries = append(b.inquiries, inquiry)
	return nil
}

// draft cache half

func (b *memBackend) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[key] = data
	return nil
}

func (b *memBackend) GetJSON(_ context.Context, key string, dest interface{}) error {
	b.mu.Lock()
	data, ok := b.blobs[key]
	b.mu.Unlock()
	if !ok {
		return repository.ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func (b *memBackend) Del(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range keys {
		delete(b.blobs, k)
	}
	return nil
}

type fakePlaces struct {
	suggestions []places.Suggestion
	err         error
}

func (f *fakePlaces) Suggest(_ context.Context, query string) ([]places.Suggestion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestions, nil
}

func newTestServer(t *testing.T) (*Server, *memBackend) {
	t.Helper()
	backend := newMemBackend()
	logger := zap.NewNop()

	cfg := &config.Config{}
	drafts := wizard.NewStore(backend, time.Hour)
	orderSvc := orders.NewService(backend, backend, backend, backend, backend, "EUR", logger)
	accountSvc := account.NewService(backend)
	quoteSvc := quotes.NewService(backend, backend)
	businessSvc := business.NewService(backend)

	server := NewServer(cfg, logger, drafts, orderSvc, accountSvc, quoteSvc, businessSvc, &fakePlaces{})
	server.SetupRoutes()
	return server, backend
}

func doJSON(t *testing.T, server *Server, method, path, customer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if customer != "" {
		req.Header.Set("X-Customer-ID", customer)
	}
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)
	w := doJSON(t, server, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMissingCustomerHeader(t *testing.T) {
	server, _ := newTestServer(t)
	w := doJSON(t, server, http.MethodPost, "/api/v1/drafts", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/api/v1/catalog/services", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["services"])

	w = doJSON(t, server, http.MethodGet, "/api/v1/catalog/services/wash-iron/items", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodGet, "/api/v1/catalog/services/nope/items", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func createTestDraft(t *testing.T, server *Server, customer string) string {
	t.Helper()
	w := doJSON(t, server, http.MethodPost, "/api/v1/drafts", customer, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	draft := decode(t, w)["draft"].(map[string]interface{})
	return draft["id"].(string)
}

func TestWizardFlow(t *testing.T) {
	server, _ := newTestServer(t)
	id := createTestDraft(t, server, "cust-1")

	w := doJSON(t, server, http.MethodPut, "/api/v1/drafts/"+id+"/service", "cust-1",
		map[string]string{"service_id": "wash-iron"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/drafts/"+id+"/items", "cust-1",
		map[string]interface{}{"item_id": "shirt", "delta": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/drafts/"+id+"/items", "cust-1",
		map[string]interface{}{"item_id": "pants", "delta": 1})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(3), body["item_count"])

	w = doJSON(t, server, http.MethodPut, "/api/v1/drafts/"+id+"/address", "cust-1",
		map[string]string{"street": "Keizersgracht 1", "city": "Amsterdam", "postal_code": "1015 CN"})
	require.Equal(t, http.StatusOK, w.Code)

	pickup := time.Now().Add(24 * time.Hour).UTC()
	w = doJSON(t, server, http.MethodPut, "/api/v1/drafts/"+id+"/schedule", "cust-1",
		map[string]string{
			"pickup_at":   pickup.Format(time.RFC3339),
			"delivery_at": pickup.Add(48 * time.Hour).Format(time.RFC3339),
		})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["complete"])

	w = doJSON(t, server, http.MethodPost, "/api/v1/drafts/"+id+"/submit", "cust-1", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body = decode(t, w)
	assert.Equal(t, "https://pay.example.com/sess_1", body["checkout_url"])

	// draft is gone after submission
	w = doJSON(t, server, http.MethodGet, "/api/v1/drafts/"+id, "cust-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDraftOwnership(t *testing.T) {
	server, _ := newTestServer(t)
	id := createTestDraft(t, server, "cust-1")

	w := doJSON(t, server, http.MethodGet, "/api/v1/drafts/"+id, "cust-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteRequiredItemRejectedFromCart(t *testing.T) {
	server, _ := newTestServer(t)
	id := createTestDraft(t, server, "cust-1")

	w := doJSON(t, server, http.MethodPost, "/api/v1/drafts/"+id+"/items", "cust-1",
		map[string]interface{}{"item_id": "wedding-dress", "delta": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "/api/v1/quotes", decode(t, w)["quote_route"])
}

func TestUnknownServiceRejected(t *testing.T) {
	server, _ := newTestServer(t)
	id := createTestDraft(t, server, "cust-1")

	w := doJSON(t, server, http.MethodPut, "/api/v1/drafts/"+id+"/service", "cust-1",
		map[string]string{"service_id": "dog-grooming"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestScheduleDeliveryBeforePickupRejected(t *testing.T) {
	server, _ := newTestServer(t)
	id := createTestDraft(t, server, "cust-1")

	pickup := time.Now().Add(24 * time.Hour).UTC()
	w := doJSON(t, server, http.MethodPut, "/api/v1/drafts/"+id+"/schedule", "cust-1",
		map[string]string{
			"pickup_at":   pickup.Format(time.RFC3339),
			"delivery_at": pickup.Add(-time.Hour).Format(time.RFC3339),
		})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSubmitIncompleteDraft(t *testing.T) {
	server, _ := newTestServer(t)
	id := createTestDraft(t, server, "cust-1")

	w := doJSON(t, server, http.MethodPost, "/api/v1/drafts/"+id+"/submit", "cust-1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// the draft survives a refused submission
	w = doJSON(t, server, http.MethodGet, "/api/v1/drafts/"+id, "cust-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func submitTestOrder(t *testing.T, server *Server, customer string) string {
	t.Helper()
	id := createTestDraft(t, server, customer)
	steps := []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodPut, "/service", map[string]string{"service_id": "wash-iron"}},
		{http.MethodPost, "/items", map[string]interface{}{"item_id": "shirt", "delta": 1}},
		{http.MethodPut, "/address", map[string]string{"street": "Keizersgracht 1", "city": "Amsterdam", "postal_code": "1015 CN"}},
	}
	for _, step := range steps {
		w := doJSON(t, server, step.method, "/api/v1/drafts/"+id+step.path, customer, step.body)
		require.Equal(t, http.StatusOK, w.Code, "step %s", step.path)
	}
	pickup := time.Now().Add(24 * time.Hour).UTC()
	w := doJSON(t, server, http.MethodPut, "/api/v1/drafts/"+id+"/schedule", customer,
		map[string]string{
			"pickup_at":   pickup.Format(time.RFC3339),
			"delivery_at": pickup.Add(48 * time.Hour).Format(time.RFC3339),
		})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/drafts/"+id+"/submit", customer, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode(t, w)["order"].(map[string]interface{})
	return order["id"].(string)
}

func TestOrderEndpoints(t *testing.T) {
	server, _ := newTestServer(t)
	orderID := submitTestOrder(t, server, "cust-1")

	w := doJSON(t, server, http.MethodGet, "/api/v1/orders", "cust-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = doJSON(t, server, http.MethodGet, "/api/v1/orders/"+orderID, "cust-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// foreign customer cannot see it
	w = doJSON(t, server, http.MethodGet, "/api/v1/orders/"+orderID, "cust-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, server, http.MethodPut, "/api/v1/orders/"+orderID+"/status", "ops",
		map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)

	// skipping ahead conflicts
	w = doJSON(t, server, http.MethodPut, "/api/v1/orders/"+orderID+"/status", "ops",
		map[string]string{"status": "ready"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", "cust-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitWithFailingGateway(t *testing.T) {
	server, backend := newTestServer(t)
	backend.gatewayErr = errors.New("gateway down")

	id := createTestDraft(t, server, "cust-1")
	for _, step := range []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodPut, "/service", map[string]string{"service_id": "wash-iron"}},
		{http.MethodPost, "/items", map[string]interface{}{"item_id": "shirt", "delta": 1}},
		{http.MethodPut, "/address", map[string]string{"street": "Keizersgracht 1", "city": "Amsterdam", "postal_code": "1015 CN"}},
	} {
		w := doJSON(t, server, step.method, "/api/v1/drafts/"+id+step.path, "cust-1", step.body)
		require.Equal(t, http.StatusOK, w.Code)
	}
	pickup := time.Now().Add(24 * time.Hour).UTC()
	w := doJSON(t, server, http.MethodPut, "/api/v1/drafts/"+id+"/schedule", "cust-1",
		map[string]string{
			"pickup_at":   pickup.Format(time.RFC3339),
			"delivery_at": pickup.Add(48 * time.Hour).Format(time.RFC3339),
		})
	require.Equal(t, http.StatusOK, w.Code)

	// order is created even though the session failed
	w = doJSON(t, server, http.MethodPost, "/api/v1/drafts/"+id+"/submit", "cust-1", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["payment_error"])
	order := body["order"].(map[string]interface{})
	orderID := order["id"].(string)

	// retry fails again through the gateway
	w = doJSON(t, server, http.MethodPost, "/api/v1/orders/"+orderID+"/payment", "cust-1", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// then succeeds once the gateway is back
	backend.gatewayErr = nil
	w = doJSON(t, server, http.MethodPost, "/api/v1/orders/"+orderID+"/payment", "cust-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://pay.example.com/sess_1", decode(t, w)["checkout_url"])
}

func TestProfileAndAddresses(t *testing.T) {
	server, backend := newTestServer(t)
	backend.customers["cust-1"] = &models.Customer{ID: "cust-1", Name: "Ana", Email: "ana@example.com"}

	w := doJSON(t, server, http.MethodGet, "/api/v1/profile", "cust-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodPut, "/api/v1/profile", "cust-1",
		map[string]string{"phone": "+31600000000"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "+31600000000", decode(t, w)["phone"])
	assert.Equal(t, "Ana", backend.customers["cust-1"].Name)

	w = doJSON(t, server, http.MethodPost, "/api/v1/addresses", "cust-1",
		map[string]string{"label": "home", "street": "Keizersgracht 1", "city": "Amsterdam", "postal_code": "1015 CN"})
	require.Equal(t, http.StatusCreated, w.Code)
	addressID := decode(t, w)["id"].(string)

	w = doJSON(t, server, http.MethodGet, "/api/v1/addresses", "cust-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["addresses"], 1)

	// another customer cannot delete it
	w = doJSON(t, server, http.MethodDelete, "/api/v1/addresses/"+addressID, "cust-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, server, http.MethodDelete, "/api/v1/addresses/"+addressID, "cust-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuoteEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/quotes", "cust-1",
		map[string]string{"item_id": "shirt"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/quotes", "cust-1",
		map[string]string{"item_id": "wedding-dress", "description": "silk"})
	require.Equal(t, http.StatusCreated, w.Code)
	quoteID := decode(t, w)["id"].(string)

	// accept before staff responded
	w = doJSON(t, server, http.MethodPost, "/api/v1/quotes/"+quoteID+"/accept", "cust-1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/quotes/"+quoteID+"/respond", "ops",
		map[string]string{"amount": "89.50"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/quotes/"+quoteID+"/accept", "cust-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accepted", decode(t, w)["status"])
}

func TestBusinessInquiry(t *testing.T) {
	server, backend := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/business/inquiries", "",
		map[string]string{"company_name": "Hotel Krasnapolsky"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/business/inquiries", "",
		map[string]string{
			"company_name": "Hotel Krasnapolsky",
			"contact_name": "J. de Vries",
			"email":        "housekeeping@example.com",
			"service_type": "linen",
		})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, backend.inquiries, 1)
	assert.Equal(t, "Hotel Krasnapolsky", backend.inquiries[0].CompanyName)
}

func TestPlacesSuggest(t *testing.T) {
	server, _ := newTestServer(t)
	server.places = &fakePlaces{suggestions: []places.Suggestion{
		{Street: "Keizersgracht 1", City: "Amsterdam", PostalCode: "1015 CN"},
	}}

	w := doJSON(t, server, http.MethodGet, "/api/v1/places/suggest?q=keizers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["suggestions"], 1)
}

func TestPlacesSuggestDegradesOnError(t *testing.T) {
	server, _ := newTestServer(t)
	server.places = &fakePlaces{err: errors.New("quota exceeded")}

	w := doJSON(t, server, http.MethodGet, "/api/v1/places/suggest?q=keizers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["suggestions"])
}

func TestOrderSummaryEndpoint(t *testing.T) {
	server, backend := newTestServer(t)
	orderID := submitTestOrder(t, server, "cust-1")

	w := doJSON(t, server, http.MethodGet, "/api/v1/orders/"+orderID+"/summary", "cust-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, orderID, body["id"])
	assert.Equal(t, "pending", body["status"])

	// foreign customer cannot see it
	w = doJSON(t, server, http.MethodGet, "/api/v1/orders/"+orderID+"/summary", "cust-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// a cold cache falls back to the store and re-primes
	require.NoError(t, backend.InvalidateOrderSummary(context.Background(), orderID))
	w = doJSON(t, server, http.MethodGet, "/api/v1/orders/"+orderID+"/summary", "cust-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err := backend.GetOrderSummary(context.Background(), orderID)
	assert.NoError(t, err)
}

func TestOrderAuditEndpoint(t *testing.T) {
	server, backend := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, backend.CreateOrder(ctx, &models.Order{ID: "ord-1", CustomerID: "cust-1", Status: models.OrderStatusPending}))
	for _, action := range []string{"order_submitted", "status_changed"} {
		require.NoError(t, backend.CreateAuditLog(ctx, &repository.AuditLog{OrderID: "ord-1", Action: action}))
	}

	w := doJSON(t, server, http.MethodGet, "/api/v1/orders/ord-1/audit", "ops", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode(t, w)["entries"].([]interface{})
	require.Len(t, entries, 2)
	assert.Equal(t, "status_changed", entries[0].(map[string]interface{})["Action"])

	w = doJSON(t, server, http.MethodGet, "/api/v1/orders/nope/audit", "ops", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemFromAnotherServiceRejected(t *testing.T) {
	server, _ := newTestServer(t)
	id := createTestDraft(t, server, "cust-1")

	w := doJSON(t, server, http.MethodPut, "/api/v1/drafts/"+id+"/service", "cust-1",
		map[string]string{"service_id": "wash-iron"})
	require.Equal(t, http.StatusOK, w.Code)

	// coat is a dry-cleaning item
	w = doJSON(t, server, http.MethodPost, "/api/v1/drafts/"+id+"/items", "cust-1",
		map[string]interface{}{"item_id": "coat", "delta": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestServiceChoicePurgesForeignItems(t *testing.T) {
	server, _ := newTestServer(t)
	id := createTestDraft(t, server, "cust-1")

	// deep link straight into the items step
	w := doJSON(t, server, http.MethodPost, "/api/v1/drafts/"+id+"/items", "cust-1",
		map[string]interface{}{"item_id": "coat", "delta": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodPut, "/api/v1/drafts/"+id+"/service", "cust-1",
		map[string]string{"service_id": "wash-iron"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["item_count"])
}

func TestSwaggerMounted(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/swagger/index.html", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
