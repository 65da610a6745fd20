package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-crm/backend/internal/domain"
	"github.com/pkordes/travel-crm/backend/internal/handler"
	"github.com/pkordes/travel-crm/backend/internal/report"
	"github.com/pkordes/travel-crm/backend/internal/service"
)

// ---- service doubles -------------------------------------------------------

// mockCustomerServicer is a test double for handler.CustomerServicer.
// Set only the method fields your test needs.
type mockCustomerServicer struct {
	create  func(ctx context.Context, c domain.Customer) (domain.Customer, error)
	getByID func(ctx context.Context, id int64) (domain.Customer, error)
	list    func(ctx context.Context, q domain.CustomerQuery) (domain.Page[domain.Customer], error)
	update  func(ctx context.Context, id int64, p domain.CustomerPatch) (domain.Customer, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockCustomerServicer) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	return m.create(ctx, c)
}
func (m *mockCustomerServicer) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	return m.getByID(ctx, id)
}
func (m *mockCustomerServicer) List(ctx context.Context, q domain.CustomerQuery) (domain.Page[domain.Customer], error) {
	return m.list(ctx, q)
}
func (m *mockCustomerServicer) Update(ctx context.Context, id int64, p domain.CustomerPatch) (domain.Customer, error) {
	return m.update(ctx, id, p)
}
func (m *mockCustomerServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

// compile-time check: mockCustomerServicer must satisfy handler.CustomerServicer.
var _ handler.CustomerServicer = (*mockCustomerServicer)(nil)

// mockDestinationServicer is a test double for handler.DestinationServicer.
type mockDestinationServicer struct {
	create         func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getByID        func(ctx context.Context, id int64) (domain.Destination, error)
	list           func(ctx context.Context, q domain.DestinationQuery) (domain.Page[domain.Destination], error)
	listByCustomer func(ctx context.Context, customerID int64, q domain.DestinationQuery) (domain.Page[domain.Destination], error)
	update         func(ctx context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error)
	delete         func(ctx context.Context, id int64) error
}

func (m *mockDestinationServicer) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationServicer) GetByID(ctx context.Context, id int64) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationServicer) List(ctx context.Context, q domain.DestinationQuery) (domain.Page[domain.Destination], error) {
	return m.list(ctx, q)
}
func (m *mockDestinationServicer) ListByCustomer(ctx context.Context, customerID int64, q domain.DestinationQuery) (domain.Page[domain.Destination], error) {
	return m.listByCustomer(ctx, customerID, q)
}
func (m *mockDestinationServicer) Update(ctx context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error) {
	return m.update(ctx, id, p)
}
func (m *mockDestinationServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ handler.DestinationServicer = (*mockDestinationServicer)(nil)

// mockAuthServicer is a test double for handler.AuthServicer.
type mockAuthServicer struct {
	login    func(ctx context.Context, username, password string) (domain.Session, error)
	register func(ctx context.Context, r service.Registration) (domain.Staff, error)
}

func (m *mockAuthServicer) Login(ctx context.Context, username, password string) (domain.Session, error) {
	return m.login(ctx, username, password)
}
func (m *mockAuthServicer) Register(ctx context.Context, r service.Registration) (domain.Staff, error) {
	return m.register(ctx, r)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

// mockHistoryServicer is a test double for handler.HistoryServicer.
type mockHistoryServicer struct {
	history func(ctx context.Context, customerID int64) (domain.History, error)
}

func (m *mockHistoryServicer) History(ctx context.Context, customerID int64) (domain.History, error) {
	return m.history(ctx, customerID)
}

var _ handler.HistoryServicer = (*mockHistoryServicer)(nil)

// countingRecorder is a handler.Recorder that remembers what it was told.
type countingRecorder struct {
	customers    int
	destinations int
	logins       map[string]int
}

func (c *countingRecorder) IncrementCustomersCreated(destinations int) {
	c.customers++
	c.destinations += destinations
}
func (c *countingRecorder) IncrementDestinationsCreated() { c.destinations++ }
func (c *countingRecorder) IncrementLogins(outcome string) {
	if c.logins == nil {
		c.logins = map[string]int{}
	}
	c.logins[outcome]++
}

// staticVerifier accepts exactly one token.
type staticVerifier struct{}

func (staticVerifier) Verify(token string) (domain.Principal, error) {
	if token != testToken {
		return domain.Principal{}, errors.New("invalid token")
	}
	return domain.Principal{ID: 1, Username: "rina", Email: "rina@crm.io", Role: domain.RoleStaff}, nil
}

// ---- helpers ---------------------------------------------------------------

const testToken = "test-token"

// newHTTPHandler wires a Server with the given deps into its chi router.
// This mirrors exactly how main.go wires it in production. Unset services
// are replaced with empty mocks so a test only names what it exercises.
func newHTTPHandler(d handler.Deps) http.Handler {
	if d.Customers == nil {
		d.Customers = &mockCustomerServicer{}
	}
	if d.Destinations == nil {
		d.Destinations = &mockDestinationServicer{}
	}
	if d.Auth == nil {
		d.Auth = &mockAuthServicer{}
	}
	if d.History == nil {
		d.History = &mockHistoryServicer{}
	}
	d.Verifier = staticVerifier{}
	d.Renderers = report.Renderers(time.UTC)
	d.Logger = slog.New(slog.DiscardHandler)
	return handler.NewServer(d).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends an authenticated request and returns the recorder.
func do(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// envelopeOf decodes a JSON envelope, keeping data raw for the caller.
type envelopeOf struct {
	Code       int             `json:"code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Page       *int            `json:"page"`
	Limit      *int            `json:"limit"`
	TotalPages *int            `json:"totalPages"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelopeOf {
	t.Helper()
	var env envelopeOf
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func destinationFixture(id, customerID int64, label string) domain.Destination {
	return domain.Destination{
		ID:          id,
		CustomerID:  customerID,
		Destination: label,
		StartDate:   day(2025, 1, 1),
		EndDate:     day(2025, 1, 5),
		Status:      domain.StatusPlanned,
		CreatedAt:   day(2024, 12, 1),
	}
}

func customerFixture(id int64) domain.Customer {
	return domain.Customer{
		ID:           id,
		Name:         "Ana",
		Email:        "ana@x.io",
		Destinations: []domain.Destination{destinationFixture(10, id, "Bali")},
		CreatedAt:    day(2024, 12, 1),
	}
}

func bytesBuffer(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}
