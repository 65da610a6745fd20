// Package handler implements the HTTP handlers for the travel CRM API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, customer.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-crm/backend/internal/domain"
	"github.com/pkordes/travel-crm/backend/internal/middleware"
	"github.com/pkordes/travel-crm/backend/internal/report"
	"github.com/pkordes/travel-crm/backend/internal/service"
)

// CustomerServicer defines the business operations the customer handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type CustomerServicer interface {
	Create(ctx context.Context, c domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id int64) (domain.Customer, error)
	List(ctx context.Context, q domain.CustomerQuery) (domain.Page[domain.Customer], error)
	Update(ctx context.Context, id int64, patch domain.CustomerPatch) (domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// DestinationServicer defines the business operations the destination handlers depend on.
type DestinationServicer interface {
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)
	GetByID(ctx context.Context, id int64) (domain.Destination, error)
	List(ctx context.Context, q domain.DestinationQuery) (domain.Page[domain.Destination], error)
	ListByCustomer(ctx context.Context, customerID int64, q domain.DestinationQuery) (domain.Page[domain.Destination], error)
	Update(ctx context.Context, id int64, patch domain.DestinationPatch) (domain.Destination, error)
	Delete(ctx context.Context, id int64) error
}

// AuthServicer defines the login and registration operations.
type AuthServicer interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Register(ctx context.Context, r service.Registration) (domain.Staff, error)
}

// HistoryServicer loads the data behind the history download.
type HistoryServicer interface {
	History(ctx context.Context, customerID int64) (domain.History, error)
}

// Recorder receives business events for metrics. Implemented by *metrics.Metrics.
type Recorder interface {
	IncrementCustomersCreated(destinations int)
	IncrementDestinationsCreated()
	IncrementLogins(outcome string)
}

// Deps lists everything a Server needs. Metrics and Logger are optional.
type Deps struct {
	Customers    CustomerServicer
	Destinations DestinationServicer
	Auth         AuthServicer
	History      HistoryServicer
	Verifier     middleware.TokenVerifier
	Renderers    map[report.Format]report.Renderer
	Metrics      Recorder
	Logger       *slog.Logger
}

// Server holds the dependencies shared by every handler.
type Server struct {
	customers    CustomerServicer
	destinations DestinationServicer
	auth         AuthServicer
	history      HistoryServicer
	verifier     middleware.TokenVerifier
	renderers    map[report.Format]report.Renderer
	metrics      Recorder
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	s := &Server{
		customers:    d.Customers,
		destinations: d.Destinations,
		auth:         d.Auth,
		history:      d.History,
		verifier:     d.Verifier,
		renderers:    d.Renderers,
		metrics:      d.Metrics,
		log:          d.Logger,
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Deps{})
}

// Routes registers every endpoint on a new chi router. Login, register,
// health and the OpenAPI document are public; everything else passes
// through the bearer-token guard.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Post("/auth/login", s.Login)
	r.Post("/auth/register", s.Register)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.verifier, s.log))

		r.Get("/destinations", s.ListDestinations)
		r.Get("/destination/{id}", s.GetDestination)
		r.Post("/destination/create", s.CreateDestination)
		r.Patch("/destination/update/{id}", s.UpdateDestination)
		r.Delete("/destination/delete/{id}", s.DeleteDestination)

		r.Get("/customers", s.ListCustomers)
		r.Get("/customer/{id}", s.GetCustomer)
		r.Get("/customer/{id}/destinations", s.ListCustomerDestinations)
		r.Get("/customer/{id}/download-destinations-history", s.DownloadHistory)
		r.Post("/customer/create", s.CreateCustomer)
		r.Patch("/customer/update/{id}", s.UpdateCustomer)
		r.Delete("/customer/delete/{id}", s.DeleteCustomer)
	})
	return r
}

type nopRecorder struct{}

func (nopRecorder) IncrementCustomersCreated(int) {}
func (nopRecorder) IncrementDestinationsCreated() {}
func (nopRecorder) IncrementLogins(string)        {}
