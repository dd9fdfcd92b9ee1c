package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"pharmanear/m/domain"
	"pharmanear/m/internal/locator"
	apperrors "pharmanear/m/pkg/errors"
)

// Locator is the behaviour the HTTP layer needs. *locator.Service
// satisfies it.
type Locator interface {
	Search(ctx context.Context, req locator.SearchRequest) (locator.SearchResponse, error)
	LookupMedicine(ctx context.Context, name string, emergencyOnly bool) (domain.Medicine, error)
	ListMedicines(ctx context.Context) ([]domain.Medicine, error)
	ListPharmacies(ctx context.Context) ([]domain.Pharmacy, error)
	PlaceOrder(ctx context.Context, req locator.OrderRequest) (domain.Order, error)
	Notify(ctx context.Context, in locator.NotifyInput) (domain.NotifyRequest, error)
	OpenDashboard(ctx context.Context, pharmacyName string) (domain.Pharmacy, error)
	UpdateStock(ctx context.Context, pharmacyName, medicine string, quantity int) (domain.StockEntry, error)
	Orders(ctx context.Context, pharmacyName string) ([]domain.Order, error)
}

// Options configure the router.
type Options struct {
	Secret         string
	AllowedOrigins []string
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	svc     Locator
	secret  string
	origins []string
	log     logrus.FieldLogger
	now     func() time.Time
}

// New constructs a Handler.
func New(svc Locator, opts Options, log logrus.FieldLogger) *Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Handler{svc: svc, secret: opts.Secret, origins: origins, log: log, now: time.Now}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Get("/health", h.health)

	r.Route("/medicines", func(r chi.Router) {
		r.Get("/", h.listMedicines)
		r.Get("/search", h.searchMedicine)
	})

	r.Route("/pharmacies", func(r chi.Router) {
		r.Get("/", h.listPharmacies)
		r.Get("/nearby", h.nearbyPharmacies)
	})

	r.Post("/orders", h.placeOrder)
	r.Post("/notifications", h.notify)

	r.Route("/dashboard", func(r chi.Router) {
		r.Post("/session", h.openSession)
		r.Group(func(protected chi.Router) {
			protected.Use(h.sessionMiddleware)
			protected.Get("/", h.dashboard)
			protected.Delete("/session", h.closeSession)
			protected.Put("/stock", h.updateStock)
			protected.Get("/orders", h.dashboardOrders)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Medicine handlers

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.svc.ListMedicines(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) searchMedicine(w http.ResponseWriter, r *http.Request) {
	emergency, err := parseBool(r.URL.Query().Get("emergency"))
	if err != nil {
		respondAppError(w, apperrors.Wrap(apperrors.CodeInvalidInput, "emergency must be a boolean", err))
		return
	}
	med, err := h.svc.LookupMedicine(r.Context(), r.URL.Query().Get("query"), emergency)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, med)
}

// Pharmacy handlers

func (h *Handler) listPharmacies(w http.ResponseWriter, r *http.Request) {
	pharmacies, err := h.svc.ListPharmacies(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pharmacies)
}

func (h *Handler) nearbyPharmacies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var req locator.SearchRequest

	latStr, lngStr := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lng"))
	if latStr != "" || lngStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			respondAppError(w, apperrors.Wrap(apperrors.CodeInvalidInput, "lat must be a number", err))
			return
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			respondAppError(w, apperrors.Wrap(apperrors.CodeInvalidInput, "lng must be a number", err))
			return
		}
		req.Location = &domain.Location{Lat: lat, Lng: lng}
	}

	if radiusStr := strings.TrimSpace(q.Get("radius")); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			respondAppError(w, apperrors.Wrap(apperrors.CodeInvalidInput, "radius must be a number", err))
			return
		}
		req.RadiusKm = &radius
	}

	emergency, err := parseBool(q.Get("emergency"))
	if err != nil {
		respondAppError(w, apperrors.Wrap(apperrors.CodeInvalidInput, "emergency must be a boolean", err))
		return
	}
	req.EmergencyOnly = emergency
	req.Medicine = q.Get("medicine")

	resp, err := h.svc.Search(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Order and notification handlers

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req locator.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid request body", err))
		return
	}
	order, err := h.svc.PlaceOrder(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *Handler) notify(w http.ResponseWriter, r *http.Request) {
	var in locator.NotifyInput
	if err := decodeJSON(r, &in); err != nil {
		respondAppError(w, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid request body", err))
		return
	}
	req, err := h.svc.Notify(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, req)
}

// Dashboard handlers

type sessionRequest struct {
	Pharmacy string `json:"pharmacy"`
	Email    string `json:"email,omitempty"`
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid request body", err))
		return
	}
	pharmacy, err := h.svc.OpenDashboard(r.Context(), req.Pharmacy)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	token, err := h.generateToken(pharmacy.Name)
	if err != nil {
		h.fail(w, r, apperrors.Wrap(apperrors.CodeInternal, "unable to open session", err))
		return
	}
	respondJSON(w, http.StatusCreated, domain.DashboardSession{
		Token:     token,
		Pharmacy:  pharmacy,
		ViewState: domain.ViewPharmacyDashboard,
	})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	pharmacy, err := h.svc.OpenDashboard(r.Context(), pharmacyFromContext(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.DashboardSession{Pharmacy: pharmacy, ViewState: domain.ViewPharmacyDashboard})
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]domain.ViewState{"view_state": domain.ViewSearch})
}

type stockRequest struct {
	Medicine string `json:"medicine"`
	Quantity *int   `json:"quantity"`
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid request body", err))
		return
	}
	if req.Quantity == nil {
		respondAppError(w, apperrors.Wrap(apperrors.CodeInvalidInput, "quantity is required", nil))
		return
	}
	entry, err := h.svc.UpdateStock(r.Context(), pharmacyFromContext(r), req.Medicine, *req.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (h *Handler) dashboardOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Orders(r.Context(), pharmacyFromContext(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// Helpers

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.CodeOf(err) == apperrors.CodeInternal {
		h.log.WithError(err).WithField("request_id", middleware.GetReqID(r.Context())).Error("request failed")
	}
	respondAppError(w, err)
}

func parseBool(raw string) (bool, error) {
	if strings.TrimSpace(raw) == "" {
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(raw))
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondAppError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	message := "internal error"
	var appErr *apperrors.AppError
	if code != apperrors.CodeInternal && errors.As(err, &appErr) {
		message = appErr.Message
	}
	respondJSON(w, statusFor(code), map[string]errorBody{"error": {Code: code, Message: message}})
}

func statusFor(code string) int {
	switch code {
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeUnavailable:
		return http.StatusConflict
	case apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
