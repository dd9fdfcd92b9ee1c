package locator

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pharmanear/m/domain"
	"pharmanear/m/internal/availability"
	"pharmanear/m/internal/catalog"
	"pharmanear/m/internal/proximity"
	"pharmanear/m/internal/store"
	apperrors "pharmanear/m/pkg/errors"
)

// Repository is the persistence the service needs. *store.Store satisfies it.
type Repository interface {
	Snapshot(ctx context.Context) (*catalog.Catalog, error)
	UpdateStock(ctx context.Context, pharmacyName, medicine string, quantity int) (domain.StockEntry, error)
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	Orders(ctx context.Context, pharmacyName string) ([]domain.Order, error)
	CreateNotifyRequest(ctx context.Context, req domain.NotifyRequest) (domain.NotifyRequest, error)
}

// Config carries the fallback search parameters.
type Config struct {
	DefaultLocation domain.Location
	DefaultRadiusKm float64
}

type Service struct {
	repo  Repository
	cfg   Config
	log   logrus.FieldLogger
	newID func() string
}

func NewService(repo Repository, cfg Config, log logrus.FieldLogger) *Service {
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = proximity.DefaultRadiusKm
	}
	return &Service{repo: repo, cfg: cfg, log: log, newID: uuid.NewString}
}

// SearchRequest describes a nearby search. A nil Location or RadiusKm falls
// back to the configured defaults.
type SearchRequest struct {
	Location      *domain.Location
	RadiusKm      *float64
	Medicine      string
	EmergencyOnly bool
}

// Card is one pharmacy in the result list, with the order rule applied for
// the selected medicine.
type Card struct {
	domain.ProximityResult
	StockUnits *int `json:"stock_units,omitempty"`
	CanOrder   bool `json:"can_order"`
}

type SearchResponse struct {
	Reference domain.Location            `json:"reference"`
	RadiusKm  float64                    `json:"radius_km"`
	Medicine  *domain.Medicine           `json:"medicine,omitempty"`
	Results   []Card                     `json:"results"`
	Summary   domain.AvailabilitySummary `json:"summary"`
	Empty     bool                       `json:"empty"`
}

// Search finds pharmacies around the reference point and summarises stock
// of the requested medicine among them.
func (s *Service) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	ref := s.cfg.DefaultLocation
	if req.Location != nil {
		ref = *req.Location
	}
	radius := s.cfg.DefaultRadiusKm
	if req.RadiusKm != nil {
		radius = *req.RadiusKm
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return SearchResponse{}, err
	}

	var medicine *domain.Medicine
	if strings.TrimSpace(req.Medicine) != "" {
		med, ok := snap.FindMedicine(req.Medicine, req.EmergencyOnly)
		if !ok {
			return SearchResponse{}, medicineNotFound(req.Medicine)
		}
		medicine = &med
	}

	results, err := proximity.FindNearby(ref.Lat, ref.Lng, radius, snap.Pharmacies())
	if err != nil {
		return SearchResponse{}, err
	}

	selected := ""
	if medicine != nil {
		selected = medicine.Name
	}
	cards := make([]Card, len(results))
	for i, r := range results {
		cards[i] = Card{ProximityResult: r, CanOrder: availability.CanOrder(r.Pharmacy, selected)}
		if medicine != nil {
			units := availability.StockFor(r.Pharmacy, selected)
			cards[i].StockUnits = &units
		}
	}

	resp := SearchResponse{
		Reference: ref,
		RadiusKm:  radius,
		Medicine:  medicine,
		Results:   cards,
		Summary:   availability.Summarize(results, selected),
		Empty:     len(results) == 0,
	}
	s.log.WithFields(logrus.Fields{
		"lat":            ref.Lat,
		"lng":            ref.Lng,
		"radius_km":      radius,
		"medicine":       selected,
		"results":        len(results),
		"classification": resp.Summary.Classification,
	}).Debug("nearby search")
	return resp, nil
}

// LookupMedicine resolves a medicine by name. An empty name is invalid input;
// a miss is not_found.
func (s *Service) LookupMedicine(ctx context.Context, name string, emergencyOnly bool) (domain.Medicine, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Medicine{}, apperrors.Wrap(apperrors.CodeInvalidInput, "please enter a medicine name", nil)
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.Medicine{}, err
	}
	med, ok := snap.FindMedicine(name, emergencyOnly)
	if !ok {
		return domain.Medicine{}, medicineNotFound(name)
	}
	return med, nil
}

func (s *Service) ListMedicines(ctx context.Context) ([]domain.Medicine, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Medicines(), nil
}

func (s *Service) ListPharmacies(ctx context.Context) ([]domain.Pharmacy, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Pharmacies(), nil
}

type OrderRequest struct {
	Pharmacy        string `json:"pharmacy"`
	Medicine        string `json:"medicine"`
	Quantity        int    `json:"quantity"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
}

// PlaceOrder records an order at an open pharmacy that holds the medicine.
// Stock is not reserved.
func (s *Service) PlaceOrder(ctx context.Context, req OrderRequest) (domain.Order, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	if req.CustomerName == "" || req.CustomerPhone == "" {
		return domain.Order{}, apperrors.Wrap(apperrors.CodeInvalidInput, "please fill in all customer details", nil)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return domain.Order{}, apperrors.Wrap(apperrors.CodeInvalidInput, "quantity must be greater than zero", nil)
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	med, ok := snap.FindMedicine(req.Medicine, false)
	if !ok {
		return domain.Order{}, medicineNotFound(req.Medicine)
	}
	pharmacy, ok := snap.Pharmacy(req.Pharmacy)
	if !ok {
		return domain.Order{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("pharmacy %q not found", req.Pharmacy), nil)
	}
	if !availability.CanOrder(pharmacy, med.Name) {
		return domain.Order{}, apperrors.Wrap(apperrors.CodeUnavailable, fmt.Sprintf("%s is not available at %s right now", med.Name, pharmacy.Name), nil)
	}
	if units := availability.StockFor(pharmacy, med.Name); req.Quantity > units {
		return domain.Order{}, apperrors.Wrap(apperrors.CodeUnavailable, fmt.Sprintf("only %d units of %s in stock", units, med.Name), nil)
	}

	order, err := s.repo.CreateOrder(ctx, domain.Order{
		ID:              s.newID(),
		Pharmacy:        pharmacy.Name,
		PharmacyPhone:   pharmacy.Phone,
		Medicine:        med.Name,
		Quantity:        req.Quantity,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
	})
	if err != nil {
		return domain.Order{}, apperrors.Wrap(apperrors.CodeInternal, "unable to place order", err)
	}
	s.log.WithFields(logrus.Fields{"order_id": order.ID, "pharmacy": order.Pharmacy, "medicine": order.Medicine}).Info("order placed")
	return order, nil
}

type NotifyInput struct {
	Medicine string `json:"medicine"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Notify records a request to be contacted once a medicine is in range.
func (s *Service) Notify(ctx context.Context, in NotifyInput) (domain.NotifyRequest, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return domain.NotifyRequest{}, apperrors.Wrap(apperrors.CodeInvalidInput, "email required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.NotifyRequest{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}
	req, err := s.repo.CreateNotifyRequest(ctx, domain.NotifyRequest{
		ID:       s.newID(),
		Medicine: strings.TrimSpace(in.Medicine),
		Email:    email,
		Phone:    strings.TrimSpace(in.Phone),
	})
	if err != nil {
		return domain.NotifyRequest{}, apperrors.Wrap(apperrors.CodeInternal, "unable to save notification request", err)
	}
	return req, nil
}

// OpenDashboard resolves the pharmacy a dashboard session acts for.
func (s *Service) OpenDashboard(ctx context.Context, pharmacyName string) (domain.Pharmacy, error) {
	if strings.TrimSpace(pharmacyName) == "" {
		return domain.Pharmacy{}, apperrors.Wrap(apperrors.CodeInvalidInput, "pharmacy is required", nil)
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.Pharmacy{}, err
	}
	p, ok := snap.Pharmacy(pharmacyName)
	if !ok {
		return domain.Pharmacy{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("pharmacy %q not found", pharmacyName), nil)
	}
	return p, nil
}

// UpdateStock sets a pharmacy's stock of a catalog medicine.
func (s *Service) UpdateStock(ctx context.Context, pharmacyName, medicine string, quantity int) (domain.StockEntry, error) {
	if strings.TrimSpace(medicine) == "" {
		return domain.StockEntry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "medicine is required", nil)
	}
	if quantity < 0 {
		return domain.StockEntry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "quantity must not be negative", nil)
	}
	entry, err := s.repo.UpdateStock(ctx, strings.TrimSpace(pharmacyName), strings.TrimSpace(medicine), quantity)
	if errors.Is(err, store.ErrNotFound) {
		return domain.StockEntry{}, apperrors.Wrap(apperrors.CodeNotFound, "unknown pharmacy or medicine", err)
	}
	if err != nil {
		return domain.StockEntry{}, apperrors.Wrap(apperrors.CodeInternal, "unable to update stock", err)
	}
	s.log.WithFields(logrus.Fields{"pharmacy": pharmacyName, "medicine": entry.Medicine, "quantity": quantity}).Info("stock updated")
	return entry, nil
}

// Orders lists the orders placed with a pharmacy.
func (s *Service) Orders(ctx context.Context, pharmacyName string) ([]domain.Order, error) {
	orders, err := s.repo.Orders(ctx, pharmacyName)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "unable to list orders", err)
	}
	return orders, nil
}

func (s *Service) snapshot(ctx context.Context) (*catalog.Catalog, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.log.WithError(err).Error("load catalog snapshot")
		return nil, apperrors.Wrap(apperrors.CodeInternal, "unable to load catalog", err)
	}
	return snap, nil
}

func medicineNotFound(name string) error {
	return apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("medicine %q not found or not prioritized in emergency mode", strings.TrimSpace(name)), nil)
}
