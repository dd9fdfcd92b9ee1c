package locator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"pharmanear/m/domain"
	"pharmanear/m/internal/catalog"
	"pharmanear/m/internal/database"
	"pharmanear/m/internal/migrations"
	"pharmanear/m/internal/seed"
	"pharmanear/m/internal/store"
	apperrors "pharmanear/m/pkg/errors"
)

type stubRepo struct {
	snap       *catalog.Catalog
	snapErr    error
	orders     []domain.Order
	notify     []domain.NotifyRequest
	stockErr   error
	stockCalls int
}

func (r *stubRepo) Snapshot(ctx context.Context) (*catalog.Catalog, error) {
	if r.snapErr != nil {
		return nil, r.snapErr
	}
	return r.snap, nil
}

func (r *stubRepo) UpdateStock(ctx context.Context, pharmacyName, medicine string, quantity int) (domain.StockEntry, error) {
	r.stockCalls++
	if r.stockErr != nil {
		return domain.StockEntry{}, r.stockErr
	}
	return domain.StockEntry{Medicine: medicine, Quantity: quantity}, nil
}

func (r *stubRepo) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	order.CreatedAt = "now"
	r.orders = append(r.orders, order)
	return order, nil
}

func (r *stubRepo) Orders(ctx context.Context, pharmacyName string) ([]domain.Order, error) {
	return r.orders, nil
}

func (r *stubRepo) CreateNotifyRequest(ctx context.Context, req domain.NotifyRequest) (domain.NotifyRequest, error) {
	r.notify = append(r.notify, req)
	return req, nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, Config{DefaultLocation: domain.Location{Lat: 12.9716, Lng: 77.5946}, DefaultRadiusKm: 5}, quietLogger())
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc
}

func float(v float64) *float64 { return &v }

func TestSearchDefaultsAndSummary(t *testing.T) {
	svc := newTestService(&stubRepo{snap: catalog.Default()})

	resp, err := svc.Search(context.Background(), SearchRequest{Medicine: "amoxicillin"})
	require.NoError(t, err)
	require.Equal(t, 12.9716, resp.Reference.Lat)
	require.Equal(t, 5.0, resp.RadiusKm)
	require.NotNil(t, resp.Medicine)
	require.Equal(t, "Amoxicillin", resp.Medicine.Name)
	require.False(t, resp.Empty)
	require.Len(t, resp.Results, 5)

	require.Equal(t, domain.ClassificationAvailable, resp.Summary.Classification)
	require.Equal(t, 3, resp.Summary.OpenAvailable)
	require.Equal(t, 4, resp.Summary.AnyAvailable)
	require.Equal(t, 33, resp.Summary.TotalStock)

	byName := map[string]Card{}
	for _, c := range resp.Results {
		byName[c.Pharmacy.Name] = c
	}
	require.True(t, byName["Green Pharmacy"].CanOrder)
	require.False(t, byName["HealthPlus"].CanOrder)
	require.False(t, byName["MediCare"].CanOrder)
	require.Equal(t, 5, *byName["MediCare"].StockUnits)
}

func TestSearchWithoutMedicine(t *testing.T) {
	svc := newTestService(&stubRepo{snap: catalog.Default()})

	resp, err := svc.Search(context.Background(), SearchRequest{
		Location: &domain.Location{Lat: 12.9716, Lng: 77.5946},
		RadiusKm: float(0.01),
	})
	require.NoError(t, err)
	require.Nil(t, resp.Medicine)
	require.Len(t, resp.Results, 1)
	require.Nil(t, resp.Results[0].StockUnits)
	require.False(t, resp.Results[0].CanOrder)
	require.Equal(t, domain.ClassificationNone, resp.Summary.Classification)
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	svc := newTestService(&stubRepo{snap: catalog.Default()})

	resp, err := svc.Search(context.Background(), SearchRequest{
		Location: &domain.Location{Lat: 28.6139, Lng: 77.2090},
		Medicine: "Paracetamol",
	})
	require.NoError(t, err)
	require.True(t, resp.Empty)
	require.NotNil(t, resp.Results)
	require.Empty(t, resp.Results)
	require.Equal(t, domain.ClassificationNotAvailable, resp.Summary.Classification)
}

func TestSearchErrors(t *testing.T) {
	svc := newTestService(&stubRepo{snap: catalog.Default()})
	ctx := context.Background()

	_, err := svc.Search(ctx, SearchRequest{Medicine: "Amoxicillin", EmergencyOnly: true})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = svc.Search(ctx, SearchRequest{RadiusKm: float(-1)})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Search(ctx, SearchRequest{Location: &domain.Location{Lat: 100, Lng: 0}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	failing := newTestService(&stubRepo{snapErr: errors.New("db down")})
	_, err = failing.Search(ctx, SearchRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInternal))
}

func TestLookupMedicine(t *testing.T) {
	svc := newTestService(&stubRepo{snap: catalog.Default()})
	ctx := context.Background()

	med, err := svc.LookupMedicine(ctx, "ADRENALINE", true)
	require.NoError(t, err)
	require.Equal(t, "Life-saving", med.Category)

	_, err = svc.LookupMedicine(ctx, "  ", false)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.LookupMedicine(ctx, "amoxicillin", true)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestPlaceOrder(t *testing.T) {
	repo := &stubRepo{snap: catalog.Default()}
	svc := newTestService(repo)
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, OrderRequest{
		Pharmacy:      "green pharmacy",
		Medicine:      "amoxicillin",
		CustomerName:  " Ravi ",
		CustomerPhone: "9000000001",
	})
	require.NoError(t, err)
	require.Equal(t, "id-1", order.ID)
	require.Equal(t, "Green Pharmacy", order.Pharmacy)
	require.Equal(t, "9876543210", order.PharmacyPhone)
	require.Equal(t, "Amoxicillin", order.Medicine)
	require.Equal(t, 1, order.Quantity)
	require.Equal(t, "Ravi", order.CustomerName)
	require.Len(t, repo.orders, 1)
}

func TestPlaceOrderRejections(t *testing.T) {
	svc := newTestService(&stubRepo{snap: catalog.Default()})
	ctx := context.Background()
	base := OrderRequest{Pharmacy: "Green Pharmacy", Medicine: "Amoxicillin", CustomerName: "Ravi", CustomerPhone: "9000000001"}

	cases := []struct {
		name   string
		mutate func(*OrderRequest)
		code   string
	}{
		{"missing customer", func(r *OrderRequest) { r.CustomerPhone = "" }, apperrors.CodeInvalidInput},
		{"negative quantity", func(r *OrderRequest) { r.Quantity = -2 }, apperrors.CodeInvalidInput},
		{"unknown medicine", func(r *OrderRequest) { r.Medicine = "Ibuprofen" }, apperrors.CodeNotFound},
		{"unknown pharmacy", func(r *OrderRequest) { r.Pharmacy = "Nowhere" }, apperrors.CodeNotFound},
		{"closed pharmacy", func(r *OrderRequest) { r.Pharmacy = "MediCare" }, apperrors.CodeUnavailable},
		{"out of stock", func(r *OrderRequest) { r.Pharmacy = "HealthPlus" }, apperrors.CodeUnavailable},
		{"more than stock", func(r *OrderRequest) { r.Quantity = 11 }, apperrors.CodeUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := svc.PlaceOrder(ctx, req)
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, tc.code), err.Error())
		})
	}
}

func TestNotify(t *testing.T) {
	repo := &stubRepo{snap: catalog.Default()}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Notify(ctx, NotifyInput{Medicine: "Adrenaline"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Notify(ctx, NotifyInput{Email: "not an email"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	req, err := svc.Notify(ctx, NotifyInput{Medicine: "Adrenaline", Email: "user@example.com"})
	require.NoError(t, err)
	require.Equal(t, "id-1", req.ID)
	require.Len(t, repo.notify, 1)
}

func TestDashboardOperations(t *testing.T) {
	repo := &stubRepo{snap: catalog.Default()}
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.OpenDashboard(ctx, "apollo pharmacy")
	require.NoError(t, err)
	require.Equal(t, "Apollo Pharmacy", p.Name)

	_, err = svc.OpenDashboard(ctx, "Nowhere")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = svc.UpdateStock(ctx, "Apollo Pharmacy", "Paracetamol", -1)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Equal(t, 0, repo.stockCalls)

	entry, err := svc.UpdateStock(ctx, "Apollo Pharmacy", "Paracetamol", 3)
	require.NoError(t, err)
	require.Equal(t, 3, entry.Quantity)

	repo.stockErr = fmt.Errorf("wrapped: %w", store.ErrNotFound)
	_, err = svc.UpdateStock(ctx, "Apollo Pharmacy", "Unobtainium", 3)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestStockUpdateIsVisibleToNextSearch(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migrations.Run(db))
	require.NoError(t, seed.Catalog(db, catalog.Default()))

	svc := newTestService(store.New(db))
	ctx := context.Background()

	before, err := svc.Search(ctx, SearchRequest{Medicine: "Amoxicillin", RadiusKm: float(0.6)})
	require.NoError(t, err)
	require.Equal(t, domain.ClassificationAvailable, before.Summary.Classification)

	_, err = svc.UpdateStock(ctx, "Green Pharmacy", "Amoxicillin", 0)
	require.NoError(t, err)

	after, err := svc.Search(ctx, SearchRequest{Medicine: "Amoxicillin", RadiusKm: float(0.6)})
	require.NoError(t, err)
	require.Equal(t, domain.ClassificationAvailableButClosed, after.Summary.Classification)
	require.Equal(t, 5, after.Summary.TotalStock)

	_, err = svc.PlaceOrder(ctx, OrderRequest{Pharmacy: "Green Pharmacy", Medicine: "Amoxicillin", CustomerName: "Ravi", CustomerPhone: "1"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnavailable))
}
