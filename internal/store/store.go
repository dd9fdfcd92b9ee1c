package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pharmanear/m/domain"
	"pharmanear/m/internal/catalog"
)

// ErrNotFound is returned when a pharmacy or medicine row does not exist.
var ErrNotFound = errors.New("not found")

// Store reads and writes the catalog tables.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type pharmacyRow struct {
	domain.Pharmacy
	Lat float64 `db:"lat"`
	Lng float64 `db:"lng"`
}

// Snapshot loads every medicine and pharmacy, with stock, in catalog order.
func (s *Store) Snapshot(ctx context.Context) (*catalog.Catalog, error) {
	var medicines []domain.Medicine
	if err := s.db.SelectContext(ctx, &medicines, `SELECT name, uses, category, side_effects, emergency FROM medicines ORDER BY position, name`); err != nil {
		return nil, fmt.Errorf("select medicines: %w", err)
	}

	var rows []pharmacyRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, name, lat, lng, address, is_open, open_time, close_time, rating, phone FROM pharmacies ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select pharmacies: %w", err)
	}

	var stock []domain.StockEntry
	if err := s.db.SelectContext(ctx, &stock, `SELECT pharmacy_id, medicine_name, quantity, updated_at FROM stock`); err != nil {
		return nil, fmt.Errorf("select stock: %w", err)
	}
	byPharmacy := make(map[int64]map[string]int, len(rows))
	for _, entry := range stock {
		if byPharmacy[entry.PharmacyID] == nil {
			byPharmacy[entry.PharmacyID] = map[string]int{}
		}
		byPharmacy[entry.PharmacyID][entry.Medicine] = entry.Quantity
	}

	pharmacies := make([]domain.Pharmacy, len(rows))
	for i, row := range rows {
		p := row.Pharmacy
		p.Location = domain.Location{Lat: row.Lat, Lng: row.Lng}
		p.Stock = byPharmacy[p.ID]
		if p.Stock == nil {
			p.Stock = map[string]int{}
		}
		pharmacies[i] = p
	}
	return catalog.New(medicines, pharmacies), nil
}

// UpdateStock sets the units of medicine held by the named pharmacy.
func (s *Store) UpdateStock(ctx context.Context, pharmacyName, medicine string, quantity int) (domain.StockEntry, error) {
	var pharmacyID int64
	err := s.db.GetContext(ctx, &pharmacyID, `SELECT id FROM pharmacies WHERE name = ?`, pharmacyName)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StockEntry{}, fmt.Errorf("pharmacy %q: %w", pharmacyName, ErrNotFound)
	}
	if err != nil {
		return domain.StockEntry{}, fmt.Errorf("lookup pharmacy: %w", err)
	}

	var canonical string
	err = s.db.GetContext(ctx, &canonical, `SELECT name FROM medicines WHERE name = ?`, medicine)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StockEntry{}, fmt.Errorf("medicine %q: %w", medicine, ErrNotFound)
	}
	if err != nil {
		return domain.StockEntry{}, fmt.Errorf("lookup medicine: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO stock (pharmacy_id, medicine_name, quantity) VALUES (?, ?, ?)
                ON CONFLICT(pharmacy_id, medicine_name) DO UPDATE SET quantity = excluded.quantity, updated_at = CURRENT_TIMESTAMP`,
		pharmacyID, canonical, quantity)
	if err != nil {
		return domain.StockEntry{}, fmt.Errorf("update stock: %w", err)
	}

	var entry domain.StockEntry
	if err := s.db.GetContext(ctx, &entry, `SELECT pharmacy_id, medicine_name, quantity, updated_at FROM stock WHERE pharmacy_id = ? AND medicine_name = ?`, pharmacyID, canonical); err != nil {
		return domain.StockEntry{}, fmt.Errorf("reload stock: %w", err)
	}
	return entry, nil
}

// CreateOrder records a mock order and fills in its creation time.
func (s *Store) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO orders (id, pharmacy_name, pharmacy_phone, medicine_name, quantity, customer_name, customer_phone, customer_address)
                VALUES (:id, :pharmacy_name, :pharmacy_phone, :medicine_name, :quantity, :customer_name, :customer_phone, :customer_address)`, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	if err := s.db.GetContext(ctx, &order.CreatedAt, `SELECT created_at FROM orders WHERE id = ?`, order.ID); err != nil {
		return domain.Order{}, fmt.Errorf("reload order: %w", err)
	}
	return order, nil
}

// Orders lists recorded orders for a pharmacy, newest first.
func (s *Store) Orders(ctx context.Context, pharmacyName string) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := s.db.SelectContext(ctx, &orders, `SELECT id, pharmacy_name, pharmacy_phone, medicine_name, quantity, customer_name, customer_phone, customer_address, created_at
                FROM orders WHERE pharmacy_name = ? ORDER BY created_at DESC, rowid DESC`, pharmacyName)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	return orders, nil
}

// CreateNotifyRequest records a request to be told when a medicine is back.
func (s *Store) CreateNotifyRequest(ctx context.Context, req domain.NotifyRequest) (domain.NotifyRequest, error) {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO notify_requests (id, medicine_name, email, phone) VALUES (:id, :medicine_name, :email, :phone)`, req)
	if err != nil {
		return domain.NotifyRequest{}, fmt.Errorf("insert notify request: %w", err)
	}
	if err := s.db.GetContext(ctx, &req.CreatedAt, `SELECT created_at FROM notify_requests WHERE id = ?`, req.ID); err != nil {
		return domain.NotifyRequest{}, fmt.Errorf("reload notify request: %w", err)
	}
	return req, nil
}
