package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkanyika/shamba/internal/domain"
)

type SaleStore struct {
	db *sql.DB
}

func NewSaleStore(db *sql.DB) *SaleStore {
	return &SaleStore{db: db}
}

func (s *SaleStore) Create(ctx context.Context, userID string, sale domain.Sale) (*domain.Sale, error) {
	if err := requireFarm(ctx, s.db, userID, sale.FarmID); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	var buyer any
	if sale.Buyer != nil {
		buyer = sale.Buyer
	}
	buyerCol, err := marshalJSON(buyer)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sales (id, farm_id, crop_name, quantity, unit, price_per_unit,
			total_amount, buyer_info, sale_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, sale.FarmID, sale.CropName, sale.Quantity, sale.Unit,
		sale.PricePerUnit, sale.TotalAmount, buyerCol, sale.SaleDate)
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	return s.getByID(ctx, id)
}

// List returns the farm's sales most-recent-first, optionally bounded by rng
// applied to the sale date and truncated to limit when limit > 0.
func (s *SaleStore) List(ctx context.Context, userID, farmID string, rng *domain.DateRange, limit int) ([]domain.Sale, error) {
	if err := requireFarm(ctx, s.db, userID, farmID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, farm_id, crop_name, quantity, unit, price_per_unit,
			total_amount, buyer_info, sale_date, created_at
		FROM sales WHERE farm_id = ?`
	args := []any{farmID}
	cond, args := dateFilter("sale_date", rng, args)
	query += cond + ` ORDER BY sale_date DESC, created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer closeRows(rows, "sales")

	var sales []domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return sales, nil
}

func (s *SaleStore) getByID(ctx context.Context, id string) (*domain.Sale, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, farm_id, crop_name, quantity, unit, price_per_unit,
			total_amount, buyer_info, sale_date, created_at
		FROM sales WHERE id = ?
	`, id)
	sale, err := scanSale(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var buyer sql.NullString
	err := row.Scan(&sale.ID, &sale.FarmID, &sale.CropName, &sale.Quantity, &sale.Unit,
		&sale.PricePerUnit, &sale.TotalAmount, &buyer, &sale.SaleDate, &sale.CreatedAt)
	if err != nil {
		return nil, err
	}
	if buyer.Valid {
		sale.Buyer = &domain.BuyerInfo{}
		if err := unmarshalJSON(buyer, sale.Buyer); err != nil {
			return nil, err
		}
	}
	return sale, nil
}
