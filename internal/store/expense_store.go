package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkanyika/shamba/internal/domain"
)

type ExpenseStore struct {
	db *sql.DB
}

func NewExpenseStore(db *sql.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

func (s *ExpenseStore) Create(ctx context.Context, userID string, e domain.Expense) (*domain.Expense, error) {
	if err := requireFarm(ctx, s.db, userID, e.FarmID); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, farm_id, category, item_name, quantity, unit, cost, date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, e.FarmID, e.Category, e.ItemName, e.Quantity, e.Unit, e.Cost, e.Date, e.Notes)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	return s.getByID(ctx, id)
}

// List returns the farm's expenses most-recent-first, optionally bounded by
// rng (inclusive on both ends) and truncated to limit when limit > 0.
func (s *ExpenseStore) List(ctx context.Context, userID, farmID string, rng *domain.DateRange, limit int) ([]domain.Expense, error) {
	if err := requireFarm(ctx, s.db, userID, farmID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, farm_id, category, item_name, quantity, unit, cost, date, notes, created_at
		FROM expenses WHERE farm_id = ?`
	args := []any{farmID}
	cond, args := dateFilter("date", rng, args)
	query += cond + ` ORDER BY date DESC, created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer closeRows(rows, "expenses")

	var expenses []domain.Expense
	for rows.Next() {
		e := domain.Expense{}
		if err := rows.Scan(&e.ID, &e.FarmID, &e.Category, &e.ItemName, &e.Quantity,
			&e.Unit, &e.Cost, &e.Date, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func (s *ExpenseStore) getByID(ctx context.Context, id string) (*domain.Expense, error) {
	e := &domain.Expense{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, farm_id, category, item_name, quantity, unit, cost, date, notes, created_at
		FROM expenses WHERE id = ?
	`, id).Scan(&e.ID, &e.FarmID, &e.Category, &e.ItemName, &e.Quantity,
		&e.Unit, &e.Cost, &e.Date, &e.Notes, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}
