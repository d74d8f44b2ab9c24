package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkanyika/shamba/internal/domain"
)

type FarmStore struct {
	db *sql.DB
}

func NewFarmStore(db *sql.DB) *FarmStore {
	return &FarmStore{db: db}
}

const farmColumns = `id, user_id, farm_name, district, village, land_size_acres,
	soil_type, irrigation_type, primary_crops, created_at, updated_at`

func (s *FarmStore) Create(ctx context.Context, userID string, f domain.Farm) (*domain.Farm, error) {
	id := uuid.NewString()
	crops, err := marshalJSON(nonNilStrings(f.PrimaryCrops))
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO farms (id, user_id, farm_name, district, village, land_size_acres,
			soil_type, irrigation_type, primary_crops)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, userID, f.Name, f.Location.District, f.Location.Village,
		f.LandSizeAcres, f.SoilType, f.IrrigationType, crops)
	if err != nil {
		return nil, fmt.Errorf("create farm: %w", err)
	}

	return s.GetByID(ctx, userID, id)
}

// GetByID returns the farm only when it belongs to userID; nil, nil
// otherwise.
func (s *FarmStore) GetByID(ctx context.Context, userID, farmID string) (*domain.Farm, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+farmColumns+` FROM farms WHERE id = ? AND user_id = ?
	`, farmID, userID)

	f, err := scanFarm(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get farm: %w", err)
	}
	return f, nil
}

func (s *FarmStore) ListByUser(ctx context.Context, userID string) ([]domain.Farm, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+farmColumns+` FROM farms WHERE user_id = ? ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	defer closeRows(rows, "farms")

	var farms []domain.Farm
	for rows.Next() {
		f, err := scanFarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan farm: %w", err)
		}
		farms = append(farms, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate farms: %w", err)
	}
	return farms, nil
}

// Update rewrites the farm's mutable fields. Returns domain.ErrFarmNotFound
// when the farm does not resolve for userID.
func (s *FarmStore) Update(ctx context.Context, userID string, f domain.Farm) (*domain.Farm, error) {
	crops, err := marshalJSON(nonNilStrings(f.PrimaryCrops))
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE farms
		SET farm_name = ?, district = ?, village = ?, land_size_acres = ?,
			soil_type = ?, irrigation_type = ?, primary_crops = ?,
			updated_at = datetime('now')
		WHERE id = ? AND user_id = ?
	`, f.Name, f.Location.District, f.Location.Village, f.LandSizeAcres,
		f.SoilType, f.IrrigationType, crops, f.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("update farm: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update farm rows affected: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrFarmNotFound
	}

	return s.GetByID(ctx, userID, f.ID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFarm(row rowScanner) (*domain.Farm, error) {
	f := &domain.Farm{}
	var crops sql.NullString
	err := row.Scan(&f.ID, &f.UserID, &f.Name, &f.Location.District, &f.Location.Village,
		&f.LandSizeAcres, &f.SoilType, &f.IrrigationType, &crops, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.PrimaryCrops = []string{}
	if err := unmarshalJSON(crops, &f.PrimaryCrops); err != nil {
		return nil, err
	}
	return f, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func closeRows(rows *sql.Rows, what string) {
	if err := rows.Close(); err != nil {
		slog.Error("failed to close rows", "table", what, "error", err)
	}
}
