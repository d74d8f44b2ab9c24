package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkanyika/shamba/internal/domain"
)

type HealthStore struct {
	db *sql.DB
}

func NewHealthStore(db *sql.DB) *HealthStore {
	return &HealthStore{db: db}
}

const healthColumns = `id, farm_id, crop_name, image_urls, ai_diagnosis,
	symptoms, treatment_applied, status, recorded_date, created_at`

func (s *HealthStore) Create(ctx context.Context, userID string, h domain.HealthRecord) (*domain.HealthRecord, error) {
	if err := requireFarm(ctx, s.db, userID, h.FarmID); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	images, err := marshalJSON(nonNilStrings(h.ImageURLs))
	if err != nil {
		return nil, err
	}
	var diag any
	if h.Diagnosis != nil {
		diag = h.Diagnosis
	}
	diagCol, err := marshalJSON(diag)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO crop_health_records (id, farm_id, crop_name, image_urls, ai_diagnosis,
			symptoms, treatment_applied, status, recorded_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, h.FarmID, h.CropName, images, diagCol, h.Symptoms,
		h.TreatmentApplied, h.Status, h.RecordedDate)
	if err != nil {
		return nil, fmt.Errorf("create health record: %w", err)
	}

	return s.getByID(ctx, id)
}

// List returns the farm's health records most-recent-first, truncated to
// limit when limit > 0.
func (s *HealthStore) List(ctx context.Context, userID, farmID string, limit int) ([]domain.HealthRecord, error) {
	return s.list(ctx, userID, farmID, "", limit)
}

// ListByCrop returns the farm's health records for one crop,
// most-recent-first.
func (s *HealthStore) ListByCrop(ctx context.Context, userID, farmID, cropName string) ([]domain.HealthRecord, error) {
	return s.list(ctx, userID, farmID, cropName, 0)
}

func (s *HealthStore) list(ctx context.Context, userID, farmID, cropName string, limit int) ([]domain.HealthRecord, error) {
	if err := requireFarm(ctx, s.db, userID, farmID); err != nil {
		return nil, err
	}

	query := `SELECT ` + healthColumns + ` FROM crop_health_records WHERE farm_id = ?`
	args := []any{farmID}
	if cropName != "" {
		query += ` AND crop_name = ?`
		args = append(args, cropName)
	}
	query += ` ORDER BY recorded_date DESC, created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	defer closeRows(rows, "crop_health_records")

	var records []domain.HealthRecord
	for rows.Next() {
		h, err := scanHealthRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan health record: %w", err)
		}
		records = append(records, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate health records: %w", err)
	}
	return records, nil
}

// UpdateStatus moves a record through the healthy/diseased/treated/recovered
// lifecycle, optionally noting the treatment applied. Returns
// domain.ErrNotFound when the record does not resolve for userID.
func (s *HealthStore) UpdateStatus(ctx context.Context, userID, recordID string, status domain.HealthStatus, treatmentApplied string) (*domain.HealthRecord, error) {
	query := `
		UPDATE crop_health_records SET status = ?`
	args := []any{status}
	if treatmentApplied != "" {
		query += `, treatment_applied = ?`
		args = append(args, treatmentApplied)
	}
	query += ` WHERE id = ? AND farm_id IN (SELECT id FROM farms WHERE user_id = ?)`
	args = append(args, recordID, userID)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update health record status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update health record rows affected: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}

	return s.getByID(ctx, recordID)
}

func (s *HealthStore) getByID(ctx context.Context, id string) (*domain.HealthRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+healthColumns+` FROM crop_health_records WHERE id = ?
	`, id)
	h, err := scanHealthRecord(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get health record: %w", err)
	}
	return h, nil
}

func scanHealthRecord(row rowScanner) (*domain.HealthRecord, error) {
	h := &domain.HealthRecord{}
	var images, diag sql.NullString
	err := row.Scan(&h.ID, &h.FarmID, &h.CropName, &images, &diag,
		&h.Symptoms, &h.TreatmentApplied, &h.Status, &h.RecordedDate, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	h.ImageURLs = []string{}
	if err := unmarshalJSON(images, &h.ImageURLs); err != nil {
		return nil, err
	}
	if diag.Valid {
		h.Diagnosis = &domain.Diagnosis{}
		if err := unmarshalJSON(diag, h.Diagnosis); err != nil {
			return nil, err
		}
	}
	return h, nil
}
