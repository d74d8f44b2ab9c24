package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkanyika/shamba/internal/domain"
)

type ActivityStore struct {
	db *sql.DB
}

func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) Create(ctx context.Context, userID string, a domain.Activity) (*domain.Activity, error) {
	if err := requireFarm(ctx, s.db, userID, a.FarmID); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	var meta any
	if a.Metadata != nil {
		meta = a.Metadata
	}
	metaCol, err := marshalJSON(meta)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO activities (id, farm_id, activity_type, description, crop_name, date, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, a.FarmID, a.Type, a.Description, a.CropName, a.Date, metaCol)
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}

	return s.getByID(ctx, id)
}

// List returns the farm's activities most-recent-first (date descending,
// newest insertion first within a date), optionally bounded by rng and
// truncated to limit when limit > 0.
func (s *ActivityStore) List(ctx context.Context, userID, farmID string, rng *domain.DateRange, limit int) ([]domain.Activity, error) {
	if err := requireFarm(ctx, s.db, userID, farmID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, farm_id, activity_type, description, crop_name, date, metadata, created_at
		FROM activities WHERE farm_id = ?`
	args := []any{farmID}
	cond, args := dateFilter("date", rng, args)
	query += cond + ` ORDER BY date DESC, created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer closeRows(rows, "activities")

	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, nil
}

// Update rewrites an activity's editable fields the user owns through its
// farm. Returns domain.ErrNotFound when the activity does not resolve.
func (s *ActivityStore) Update(ctx context.Context, userID string, a domain.Activity) (*domain.Activity, error) {
	var meta any
	if a.Metadata != nil {
		meta = a.Metadata
	}
	metaCol, err := marshalJSON(meta)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE activities
		SET description = ?, crop_name = ?, date = ?, metadata = ?
		WHERE id = ? AND farm_id IN (SELECT id FROM farms WHERE user_id = ?)
	`, a.Description, a.CropName, a.Date, metaCol, a.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("update activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update activity rows affected: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}

	return s.getByID(ctx, a.ID)
}

func (s *ActivityStore) Delete(ctx context.Context, userID, activityID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM activities
		WHERE id = ? AND farm_id IN (SELECT id FROM farms WHERE user_id = ?)
	`, activityID, userID)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete activity rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ActivityStore) getByID(ctx context.Context, id string) (*domain.Activity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, farm_id, activity_type, description, crop_name, date, metadata, created_at
		FROM activities WHERE id = ?
	`, id)
	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	a := &domain.Activity{}
	var meta sql.NullString
	err := row.Scan(&a.ID, &a.FarmID, &a.Type, &a.Description, &a.CropName, &a.Date, &meta, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if meta.Valid {
		a.Metadata = &domain.ActivityMetadata{}
		if err := unmarshalJSON(meta, a.Metadata); err != nil {
			return nil, err
		}
	}
	return a, nil
}
