package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mkanyika/shamba/internal/advisor"
	"github.com/mkanyika/shamba/internal/domain"
	"github.com/mkanyika/shamba/internal/imagestore"
	"github.com/mkanyika/shamba/internal/stats"
)

// farmRepository is the subset of store.FarmStore that FarmService requires.
type farmRepository interface {
	Create(ctx context.Context, userID string, f domain.Farm) (*domain.Farm, error)
	GetByID(ctx context.Context, userID, farmID string) (*domain.Farm, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Farm, error)
	Update(ctx context.Context, userID string, f domain.Farm) (*domain.Farm, error)
}

// activityRepository is the subset of store.ActivityStore that FarmService requires.
type activityRepository interface {
	Create(ctx context.Context, userID string, a domain.Activity) (*domain.Activity, error)
	List(ctx context.Context, userID, farmID string, rng *domain.DateRange, limit int) ([]domain.Activity, error)
	Update(ctx context.Context, userID string, a domain.Activity) (*domain.Activity, error)
	Delete(ctx context.Context, userID, activityID string) error
}

// expenseRepository is the subset of store.ExpenseStore that FarmService requires.
type expenseRepository interface {
	Create(ctx context.Context, userID string, e domain.Expense) (*domain.Expense, error)
	List(ctx context.Context, userID, farmID string, rng *domain.DateRange, limit int) ([]domain.Expense, error)
}

// saleRepository is the subset of store.SaleStore that FarmService requires.
type saleRepository interface {
	Create(ctx context.Context, userID string, sale domain.Sale) (*domain.Sale, error)
	List(ctx context.Context, userID, farmID string, rng *domain.DateRange, limit int) ([]domain.Sale, error)
}

// healthRepository is the subset of store.HealthStore that FarmService requires.
type healthRepository interface {
	Create(ctx context.Context, userID string, h domain.HealthRecord) (*domain.HealthRecord, error)
	List(ctx context.Context, userID, farmID string, limit int) ([]domain.HealthRecord, error)
	ListByCrop(ctx context.Context, userID, farmID, cropName string) ([]domain.HealthRecord, error)
	UpdateStatus(ctx context.Context, userID, recordID string, status domain.HealthStatus, treatmentApplied string) (*domain.HealthRecord, error)
}

type FarmService struct {
	farms      farmRepository
	activities activityRepository
	expenses   expenseRepository
	sales      saleRepository
	health     healthRepository
	advisor    advisor.Advisor
	images     imagestore.ImageStore
	logger     *slog.Logger
}

func NewFarmService(
	farms farmRepository,
	activities activityRepository,
	expenses expenseRepository,
	sales saleRepository,
	health healthRepository,
	adv advisor.Advisor,
	images imagestore.ImageStore,
	logger *slog.Logger,
) *FarmService {
	return &FarmService{
		farms:      farms,
		activities: activities,
		expenses:   expenses,
		sales:      sales,
		health:     health,
		advisor:    adv,
		images:     images,
		logger:     logger,
	}
}

func (s *FarmService) CreateFarm(ctx context.Context, userID string, f domain.Farm) (*domain.Farm, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.farms.Create(ctx, userID, f)
}

func (s *FarmService) GetFarm(ctx context.Context, userID, farmID string) (*domain.Farm, error) {
	return s.farms.GetByID(ctx, userID, farmID)
}

func (s *FarmService) ListFarms(ctx context.Context, userID string) ([]domain.Farm, error) {
	return s.farms.ListByUser(ctx, userID)
}

func (s *FarmService) UpdateFarm(ctx context.Context, userID string, f domain.Farm) (*domain.Farm, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.farms.Update(ctx, userID, f)
}

func (s *FarmService) LogActivity(ctx context.Context, userID string, a domain.Activity) (*domain.Activity, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return s.activities.Create(ctx, userID, a)
}

func (s *FarmService) ListActivities(ctx context.Context, userID, farmID string, rng *domain.DateRange, limit int) ([]domain.Activity, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}
	return s.activities.List(ctx, userID, farmID, rng, limit)
}

func (s *FarmService) UpdateActivity(ctx context.Context, userID string, a domain.Activity) (*domain.Activity, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return s.activities.Update(ctx, userID, a)
}

func (s *FarmService) DeleteActivity(ctx context.Context, userID, activityID string) error {
	return s.activities.Delete(ctx, userID, activityID)
}

func (s *FarmService) RecordExpense(ctx context.Context, userID string, e domain.Expense) (*domain.Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return s.expenses.Create(ctx, userID, e)
}

func (s *FarmService) ListExpenses(ctx context.Context, userID, farmID string, rng *domain.DateRange, limit int) ([]domain.Expense, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}
	return s.expenses.List(ctx, userID, farmID, rng, limit)
}

func (s *FarmService) RecordSale(ctx context.Context, userID string, sale domain.Sale) (*domain.Sale, error) {
	if err := sale.Validate(); err != nil {
		return nil, err
	}
	return s.sales.Create(ctx, userID, sale)
}

func (s *FarmService) ListSales(ctx context.Context, userID, farmID string, rng *domain.DateRange, limit int) ([]domain.Sale, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}
	return s.sales.List(ctx, userID, farmID, rng, limit)
}

func (s *FarmService) AddHealthRecord(ctx context.Context, userID string, h domain.HealthRecord) (*domain.HealthRecord, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return s.health.Create(ctx, userID, h)
}

func (s *FarmService) ListHealthRecords(ctx context.Context, userID, farmID string, limit int) ([]domain.HealthRecord, error) {
	return s.health.List(ctx, userID, farmID, limit)
}

func (s *FarmService) ListHealthRecordsByCrop(ctx context.Context, userID, farmID, cropName string) ([]domain.HealthRecord, error) {
	return s.health.ListByCrop(ctx, userID, farmID, cropName)
}

func (s *FarmService) UpdateHealthStatus(ctx context.Context, userID, recordID string, status domain.HealthStatus, treatmentApplied string) (*domain.HealthRecord, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.health.UpdateStatus(ctx, userID, recordID, status, treatmentApplied)
}

// ActivityStats aggregates a farm's activity log, optionally windowed by rng.
// Returns (nil, nil) when the farm does not resolve for userID.
func (s *FarmService) ActivityStats(ctx context.Context, userID, farmID string, rng *domain.DateRange) (*stats.ActivityStats, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}
	activities, err := s.activities.List(ctx, userID, farmID, rng, 0)
	if err != nil {
		return nilOnMissingFarm[stats.ActivityStats](err)
	}
	agg := stats.AggregateActivities(activities)
	return &agg, nil
}

// FinancialSummary aggregates a farm's expenses and sales over the same
// optional window. Returns (nil, nil) when the farm does not resolve.
func (s *FarmService) FinancialSummary(ctx context.Context, userID, farmID string, rng *domain.DateRange) (*stats.FinancialSummary, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}
	expenses, err := s.expenses.List(ctx, userID, farmID, rng, 0)
	if err != nil {
		return nilOnMissingFarm[stats.FinancialSummary](err)
	}
	sales, err := s.sales.List(ctx, userID, farmID, rng, 0)
	if err != nil {
		return nilOnMissingFarm[stats.FinancialSummary](err)
	}
	agg := stats.AggregateFinancials(expenses, sales)
	return &agg, nil
}

// HealthStats aggregates a farm's full health history. Returns (nil, nil)
// when the farm does not resolve.
func (s *FarmService) HealthStats(ctx context.Context, userID, farmID string) (*stats.HealthStats, error) {
	records, err := s.health.List(ctx, userID, farmID, 0)
	if err != nil {
		return nilOnMissingFarm[stats.HealthStats](err)
	}
	agg := stats.AggregateHealth(records)
	return &agg, nil
}

// FarmStats composes the dashboard snapshot for one farm.
func (s *FarmService) FarmStats(ctx context.Context, userID, farmID string) (*stats.FarmSnapshot, error) {
	return stats.ComposeFarmStats(ctx, farmID, &scopedRecords{svc: s, userID: userID})
}

// DiagnoseCrop runs the advisor over the reported symptoms (storing any
// uploaded image first) and persists the result as a diseased health record.
func (s *FarmService) DiagnoseCrop(ctx context.Context, userID, farmID, cropName, symptoms, recordedDate string, imageData []byte, imageMIME string) (*domain.HealthRecord, error) {
	farm, err := s.farms.GetByID(ctx, userID, farmID)
	if err != nil {
		return nil, err
	}
	if farm == nil {
		return nil, domain.ErrFarmNotFound
	}
	if recordedDate == "" {
		recordedDate = time.Now().UTC().Format("2006-01-02")
	}

	var imageURLs []string
	if len(imageData) > 0 {
		key, err := s.images.Save(ctx, "crop_"+sanitizeKeyPart(cropName), imageMIME, bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("save crop image: %w", err)
		}
		imageURLs = append(imageURLs, "/api/images/"+key)
		s.logger.Debug("crop image saved", "farm_id", farmID, "key", key)
	}

	diag, err := s.advisor.Diagnose(ctx, cropName, symptoms, farmContext(farm))
	if err != nil {
		return nil, fmt.Errorf("diagnose crop: %w", err)
	}
	s.logger.Info("crop diagnosed", "farm_id", farmID, "crop", cropName,
		"disease", diag.Disease, "severity", diag.Severity)

	record := domain.HealthRecord{
		FarmID:       farmID,
		CropName:     cropName,
		ImageURLs:    imageURLs,
		Diagnosis:    diag,
		Symptoms:     symptoms,
		Status:       domain.StatusDiseased,
		RecordedDate: recordedDate,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return s.health.Create(ctx, userID, record)
}

// Chat answers a farming question, grounding the assistant in the user's
// farm when farmID is set.
func (s *FarmService) Chat(ctx context.Context, userID, farmID string, messages []advisor.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("chat requires at least one message")
	}

	var fctx string
	if farmID != "" {
		farm, err := s.farms.GetByID(ctx, userID, farmID)
		if err != nil {
			return "", err
		}
		if farm == nil {
			return "", domain.ErrFarmNotFound
		}
		fctx = farmContext(farm)
	}
	return s.advisor.Chat(ctx, messages, fctx)
}

// GetImage streams a stored crop image back to the caller.
func (s *FarmService) GetImage(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return s.images.Get(ctx, key)
}

// scopedRecords adapts FarmService's per-user stores to stats.RecordAccess.
type scopedRecords struct {
	svc    *FarmService
	userID string
}

func (r *scopedRecords) ListActivities(ctx context.Context, farmID string, rng *domain.DateRange) ([]domain.Activity, error) {
	return r.svc.activities.List(ctx, r.userID, farmID, rng, 0)
}

func (r *scopedRecords) ListExpenses(ctx context.Context, farmID string, rng *domain.DateRange) ([]domain.Expense, error) {
	return r.svc.expenses.List(ctx, r.userID, farmID, rng, 0)
}

func (r *scopedRecords) ListSales(ctx context.Context, farmID string, rng *domain.DateRange) ([]domain.Sale, error) {
	return r.svc.sales.List(ctx, r.userID, farmID, rng, 0)
}

func (r *scopedRecords) ListHealthRecords(ctx context.Context, farmID string) ([]domain.HealthRecord, error) {
	return r.svc.health.List(ctx, r.userID, farmID, 0)
}

// farmContext renders the farm as a short context string for the advisor.
func farmContext(f *domain.Farm) string {
	parts := []string{fmt.Sprintf("%s, %.1f acres", f.Name, f.LandSizeAcres)}
	if loc := locationString(f.Location); loc != "" {
		parts = append(parts, "located in "+loc)
	}
	if len(f.PrimaryCrops) > 0 {
		parts = append(parts, "growing "+strings.Join(f.PrimaryCrops, ", "))
	}
	if f.SoilType != "" {
		parts = append(parts, f.SoilType+" soil")
	}
	if f.IrrigationType != "" {
		parts = append(parts, f.IrrigationType+" irrigation")
	}
	return strings.Join(parts, "; ")
}

func locationString(l domain.Location) string {
	switch {
	case l.Village != "" && l.District != "":
		return l.Village + ", " + l.District
	case l.Village != "":
		return l.Village
	default:
		return l.District
	}
}

func validateRange(rng *domain.DateRange) error {
	if rng == nil {
		return nil
	}
	return rng.Validate()
}

// nilOnMissingFarm collapses ErrFarmNotFound into an empty (nil, nil) result
// for the stats methods; every other error passes through.
func nilOnMissingFarm[T any](err error) (*T, error) {
	if errors.Is(err, domain.ErrFarmNotFound) {
		return nil, nil
	}
	return nil, err
}

func sanitizeKeyPart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, strings.ToLower(s))
}
