package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ActivityType string

const (
	ActivitySowing      ActivityType = "sowing"
	ActivityIrrigation  ActivityType = "irrigation"
	ActivitySpraying    ActivityType = "spraying"
	ActivityHarvesting  ActivityType = "harvesting"
	ActivityWeeding     ActivityType = "weeding"
	ActivityFertilizing ActivityType = "fertilizing"
)

type ExpenseCategory string

const (
	ExpenseSeeds       ExpenseCategory = "seeds"
	ExpenseFertilizers ExpenseCategory = "fertilizers"
	ExpensePesticides  ExpenseCategory = "pesticides"
	ExpenseLabor       ExpenseCategory = "labor"
	ExpenseEquipment   ExpenseCategory = "equipment"
	ExpenseOther       ExpenseCategory = "other"
)

type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDiseased  HealthStatus = "diseased"
	StatusTreated   HealthStatus = "treated"
	StatusRecovered HealthStatus = "recovered"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrFarmNotFound = errors.New("farm not found")

	ErrValidation      = errors.New("validation failed")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidType     = errors.New("invalid activity type")
	ErrInvalidCategory = errors.New("invalid expense category")
	ErrInvalidStatus   = errors.New("invalid health status")
)

// invalid wraps a field-level validation message in ErrValidation so callers
// can classify it with errors.Is.
func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	APIKey    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Location struct {
	District string `json:"district,omitempty"`
	Village  string `json:"village,omitempty"`
}

type Farm struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"farm_name"`
	Location       Location  `json:"location"`
	LandSizeAcres  float64   `json:"land_size_acres"`
	SoilType       string    `json:"soil_type,omitempty"`
	IrrigationType string    `json:"irrigation_type,omitempty"`
	PrimaryCrops   []string  `json:"primary_crops"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ActivityMetadata is optional extra detail attached to an activity.
type ActivityMetadata struct {
	DurationHours float64  `json:"duration,omitempty"`
	AreaAcres     float64  `json:"area,omitempty"`
	Materials     []string `json:"materials,omitempty"`
}

// Activity is a logged farming operation. Date is a naive calendar date in
// YYYY-MM-DD form; there is no time or timezone component.
type Activity struct {
	ID          string            `json:"id"`
	FarmID      string            `json:"farm_id"`
	Type        ActivityType      `json:"activity_type"`
	Description string            `json:"description"`
	CropName    string            `json:"crop_name"`
	Date        string            `json:"date"`
	Metadata    *ActivityMetadata `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type Expense struct {
	ID        string          `json:"id"`
	FarmID    string          `json:"farm_id"`
	Category  ExpenseCategory `json:"category"`
	ItemName  string          `json:"item_name"`
	Quantity  float64         `json:"quantity,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	Cost      float64         `json:"cost"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type BuyerInfo struct {
	Name    string `json:"name,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// Sale records produce sold off a farm. TotalAmount is fixed at creation
// time (quantity times price per unit) and is authoritative for revenue
// sums; nothing downstream recomputes it.
type Sale struct {
	ID           string     `json:"id"`
	FarmID       string     `json:"farm_id"`
	CropName     string     `json:"crop_name"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	PricePerUnit float64    `json:"price_per_unit"`
	TotalAmount  float64    `json:"total_amount"`
	Buyer        *BuyerInfo `json:"buyer_info,omitempty"`
	SaleDate     string     `json:"sale_date"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Treatments struct {
	Organic    []string `json:"organic"`
	Chemical   []string `json:"chemical"`
	Preventive []string `json:"preventive"`
}

// Diagnosis is AI-produced and stored as-is; nothing here validates or
// recomputes its content beyond the confidence range check.
type Diagnosis struct {
	Disease     string     `json:"disease"`
	Confidence  float64    `json:"confidence"`
	Description string     `json:"description"`
	Treatments  Treatments `json:"treatments"`
	Severity    Severity   `json:"severity"`
}

type HealthRecord struct {
	ID               string       `json:"id"`
	FarmID           string       `json:"farm_id"`
	CropName         string       `json:"crop_name"`
	ImageURLs        []string     `json:"image_urls,omitempty"`
	Diagnosis        *Diagnosis   `json:"ai_diagnosis,omitempty"`
	Symptoms         string       `json:"symptoms,omitempty"`
	TreatmentApplied string       `json:"treatment_applied,omitempty"`
	Status           HealthStatus `json:"status"`
	RecordedDate     string       `json:"recorded_date"`
	CreatedAt        time.Time    `json:"created_at"`
}

func (t ActivityType) Valid() bool {
	switch t {
	case ActivitySowing, ActivityIrrigation, ActivitySpraying,
		ActivityHarvesting, ActivityWeeding, ActivityFertilizing:
		return true
	}
	return false
}

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseSeeds, ExpenseFertilizers, ExpensePesticides,
		ExpenseLabor, ExpenseEquipment, ExpenseOther:
		return true
	}
	return false
}

func (s HealthStatus) Valid() bool {
	switch s {
	case StatusHealthy, StatusDiseased, StatusTreated, StatusRecovered:
		return true
	}
	return false
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (f Farm) Validate() error {
	if len(strings.TrimSpace(f.Name)) < 3 {
		return invalid("farm name must be at least 3 characters")
	}
	if f.LandSizeAcres < 0.1 {
		return invalid("land size must be at least 0.1 acres")
	}
	return nil
}

func (a Activity) Validate() error {
	if !a.Type.Valid() {
		return ErrInvalidType
	}
	if !ValidDate(a.Date) {
		return ErrInvalidDate
	}
	if a.Metadata != nil {
		if a.Metadata.DurationHours < 0 {
			return invalid("duration must not be negative")
		}
		if a.Metadata.AreaAcres < 0 {
			return invalid("area must not be negative")
		}
	}
	return nil
}

func (e Expense) Validate() error {
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if strings.TrimSpace(e.ItemName) == "" {
		return invalid("item name required")
	}
	if e.Quantity < 0 {
		return invalid("quantity must not be negative")
	}
	if e.Cost < 0 {
		return invalid("cost must not be negative")
	}
	if !ValidDate(e.Date) {
		return ErrInvalidDate
	}
	return nil
}

// NewSale builds a Sale with TotalAmount set from quantity and price.
func NewSale(farmID, cropName string, quantity float64, unit string, pricePerUnit float64, saleDate string, buyer *BuyerInfo) Sale {
	return Sale{
		FarmID:       farmID,
		CropName:     cropName,
		Quantity:     quantity,
		Unit:         unit,
		PricePerUnit: pricePerUnit,
		TotalAmount:  quantity * pricePerUnit,
		Buyer:        buyer,
		SaleDate:     saleDate,
	}
}

func (s Sale) Validate() error {
	if strings.TrimSpace(s.CropName) == "" {
		return invalid("crop name required")
	}
	if s.Quantity <= 0 {
		return invalid("quantity must be positive")
	}
	if s.PricePerUnit < 0 {
		return invalid("price per unit must not be negative")
	}
	if !ValidDate(s.SaleDate) {
		return ErrInvalidDate
	}
	return nil
}

func (h HealthRecord) Validate() error {
	if strings.TrimSpace(h.CropName) == "" {
		return invalid("crop name required")
	}
	if !h.Status.Valid() {
		return ErrInvalidStatus
	}
	if !ValidDate(h.RecordedDate) {
		return ErrInvalidDate
	}
	if d := h.Diagnosis; d != nil {
		if d.Confidence < 0 || d.Confidence > 1 {
			return invalid(fmt.Sprintf("diagnosis confidence %v outside [0,1]", d.Confidence))
		}
	}
	return nil
}
