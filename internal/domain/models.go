package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated platform user.
type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         Role           `db:"role" json:"role"`
	Permissions  CapabilityList `db:"permissions" json:"permissions"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Batch represents a tracked lot of wool moving through intake, processing,
// inspection and sale.
type Batch struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	BatchCode       string         `db:"batch_code" json:"batch_code"`
	CreatorID       uuid.UUID      `db:"creator_id" json:"creator_id"`
	FarmerID        *uuid.UUID     `db:"farmer_id" json:"farmer_id"`
	WoolType        WoolType       `db:"wool_type" json:"wool_type"`
	Weight          float64        `db:"weight" json:"weight"`
	Moisture        *float64       `db:"moisture" json:"moisture"`
	Source          string         `db:"source" json:"source"`
	Images          StringList     `db:"images" json:"images"`
	ImageURLs       []string       `db:"-" json:"image_urls,omitempty"`
	CurrentStage    Stage          `db:"current_stage" json:"current_stage"`
	QualityStatus   QualityStatus  `db:"quality_status" json:"quality_status"`
	QualityReportID *uuid.UUID     `db:"quality_report_id" json:"quality_report_id"`
	Financials      *Financials    `db:"financials" json:"financials"`
	ProcessingLogs  ProcessingLogs `db:"processing_logs" json:"processing_logs"`
	IsSold          bool           `db:"is_sold" json:"is_sold"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// ProcessingLog is one append-only entry in a batch's processing history.
type ProcessingLog struct {
	Stage      Stage     `json:"stage"`
	Note       string    `json:"note"`
	OperatorID uuid.UUID `json:"operator_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// QualityReport holds lab-measured attributes of a batch plus the inspector's
// decision. Immutable once created; one report per batch.
type QualityReport struct {
	ID              uuid.UUID `db:"id" json:"id"`
	BatchID         uuid.UUID `db:"batch_id" json:"batch_id"`
	InspectorID     uuid.UUID `db:"inspector_id" json:"inspector_id"`
	FiberDiameter   *float64  `db:"fiber_diameter" json:"fiber_diameter"`
	TensileStrength *float64  `db:"tensile_strength" json:"tensile_strength"`
	ColorGrade      string    `db:"color_grade" json:"color_grade"`
	CleanWoolYield  *float64  `db:"clean_wool_yield" json:"clean_wool_yield"`
	Notes           string    `db:"notes" json:"notes"`
	Decision        Decision  `db:"decision" json:"decision"`
	InspectedAt     time.Time `db:"inspected_at" json:"inspected_at"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ServiceFees is the fee breakdown deducted from a batch's gross revenue.
type ServiceFees struct {
	Inspection float64 `json:"inspection"`
	Processing float64 `json:"processing"`
	Platform   float64 `json:"platform"`
}

// Financials is the derived pricing/fee/earnings projection attached to a
// batch. It is recomputed whole from its inputs and never hand-edited.
type Financials struct {
	BasePricePerKg    float64     `json:"base_price_per_kg"`
	QualityBonus      float64     `json:"quality_bonus"`
	GrossRevenue      float64     `json:"gross_revenue"`
	ServiceFees       ServiceFees `json:"service_fees"`
	NetFarmerEarnings float64     `json:"net_farmer_earnings"`
}

// Order represents a buyer's purchase of one or more batches.
type Order struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	BuyerID       uuid.UUID     `db:"buyer_id" json:"buyer_id"`
	TotalAmount   float64       `db:"total_amount" json:"total_amount"`
	Status        OrderStatus   `db:"status" json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	TransactionID string        `db:"transaction_id" json:"transaction_id"`
	PaymentMethod string        `db:"payment_method" json:"payment_method"`
	Items         []uuid.UUID   `db:"-" json:"items"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// QualityStats aggregates inspection outcomes for the analytics dashboard.
type QualityStats struct {
	TotalInspections int     `db:"total_inspections" json:"total_inspections"`
	ApprovedCount    int     `db:"approved_count" json:"approved_count"`
	RejectedCount    int     `db:"rejected_count" json:"rejected_count"`
	PassRate         float64 `json:"pass_rate"`
	AvgFiberDiameter float64 `db:"avg_fiber_diameter" json:"avg_fiber_diameter"`
}

// JSONB column adapters. sqlx scans jsonb into []byte; these types marshal
// through encoding/json so the domain structs stay typed.

// Value implements driver.Valuer for jsonb storage.
func (f Financials) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner for jsonb retrieval.
func (f *Financials) Scan(src interface{}) error {
	return scanJSONB(src, f)
}

// ProcessingLogs is the ordered processing history of a batch.
type ProcessingLogs []ProcessingLog

func (l ProcessingLogs) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(ProcessingLogs{})
	}
	return json.Marshal(l)
}

func (l *ProcessingLogs) Scan(src interface{}) error {
	return scanJSONB(src, l)
}

// StringList stores a list of strings as a jsonb array.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(StringList{})
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(src interface{}) error {
	return scanJSONB(src, s)
}

// CapabilityList stores a user's materialized permission snapshot.
type CapabilityList []Capability

func (c CapabilityList) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(CapabilityList{})
	}
	return json.Marshal(c)
}

func (c *CapabilityList) Scan(src interface{}) error {
	return scanJSONB(src, c)
}

func scanJSONB(src, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
