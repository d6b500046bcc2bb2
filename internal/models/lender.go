// internal/models/lender.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Lender is one entry in the lender directory. Submissions reference lenders
// by slug id but carry their own denormalized name, so lenders can be removed
// without cascading into application history.
type Lender struct {
	ID           string         `json:"id" gorm:"primaryKey;size:64"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	Logo         string         `json:"logo" gorm:"size:8"`
	Description  string         `json:"description" gorm:"type:text"`
	Email        string         `json:"email" gorm:"size:255"`
	MinAmount    int64          `json:"min_amount" gorm:"not null"`
	MaxAmount    int64          `json:"max_amount" gorm:"not null"`
	TimeFrame    string         `json:"time_frame" gorm:"size:100"`
	Requirements pq.StringArray `json:"requirements" gorm:"type:text[]"`
	IsDefault    bool           `json:"is_default" gorm:"default:false"`
	CreatedBy    *uuid.UUID     `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// DefaultLenders is the built-in directory. It doubles as the database seed
// and as the degraded-mode fallback when the directory table is unreachable,
// so the submission flow stays usable.
func DefaultLenders() []Lender {
	return []Lender{
		{
			ID:           "rapid-capital",
			Name:         "Rapid Capital Solutions",
			Logo:         "RC",
			Description:  "Fast approval process with competitive rates for established businesses",
			MinAmount:    10000,
			MaxAmount:    500000,
			TimeFrame:    "24-48 hours",
			Requirements: pq.StringArray{"6+ months in business", "Min $10K monthly revenue", "Credit score 550+"},
			IsDefault:    true,
		},
		{
			ID:           "business-funding",
			Name:         "Business Funding Network",
			Logo:         "BF",
			Description:  "Flexible terms and high approval rates for various industries",
			MinAmount:    5000,
			MaxAmount:    750000,
			TimeFrame:    "1-3 business days",
			Requirements: pq.StringArray{"3+ months in business", "Min $8K monthly revenue", "No bankruptcies"},
			IsDefault:    true,
		},
		{
			ID:           "merchant-advance",
			Name:         "Merchant Advance Pro",
			Logo:         "MA",
			Description:  "Specialized in retail and restaurant funding with same-day decisions",
			MinAmount:    15000,
			MaxAmount:    300000,
			TimeFrame:    "Same day",
			Requirements: pq.StringArray{"12+ months in business", "Min $15K monthly revenue", "Credit score 600+"},
			IsDefault:    true,
		},
		{
			ID:           "capital-bridge",
			Name:         "Capital Bridge Financial",
			Logo:         "CB",
			Description:  "Large funding amounts for growing businesses with excellent support",
			MinAmount:    25000,
			MaxAmount:    1000000,
			TimeFrame:    "2-5 business days",
			Requirements: pq.StringArray{"18+ months in business", "Min $25K monthly revenue", "Credit score 650+"},
			IsDefault:    true,
		},
		{
			ID:           "quick-cash",
			Name:         "QuickCash Business",
			Logo:         "QC",
			Description:  "Emergency funding solutions with minimal documentation required",
			MinAmount:    3000,
			MaxAmount:    100000,
			TimeFrame:    "2-6 hours",
			Requirements: pq.StringArray{"3+ months in business", "Min $5K monthly revenue", "Active bank account"},
			IsDefault:    true,
		},
		{
			ID:           "premier-funding",
			Name:         "Premier Funding Group",
			Logo:         "PF",
			Description:  "Premium lender with excellent rates for qualified businesses",
			MinAmount:    50000,
			MaxAmount:    2000000,
			TimeFrame:    "3-7 business days",
			Requirements: pq.StringArray{"24+ months in business", "Min $50K monthly revenue", "Credit score 700+"},
			IsDefault:    true,
		},
	}
}
