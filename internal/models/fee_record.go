package models

import "time"

// FeeRecord is a persisted fee calculation.
type FeeRecord struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	Reference           string    `gorm:"uniqueIndex;not null" json:"reference"`
	ListingID           string    `gorm:"index" json:"listing_id,omitempty"`
	TransactionType     string    `gorm:"index;not null" json:"transaction_type"`
	BasePrice           float64   `gorm:"not null" json:"base_price"`
	AdjustedPrice       float64   `gorm:"not null" json:"adjusted_price"`
	PlatformFee         float64   `gorm:"not null" json:"platform_fee"`
	LandlordShare       float64   `gorm:"not null;default:0" json:"landlord_share"`
	TotalFee            float64   `gorm:"not null" json:"total_fee"`
	TotalPrice          float64   `gorm:"not null" json:"total_price"`
	EffectiveRate       float64   `json:"effective_rate"`
	MinimumFeeApplied   bool      `gorm:"default:false" json:"minimum_fee_applied"`
	IsFlatFee           bool      `gorm:"default:false" json:"is_flat_fee"`
	Multipliers         JSON      `gorm:"type:jsonb" json:"multipliers"`
	FeeStructureVersion string    `gorm:"not null" json:"fee_structure_version"`
	CalculatedAt        time.Time `gorm:"not null" json:"calculated_at"`
	CreatedBy           uint      `json:"created_by,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// FeeRecordFilter narrows record listings.
type FeeRecordFilter struct {
	TransactionType string
	ListingID       string
}
