package fee

// FeeStructureVersion identifies the rate model in persisted records.
const FeeStructureVersion = "1.5_split_model_v1"

// Validation thresholds
const (
	// MultiplierWarningThreshold flags multipliers that are probably data-entry errors.
	MultiplierWarningThreshold = 10.0
	defaultMultiplier          = 1.0
	defaultLocale              = "en-US"
)

// Constants is the rate regime a Calculator works with.
type Constants struct {
	PlatformRate      float64 `json:"platform_rate"`
	LandlordRate      float64 `json:"landlord_rate"`
	TotalRate         float64 `json:"total_rate"`
	TraditionalMarkup float64 `json:"traditional_markup"`
	MinFeeAmount      float64 `json:"min_fee_amount"`
}

// DefaultConstants returns the production rate regime.
func DefaultConstants() Constants {
	return Constants{
		PlatformRate:      0.0075, // 0.75% platform share
		LandlordRate:      0.0075, // 0.75% landlord share
		TotalRate:         0.015,  // 1.5% total
		TraditionalMarkup: 0.17,   // 17% traditional broker markup
		MinFeeAmount:      5.00,
	}
}
