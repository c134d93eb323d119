package fee

// TransactionType is one of the lease transactions the engine prices.
type TransactionType string

const (
	DateChange    TransactionType = "date_change"
	LeaseTakeover TransactionType = "lease_takeover"
	Sublet        TransactionType = "sublet"
	LeaseRenewal  TransactionType = "lease_renewal"
	Buyout        TransactionType = "buyout"
	Swap          TransactionType = "swap"
)

// SupportedTransactionTypes lists every transaction type in enumeration order.
var SupportedTransactionTypes = []TransactionType{
	DateChange,
	LeaseTakeover,
	Sublet,
	LeaseRenewal,
	Buyout,
	Swap,
}

// TypePolicy describes how a transaction type is charged.
type TypePolicy struct {
	Description          string `json:"description"`
	ChargesLandlordShare bool   `json:"charges_landlord_share"`
	FlatFeeEligible      bool   `json:"flat_fee_eligible"`
}

var typePolicies = map[TransactionType]TypePolicy{
	DateChange: {
		Description:          "Change of move-in or move-out dates",
		ChargesLandlordShare: true,
	},
	LeaseTakeover: {
		Description:          "Transfer of an existing lease to a new tenant",
		ChargesLandlordShare: true,
	},
	Sublet: {
		Description:          "Temporary sublet, landlord is not charged",
		ChargesLandlordShare: false,
	},
	LeaseRenewal: {
		Description:          "Renewal of an existing lease",
		ChargesLandlordShare: true,
	},
	Buyout: {
		Description:          "Early termination buyout",
		ChargesLandlordShare: true,
	},
	Swap: {
		Description:          "Unit swap between two tenants",
		ChargesLandlordShare: true,
		FlatFeeEligible:      true,
	},
}

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	_, ok := typePolicies[t]
	return ok
}

// Policy returns the charging policy of t.
func (t TransactionType) Policy() (TypePolicy, bool) {
	p, ok := typePolicies[t]
	return p, ok
}

func (t TransactionType) String() string {
	return string(t)
}

// Options tunes a single calculation. The zero value is the default:
// both multipliers at 1.0, minimum fee applied, no swap settlement.
type Options struct {
	// UrgencyMultiplier is applied to the base price first. Zero means 1.0.
	UrgencyMultiplier float64 `json:"urgency_multiplier,omitempty"`
	// BuyoutMultiplier is applied to the urgency-adjusted price. Zero means 1.0.
	BuyoutMultiplier float64 `json:"buyout_multiplier,omitempty"`
	// ApplyMinimumFee defaults to true when nil.
	ApplyMinimumFee *bool   `json:"apply_minimum_fee,omitempty"`
	SwapSettlement  float64 `json:"swap_settlement,omitempty"`
}

func (o Options) urgency() float64 {
	if o.UrgencyMultiplier == 0 {
		return defaultMultiplier
	}
	return o.UrgencyMultiplier
}

func (o Options) buyout() float64 {
	if o.BuyoutMultiplier == 0 {
		return defaultMultiplier
	}
	return o.BuyoutMultiplier
}

func (o Options) minimumFee() bool {
	return o.ApplyMinimumFee == nil || *o.ApplyMinimumFee
}

// Bool returns a pointer to v, for Options.ApplyMinimumFee.
func Bool(v bool) *bool {
	return &v
}

// ComponentType identifies a display line of a breakdown.
type ComponentType string

const (
	ComponentBase    ComponentType = "base"
	ComponentUrgency ComponentType = "urgency"
	ComponentPremium ComponentType = "premium"
	ComponentFee     ComponentType = "fee"
	ComponentTotal   ComponentType = "total"
)

// Component is a display line item. Breakdowns order them
// base, urgency, premium, fee, total.
type Component struct {
	Type        ComponentType `json:"type"`
	Label       string        `json:"label"`
	Amount      float64       `json:"amount"`
	Description string        `json:"description,omitempty"`
}

// Multipliers records the multipliers a breakdown was computed with.
type Multipliers struct {
	Urgency float64 `json:"urgency"`
	Buyout  float64 `json:"buyout"`
}

// Metadata carries calculation flags that don't fit the money fields.
type Metadata struct {
	MinimumFeeApplied bool `json:"minimum_fee_applied"`
}

// FeeBreakdown is the complete result of a fee calculation.
type FeeBreakdown struct {
	BasePrice            float64         `json:"base_price"`
	AdjustedPrice        float64         `json:"adjusted_price"`
	PlatformFee          float64         `json:"platform_fee"`
	LandlordShare        float64         `json:"landlord_share"`
	TenantShare          float64         `json:"tenant_share"`
	TotalFee             float64         `json:"total_fee"`
	TotalPrice           float64         `json:"total_price"`
	EffectiveRate        float64         `json:"effective_rate"`
	SavingsVsTraditional float64         `json:"savings_vs_traditional"`
	Multipliers          Multipliers     `json:"multipliers"`
	IsSwap               bool            `json:"is_swap"`
	IsFlatFee            bool            `json:"is_flat_fee"`
	HasSettlement        bool            `json:"has_settlement"`
	Components           []Component     `json:"components"`
	Metadata             Metadata        `json:"metadata"`
	TransactionType      TransactionType `json:"transaction_type"`
}

// ValidationResult is the outcome of ValidateFeeCalculation.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// LandlordReceipt is the landlord's view of a breakdown.
type LandlordReceipt struct {
	BasePrice            float64 `json:"base_price"`
	LandlordShare        float64 `json:"landlord_share"`
	NetReceipt           float64 `json:"net_receipt"`
	EffectiveReceiptRate float64 `json:"effective_receipt_rate"`
}

// TenantPayment is the tenant's view of a breakdown.
type TenantPayment struct {
	BasePrice            float64     `json:"base_price"`
	TenantShare          float64     `json:"tenant_share"`
	TotalPayment         float64     `json:"total_payment"`
	SavingsVsTraditional float64     `json:"savings_vs_traditional"`
	Components           []Component `json:"components"`
}

// TypeComparison summarises one transaction type for the same base price.
type TypeComparison struct {
	Type          TransactionType `json:"type"`
	Description   string          `json:"description"`
	TotalFee      float64         `json:"total_fee"`
	EffectiveRate float64         `json:"effective_rate"`
	TotalPrice    float64         `json:"total_price"`
}

// BatchItem is one line of a batch calculation.
type BatchItem struct {
	BasePrice       float64         `json:"base_price"`
	TransactionType TransactionType `json:"transaction_type"`
	Options         Options         `json:"options"`
}

// BatchLine is a batch item together with its breakdown.
type BatchLine struct {
	BatchItem
	FeeBreakdown *FeeBreakdown `json:"fee_breakdown"`
}

// BatchResult aggregates independently computed batch lines.
type BatchResult struct {
	ItemCount      int         `json:"item_count"`
	TotalBasePrice float64     `json:"total_base_price"`
	Items          []BatchLine `json:"items"`
	TotalFee       float64     `json:"total_fee"`
	TotalPrice     float64     `json:"total_price"`
}

// DBRecord is the persistence shape of a breakdown.
type DBRecord struct {
	BasePrice           float64         `json:"base_price"`
	AdjustedPrice       float64         `json:"adjusted_price"`
	PlatformFee         float64         `json:"platform_fee"`
	LandlordShare       float64         `json:"landlord_share"`
	TotalFee            float64         `json:"total_fee"`
	TotalPrice          float64         `json:"total_price"`
	EffectiveRate       float64         `json:"effective_rate"`
	TransactionType     TransactionType `json:"transaction_type"`
	MinimumFeeApplied   bool            `json:"minimum_fee_applied"`
	IsFlatFee           bool            `json:"is_flat_fee"`
	CalculatedAt        string          `json:"calculated_at"`
	FeeStructureVersion string          `json:"fee_structure_version"`
	Multipliers         Multipliers     `json:"multipliers"`
}

// DisplayComponent is a Component with a formatted amount.
type DisplayComponent struct {
	Type        ComponentType `json:"type"`
	Label       string        `json:"label"`
	Amount      string        `json:"amount"`
	Description string        `json:"description,omitempty"`
}

// DisplayBreakdown is a FeeBreakdown with every figure formatted for presentation.
type DisplayBreakdown struct {
	BasePrice            string             `json:"base_price"`
	AdjustedPrice        string             `json:"adjusted_price"`
	PlatformFee          string             `json:"platform_fee"`
	LandlordShare        string             `json:"landlord_share"`
	TenantShare          string             `json:"tenant_share"`
	TotalFee             string             `json:"total_fee"`
	TotalPrice           string             `json:"total_price"`
	EffectiveRate        string             `json:"effective_rate"`
	SavingsVsTraditional string             `json:"savings_vs_traditional"`
	IsSwap               bool               `json:"is_swap"`
	IsFlatFee            bool               `json:"is_flat_fee"`
	Components           []DisplayComponent `json:"components"`
	TransactionType      TransactionType    `json:"transaction_type"`
}
