package fee

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// isoMillis matches the millisecond ISO-8601 stamps stored by the web client.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// FormatFeeBreakdownForDB computes a breakdown and maps it to its persisted shape.
func (c *Calculator) FormatFeeBreakdownForDB(basePrice float64, t TransactionType, opts Options) (*DBRecord, error) {
	b, err := c.CalculateFeeBreakdown(basePrice, t, opts)
	if err != nil {
		return nil, err
	}

	return &DBRecord{
		BasePrice:           b.BasePrice,
		AdjustedPrice:       b.AdjustedPrice,
		PlatformFee:         b.PlatformFee,
		LandlordShare:       b.LandlordShare,
		TotalFee:            b.TotalFee,
		TotalPrice:          b.TotalPrice,
		EffectiveRate:       b.EffectiveRate,
		TransactionType:     b.TransactionType,
		MinimumFeeApplied:   b.Metadata.MinimumFeeApplied,
		IsFlatFee:           b.IsFlatFee,
		CalculatedAt:        c.now().UTC().Format(isoMillis),
		FeeStructureVersion: FeeStructureVersion,
		Multipliers:         b.Multipliers,
	}, nil
}

// FormatCurrency renders amount as dollars with thousands separators for
// locale (en-US when empty or unparseable). Non-finite amounts render as $0.00.
func FormatCurrency(amount float64, locale string) string {
	if !finite(amount) {
		amount = 0
	}
	if locale == "" {
		locale = defaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}

	amount = round2(amount)
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	p := message.NewPrinter(tag)
	return sign + "$" + p.Sprintf("%v", number.Decimal(amount, number.Scale(2)))
}

// FormatPercentage renders a fraction as a percentage: 0.015 is "1.50%".
// Non-finite input renders as "0%".
func FormatPercentage(fraction float64, decimalPlaces int) string {
	if !finite(fraction) {
		return "0%"
	}
	if decimalPlaces < 0 {
		decimalPlaces = 2
	}
	return strconv.FormatFloat(fraction*100, 'f', decimalPlaces, 64) + "%"
}

// FormatBreakdownForDisplay formats every figure of b for presentation.
// EffectiveRate is stored as a percentage and formatted as one.
func FormatBreakdownForDisplay(b *FeeBreakdown) DisplayBreakdown {
	if b == nil {
		b = &FeeBreakdown{}
	}

	components := make([]DisplayComponent, 0, len(b.Components))
	for _, comp := range b.Components {
		components = append(components, DisplayComponent{
			Type:        comp.Type,
			Label:       comp.Label,
			Amount:      FormatCurrency(comp.Amount, defaultLocale),
			Description: comp.Description,
		})
	}

	return DisplayBreakdown{
		BasePrice:            FormatCurrency(b.BasePrice, defaultLocale),
		AdjustedPrice:        FormatCurrency(b.AdjustedPrice, defaultLocale),
		PlatformFee:          FormatCurrency(b.PlatformFee, defaultLocale),
		LandlordShare:        FormatCurrency(b.LandlordShare, defaultLocale),
		TenantShare:          FormatCurrency(b.TenantShare, defaultLocale),
		TotalFee:             FormatCurrency(b.TotalFee, defaultLocale),
		TotalPrice:           FormatCurrency(b.TotalPrice, defaultLocale),
		EffectiveRate:        FormatPercentage(b.EffectiveRate/100, 2),
		SavingsVsTraditional: FormatCurrency(b.SavingsVsTraditional, defaultLocale),
		IsSwap:               b.IsSwap,
		IsFlatFee:            b.IsFlatFee,
		Components:           components,
		TransactionType:      b.TransactionType,
	}
}
