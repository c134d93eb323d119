package fee

import (
	"fmt"
	"math/big"
	"time"
)

// Calculator computes fee breakdowns for one rate regime.
type Calculator struct {
	constants Constants
	now       func() time.Time
}

// NewCalculator returns a Calculator bound to constants.
func NewCalculator(constants Constants) *Calculator {
	return &Calculator{
		constants: constants,
		now:       time.Now,
	}
}

// WithClock returns a copy of c that stamps DB records using now.
func (c *Calculator) WithClock(now func() time.Time) *Calculator {
	cp := *c
	cp.now = now
	return &cp
}

// Constants returns the rate regime of c.
func (c *Calculator) Constants() Constants {
	return c.constants
}

// CalculateFeeBreakdown computes the full fee breakdown of a transaction.
func (c *Calculator) CalculateFeeBreakdown(basePrice float64, t TransactionType, opts Options) (*FeeBreakdown, error) {
	if err := checkInput(basePrice, t, opts); err != nil {
		return nil, err
	}

	policy, _ := t.Policy()
	applyMinimum := opts.minimumFee()

	b := &FeeBreakdown{
		TransactionType: t,
		IsSwap:          t == Swap,
		Multipliers: Multipliers{
			Urgency: opts.urgency(),
			Buyout:  opts.buyout(),
		},
	}

	if policy.FlatFeeEligible {
		if opts.SwapSettlement == 0 {
			return c.flatFee(b), nil
		}
		// Settlements always floor at the minimum fee.
		basePrice = opts.SwapSettlement
		b.HasSettlement = true
		applyMinimum = true
	}

	// Fees come from the unrounded adjusted price; only reported figures are rounded.
	urgencyAdjusted, adjusted := composeMultipliers(basePrice, opts)

	platformFee := round2(adjusted * c.constants.PlatformRate)
	landlordShare := 0.0
	totalFee := platformFee
	if policy.ChargesLandlordShare {
		landlordShare = round2(adjusted * c.constants.LandlordRate)
		totalFee = round2(adjusted * c.constants.TotalRate)
	}

	// The floor only lifts the total; the two shares keep their computed values.
	if applyMinimum && totalFee < c.constants.MinFeeAmount {
		totalFee = c.constants.MinFeeAmount
		b.Metadata.MinimumFeeApplied = true
	}

	b.BasePrice = basePrice
	b.AdjustedPrice = round2(adjusted)
	b.PlatformFee = platformFee
	b.LandlordShare = landlordShare
	b.TotalFee = totalFee
	b.TenantShare = totalFee
	b.TotalPrice = round2(adjusted + totalFee)
	if adjusted > 0 {
		b.EffectiveRate = round2(totalFee / adjusted * 100)
	}
	// The conversion rounds the product so it cannot be fused into a multiply-add.
	b.SavingsVsTraditional = round2(float64(adjusted*c.constants.TraditionalMarkup) - totalFee)
	b.Components = c.components(b, urgencyAdjusted)

	return b, nil
}

// composeMultipliers applies urgency first, then buyout on the urgency-adjusted price.
func composeMultipliers(basePrice float64, opts Options) (urgencyAdjusted, adjusted float64) {
	urgencyAdjusted = basePrice * opts.urgency()
	adjusted = urgencyAdjusted * opts.buyout()
	return urgencyAdjusted, adjusted
}

func (c *Calculator) flatFee(b *FeeBreakdown) *FeeBreakdown {
	flat := c.constants.MinFeeAmount

	b.IsFlatFee = true
	b.PlatformFee = flat
	b.TotalFee = flat
	b.TenantShare = flat
	b.TotalPrice = flat
	b.Components = []Component{
		{Type: ComponentBase, Label: "Base price", Amount: 0, Description: "Swap without settlement"},
		{Type: ComponentFee, Label: "Swap fee", Amount: flat, Description: "Flat fee"},
		{Type: ComponentTotal, Label: "Total", Amount: flat},
	}
	return b
}

func (c *Calculator) components(b *FeeBreakdown, urgencyAdjusted float64) []Component {
	base := Component{Type: ComponentBase, Label: "Base price", Amount: b.BasePrice}
	if b.HasSettlement {
		base.Description = "Swap settlement"
	}
	out := []Component{base}

	if b.Multipliers.Urgency != defaultMultiplier {
		out = append(out, Component{
			Type:        ComponentUrgency,
			Label:       "Urgency adjustment",
			Amount:      round2(urgencyAdjusted - b.BasePrice),
			Description: fmt.Sprintf("%gx urgency multiplier", b.Multipliers.Urgency),
		})
	}
	if b.Multipliers.Buyout != defaultMultiplier {
		out = append(out, Component{
			Type:        ComponentPremium,
			Label:       "Buyout premium",
			Amount:      round2(urgencyAdjusted*b.Multipliers.Buyout - urgencyAdjusted),
			Description: fmt.Sprintf("%gx buyout multiplier", b.Multipliers.Buyout),
		})
	}

	feeLine := Component{
		Type:        ComponentFee,
		Label:       "Service fee",
		Amount:      b.TotalFee,
		Description: fmt.Sprintf("%g%% transaction fee", c.constants.TotalRate*100),
	}
	if b.Metadata.MinimumFeeApplied {
		feeLine.Description = "Minimum fee"
	}
	out = append(out, feeLine, Component{Type: ComponentTotal, Label: "Total", Amount: b.TotalPrice})

	return out
}

// round2 rounds v to cents, half away from zero, using the exact binary value
// of v. A float printed as 42.525 is really 42.52499999... and rounds down.
func round2(v float64) float64 {
	if !finite(v) {
		return v
	}

	f := new(big.Float).SetPrec(256).SetFloat64(v)
	f.Mul(f, big.NewFloat(100))
	half := big.NewFloat(0.5)
	if v < 0 {
		f.Sub(f, half)
	} else {
		f.Add(f, half)
	}

	cents, _ := f.Int(nil)
	r, _ := new(big.Float).SetInt(cents).Float64()
	return r / 100
}
