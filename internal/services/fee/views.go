package fee

// CalculateTotalPrice returns only the tenant-facing total of a calculation.
func (c *Calculator) CalculateTotalPrice(basePrice float64, t TransactionType, opts Options) (float64, error) {
	b, err := c.CalculateFeeBreakdown(basePrice, t, opts)
	if err != nil {
		return 0, err
	}
	return b.TotalPrice, nil
}

// CalculateLandlordNetReceipt returns what the landlord keeps after their share
// is deducted from the adjusted price. For sublets the share is zero.
func (c *Calculator) CalculateLandlordNetReceipt(basePrice float64, t TransactionType, opts Options) (*LandlordReceipt, error) {
	b, err := c.CalculateFeeBreakdown(basePrice, t, opts)
	if err != nil {
		return nil, err
	}

	net := round2(b.AdjustedPrice - b.LandlordShare)
	receipt := &LandlordReceipt{
		BasePrice:     b.BasePrice,
		LandlordShare: b.LandlordShare,
		NetReceipt:    net,
	}
	if b.AdjustedPrice > 0 {
		receipt.EffectiveReceiptRate = round2(net / b.AdjustedPrice * 100)
	}
	return receipt, nil
}

// CalculateTenantPayment returns the tenant's view of a calculation.
func (c *Calculator) CalculateTenantPayment(basePrice float64, t TransactionType, opts Options) (*TenantPayment, error) {
	b, err := c.CalculateFeeBreakdown(basePrice, t, opts)
	if err != nil {
		return nil, err
	}

	return &TenantPayment{
		BasePrice:            b.BasePrice,
		TenantShare:          b.TotalFee,
		TotalPayment:         b.TotalPrice,
		SavingsVsTraditional: b.SavingsVsTraditional,
		Components:           b.Components,
	}, nil
}
