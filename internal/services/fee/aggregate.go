package fee

import "fmt"

// CompareFeesByType prices basePrice under every supported transaction type,
// in enumeration order. The first failing type aborts the comparison.
func (c *Calculator) CompareFeesByType(basePrice float64, opts Options) ([]TypeComparison, error) {
	out := make([]TypeComparison, 0, len(SupportedTransactionTypes))
	for _, t := range SupportedTransactionTypes {
		b, err := c.CalculateFeeBreakdown(basePrice, t, opts)
		if err != nil {
			return nil, fmt.Errorf("compare %s: %w", t, err)
		}
		policy, _ := t.Policy()
		out = append(out, TypeComparison{
			Type:          t,
			Description:   policy.Description,
			TotalFee:      b.TotalFee,
			EffectiveRate: b.EffectiveRate,
			TotalPrice:    b.TotalPrice,
		})
	}
	return out, nil
}

// CalculateBatchFees prices every item independently and sums the results.
// The batch total is the sum of the input base prices plus the summed fees.
func (c *Calculator) CalculateBatchFees(items []BatchItem) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	res := &BatchResult{
		ItemCount: len(items),
		Items:     make([]BatchLine, 0, len(items)),
	}

	for i, item := range items {
		b, err := c.CalculateFeeBreakdown(item.BasePrice, item.TransactionType, item.Options)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		res.Items = append(res.Items, BatchLine{BatchItem: item, FeeBreakdown: b})
		res.TotalBasePrice += item.BasePrice
		res.TotalFee += b.TotalFee
	}

	res.TotalBasePrice = round2(res.TotalBasePrice)
	res.TotalFee = round2(res.TotalFee)
	res.TotalPrice = round2(res.TotalBasePrice + res.TotalFee)

	return res, nil
}
