package fee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareFeesByType(t *testing.T) {
	calc := newTestCalculator()

	rows, err := calc.CompareFeesByType(1000, Options{})
	require.NoError(t, err)
	require.Len(t, rows, len(SupportedTransactionTypes))

	for i, row := range rows {
		assert.Equal(t, SupportedTransactionTypes[i], row.Type)
		assert.NotEmpty(t, row.Description)
	}

	byType := map[TransactionType]TypeComparison{}
	for _, row := range rows {
		byType[row.Type] = row
	}
	assert.Equal(t, 15.0, byType[DateChange].TotalFee)
	assert.Equal(t, 15.0, byType[LeaseTakeover].TotalFee)
	assert.Equal(t, 15.0, byType[LeaseRenewal].TotalFee)
	assert.Equal(t, 15.0, byType[Buyout].TotalFee)
	assert.Equal(t, 7.5, byType[Sublet].TotalFee)
	assert.Equal(t, 0.75, byType[Sublet].EffectiveRate)
	assert.Equal(t, 5.0, byType[Swap].TotalFee)
	assert.Equal(t, 5.0, byType[Swap].TotalPrice)
	assert.Equal(t, 1015.0, byType[DateChange].TotalPrice)
}

func TestCompareFeesByType_PropagatesErrors(t *testing.T) {
	rows, err := newTestCalculator().CompareFeesByType(-1, Options{})
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "compare date_change")
}

func TestCalculateBatchFees(t *testing.T) {
	calc := newTestCalculator()

	t.Run("empty batch", func(t *testing.T) {
		_, err := calc.CalculateBatchFees([]BatchItem{})
		assert.ErrorIs(t, err, ErrEmptyBatch)
	})

	t.Run("nil batch", func(t *testing.T) {
		_, err := calc.CalculateBatchFees(nil)
		assert.ErrorIs(t, err, ErrEmptyBatch)
	})

	t.Run("two items", func(t *testing.T) {
		res, err := calc.CalculateBatchFees([]BatchItem{
			{BasePrice: 1000, TransactionType: DateChange},
			{BasePrice: 2000, TransactionType: LeaseTakeover},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, res.ItemCount)
		assert.Equal(t, 3000.0, res.TotalBasePrice)
		assert.Equal(t, 45.0, res.TotalFee)
		assert.Equal(t, 3045.0, res.TotalPrice)
		assert.Equal(t, res.TotalBasePrice+res.TotalFee, res.TotalPrice)

		require.Len(t, res.Items, 2)
		assert.Equal(t, DateChange, res.Items[0].TransactionType)
		assert.Equal(t, 15.0, res.Items[0].FeeBreakdown.TotalFee)
		assert.Equal(t, 30.0, res.Items[1].FeeBreakdown.TotalFee)
	})

	t.Run("items are independent", func(t *testing.T) {
		res, err := calc.CalculateBatchFees([]BatchItem{
			{BasePrice: 100, TransactionType: Sublet},
			{BasePrice: 0, TransactionType: Swap},
			{BasePrice: 1000, TransactionType: Buyout, Options: Options{UrgencyMultiplier: 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, 5.0, res.Items[0].FeeBreakdown.TotalFee)
		assert.True(t, res.Items[1].FeeBreakdown.IsFlatFee)
		assert.Equal(t, 30.0, res.Items[2].FeeBreakdown.TotalFee)
		assert.Equal(t, 40.0, res.TotalFee)
		assert.Equal(t, 1100.0, res.TotalBasePrice)
		assert.Equal(t, 1140.0, res.TotalPrice)
	})

	t.Run("failing item names its index", func(t *testing.T) {
		_, err := calc.CalculateBatchFees([]BatchItem{
			{BasePrice: 1000, TransactionType: DateChange},
			{BasePrice: -1, TransactionType: DateChange},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "batch item 1")
	})
}
