/*
Package fee implements the lease transaction fee engine.

Every fee is a 1.5% split between the platform (0.75%) and the landlord
(0.75%), added on top of the adjusted price the tenant pays. Urgency and
buyout multipliers are composed onto the base price first; a $5.00 floor
applies to the total fee, and a swap without a settlement is charged a flat
$5.00 instead of a percentage.

Usage:

	calc := fee.NewCalculator(fee.DefaultConstants())

	// Full breakdown
	b, err := calc.CalculateFeeBreakdown(1000, fee.DateChange, fee.Options{})

	// Pre-submission checks, never fails
	res := calc.ValidateFeeCalculation(&price, fee.Buyout, opts)

	// Projections of the same breakdown
	total, err := calc.CalculateTotalPrice(1000, fee.Sublet, fee.Options{})
	receipt, err := calc.CalculateLandlordNetReceipt(1000, fee.LeaseTakeover, fee.Options{})

Rounding:

Currency figures are rounded to cents, half away from zero, on the exact
binary value of the float. 2835 * 0.015 is stored as 42.52499999... and
therefore rounds to 42.52.

Errors:

- ErrInvalidInput: negative or non-finite price, unknown transaction type,
  multiplier below 1.0, negative swap settlement
- ErrEmptyBatch: batch calculation called without items

A Calculator holds no mutable state and is safe for concurrent use.
*/
package fee
