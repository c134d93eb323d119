package fee

import (
	"fmt"
	"math"
	"strings"
)

// report collects validation findings the way the request validators do:
// Check records an error when the condition fails, Warn records an advisory.
type report struct {
	errors   []string
	warnings []string
}

func (r *report) Check(ok bool, message string) {
	if !ok {
		r.errors = append(r.errors, message)
	}
}

func (r *report) Warn(flag bool, message string) {
	if flag {
		r.warnings = append(r.warnings, message)
	}
}

func (r *report) Valid() bool {
	return len(r.errors) == 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// inspect holds the input rules shared by the calculator guard and the validator.
func inspect(basePrice *float64, t TransactionType, opts Options) *report {
	r := &report{}

	switch {
	case basePrice == nil:
		r.Check(false, "base price is required")
	case !finite(*basePrice):
		r.Check(false, "base price must be a number")
	default:
		r.Check(*basePrice >= 0, "base price cannot be negative")
		r.Warn(*basePrice == 0 && t != Swap, "base price is zero")
	}

	r.Check(t.Valid(), fmt.Sprintf("unsupported transaction type %q", string(t)))

	inspectMultiplier(r, "urgency", opts.urgency())
	inspectMultiplier(r, "buyout", opts.buyout())

	r.Check(finite(opts.SwapSettlement), "swap settlement must be a number")
	r.Check(opts.SwapSettlement >= 0 || !finite(opts.SwapSettlement), "swap settlement cannot be negative")

	return r
}

func inspectMultiplier(r *report, name string, v float64) {
	if !finite(v) {
		r.Check(false, name+" multiplier must be a number")
		return
	}
	r.Check(v >= 1.0, fmt.Sprintf("%s multiplier must be at least 1.0, got %g", name, v))
	r.Warn(v >= MultiplierWarningThreshold, fmt.Sprintf("%s multiplier %g is unusually high", name, v))
}

// checkInput is the calculator's guard clause.
func checkInput(basePrice float64, t TransactionType, opts Options) error {
	r := inspect(&basePrice, t, opts)
	if !r.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(r.errors, "; "))
	}
	return nil
}

// ValidateFeeCalculation checks the inputs of a calculation without failing.
// A nil basePrice is reported as missing. Warnings never invalidate the input.
func (c *Calculator) ValidateFeeCalculation(basePrice *float64, t TransactionType, opts Options) ValidationResult {
	r := inspect(basePrice, t, opts)

	res := ValidationResult{
		IsValid:  r.Valid(),
		Errors:   r.errors,
		Warnings: r.warnings,
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	return res
}
