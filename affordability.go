package main

import "math"

// Affordability search: the largest principal whose first-year average
// payment stays under a monthly cap, found by binary search over the
// principal. The loan-to-value limit of the product caps the search space
// when a property value is configured.

// AffordabilityResult is the outcome of a MaxAffordablePrincipal search
type AffordabilityResult struct {
	MaxPrincipal        float64
	FirstYearAvgPayment float64
	LTVLimited          bool // True when the LTV cap bound the result, not the payment cap
	Converged           bool
	Iterations          int
}

const (
	affordabilityTolerance     = 1000.0 // VND window on the principal
	affordabilityMaxIterations = 100
)

// MaxAffordablePrincipal finds the largest loan the cap supports on this
// product, under the loan request's term, stress bump and insurance options.
func MaxAffordablePrincipal(tpl *ProductTemplate, loan LoanRequest, monthlyCapVND float64) AffordabilityResult {
	var result AffordabilityResult
	if monthlyCapVND <= 0 || loan.TermMonths <= 0 {
		return result
	}

	firstYearPayment := func(principal float64) float64 {
		test := loan
		test.PrincipalVND = principal
		schedule := GenerateSchedule(NewPurchaseSpec(tpl, test, Strategy{Kind: MinimumPayment}))
		return schedule.Metrics.FirstYearAvgPayment
	}

	// A loan repaying cap every month for the whole term cannot exceed
	// cap * term in principal; the LTV cap shrinks that further.
	high := monthlyCapVND * float64(loan.TermMonths)
	ltvCap := math.MaxFloat64
	if tpl.MaxLTVPct > 0 && loan.PropertyValueVND > 0 {
		ltvCap = loan.PropertyValueVND * tpl.MaxLTVPct / 100
		if high > ltvCap {
			high = ltvCap
		}
	}
	low := 0.0

	if firstYearPayment(high) <= monthlyCapVND {
		// The cap is not binding within the searchable range.
		result.MaxPrincipal = roundVND(high)
		result.FirstYearAvgPayment = firstYearPayment(high)
		result.LTVLimited = high == ltvCap
		result.Converged = true
		return result
	}

	for i := 0; i < affordabilityMaxIterations; i++ {
		result.Iterations = i + 1
		mid := (low + high) / 2
		if firstYearPayment(mid) <= monthlyCapVND {
			low = mid
		} else {
			high = mid
		}
		if high-low < affordabilityTolerance {
			result.Converged = true
			break
		}
	}

	result.MaxPrincipal = roundVND(low)
	result.FirstYearAvgPayment = firstYearPayment(result.MaxPrincipal)
	return result
}
