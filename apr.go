package main

import "math"

// Effective APR solver.
//
// The cheap path is a closed-form estimate from average outstanding balance,
// total interest and a fee-impact term. When that lands outside a plausible
// band the schedule's cashflows are solved for their monthly IRR with
// Newton-Raphson, and if Newton fails to converge a bisection over an
// expanding bracket takes over. When no sign change can be bracketed the APR
// is reported as unavailable rather than guessed.

const (
	maxPlausibleAPR = 0.50 // 50%/year; anything above is treated as a solver artifact

	irrInitialGuess  = 0.01 // 1% per month
	irrTolerance     = 1e-7
	irrMaxIterations = 100

	bisectLow     = 0.0001
	bisectHigh    = 0.5
	bisectMaxHigh = 16.0
)

// CalculateAPR returns the effective annual percentage rate for a schedule,
// as a percent, including the drag of upfront fees. The second return is
// false when no plausible rate could be determined.
func CalculateAPR(principal, upfrontFees float64, rows []ScheduleRow) (float64, bool) {
	if principal <= 0 || len(rows) == 0 {
		return 0, false
	}

	if apr, ok := approximateAPR(principal, upfrontFees, rows); ok {
		return apr * 100, true
	}

	cashflows := buildCashflows(principal, upfrontFees, rows)
	if r, ok := newtonIRR(cashflows); ok {
		apr := annualizeMonthlyRate(r)
		if apr >= 0 && apr <= maxPlausibleAPR {
			return apr * 100, true
		}
	}
	if r, ok := bisectIRR(cashflows); ok {
		return annualizeMonthlyRate(r) * 100, true
	}
	return 0, false
}

// approximateAPR estimates the APR from average balance and total cost.
// Exact for flat-rate annuities and close enough elsewhere; out-of-band
// results are rejected so the solvers can take over.
func approximateAPR(principal, upfrontFees float64, rows []ScheduleRow) (float64, bool) {
	totalInterest := 0.0
	balanceSum := 0.0
	for _, row := range rows {
		totalInterest += row.Interest
		balanceSum += row.OpeningBalance
	}
	avgBalance := balanceSum / float64(len(rows))
	years := float64(len(rows)) / 12.0
	if avgBalance <= 0 || years <= 0 {
		return 0, false
	}
	apr := totalInterest/(avgBalance*years) + upfrontFees/(principal*years)
	if apr < 0 || apr > maxPlausibleAPR {
		return 0, false
	}
	return apr, true
}

// buildCashflows assembles the borrower's cashflow series: the net amount
// received at month 0, then each month's outflow.
func buildCashflows(principal, upfrontFees float64, rows []ScheduleRow) []float64 {
	cashflows := make([]float64, 0, len(rows)+1)
	cashflows = append(cashflows, principal-upfrontFees)
	for _, row := range rows {
		cashflows = append(cashflows, -row.TotalPayment)
	}
	return cashflows
}

func npv(cashflows []float64, rate float64) float64 {
	total := 0.0
	discount := 1.0
	for _, cf := range cashflows {
		total += cf / discount
		discount *= 1 + rate
	}
	return total
}

func npvDerivative(cashflows []float64, rate float64) float64 {
	total := 0.0
	for t := 1; t < len(cashflows); t++ {
		total -= float64(t) * cashflows[t] / math.Pow(1+rate, float64(t+1))
	}
	return total
}

// newtonIRR solves NPV(r) = 0 for the monthly rate. Fails when the
// derivative underflows or a step leaves the valid rate domain.
func newtonIRR(cashflows []float64) (float64, bool) {
	rate := irrInitialGuess
	for i := 0; i < irrMaxIterations; i++ {
		derivative := npvDerivative(cashflows, rate)
		if math.Abs(derivative) < 1e-12 {
			return 0, false
		}
		next := rate - npv(cashflows, rate)/derivative
		if next <= -0.9999 || next > 10 {
			return 0, false
		}
		if math.Abs(next-rate) < irrTolerance {
			return next, true
		}
		rate = next
	}
	return 0, false
}

// bisectIRR brackets the root by geometrically expanding the high end until
// the NPV changes sign, then bisects. Reports failure when no sign change
// exists within the expansion limit.
func bisectIRR(cashflows []float64) (float64, bool) {
	low, high := bisectLow, bisectHigh
	npvLow := npv(cashflows, low)
	npvHigh := npv(cashflows, high)
	for npvLow*npvHigh > 0 && high < bisectMaxHigh {
		high *= 2
		npvHigh = npv(cashflows, high)
	}
	if npvLow*npvHigh > 0 {
		return 0, false
	}

	scale := math.Abs(cashflows[0])
	for i := 0; i < 200; i++ {
		mid := (low + high) / 2
		npvMid := npv(cashflows, mid)
		if math.Abs(npvMid) < 1e-9*scale || high-low < 1e-10 {
			return mid, true
		}
		if npvLow*npvMid < 0 {
			high = mid
		} else {
			low = mid
			npvLow = npvMid
		}
	}
	return (low + high) / 2, true
}

// annualizeMonthlyRate compounds a monthly rate to its effective annual rate
func annualizeMonthlyRate(monthly float64) float64 {
	return math.Pow(1+monthly, 12) - 1
}
