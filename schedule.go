package main

import (
	"math"
	"time"
)

// Amortization scheduling.
//
// GenerateSchedule folds month by month over the loan: look up the rate,
// recompute the annuity payment when a trigger fires, accrue interest, apply
// scheduled and extra principal, then fees and insurance. Totals are derived
// from the emitted rows afterwards, never accumulated independently.

// ScheduleSpec describes one loan to simulate
type ScheduleSpec struct {
	Principal     float64
	TermMonths    int
	HorizonMonths int // Caps emitted rows; 0 means the full term
	Timeline      []RatePoint
	Method        RepaymentMethod
	GraceMonths   int // Months with no scheduled principal
	PromoMonths   int
	ResetMonths   int // Floating-rate reset frequency, 0 = reset on rate change only

	Fees             *FeeScheduleConfig // nil for loans with no fee schedule
	FeeTiers         []PrepaymentTier   // Penalty tiers; defaults to Fees.PrepaymentTiers
	LoanAgeMonths    int                // Absolute-month offset into the tier table
	PropertyValue    float64
	IncludeInsurance bool

	MinPartialPrepayment float64
	Strategy             Strategy
	StartDate            time.Time // Zero leaves row dates unset
}

func (s *ScheduleSpec) penaltyTiers() []PrepaymentTier {
	if s.FeeTiers != nil {
		return s.FeeTiers
	}
	if s.Fees != nil {
		return s.Fees.PrepaymentTiers
	}
	return nil
}

// CalculatePMT returns the level annuity payment for a principal amortized
// over months at a fixed annual rate:
//
//	M = P x r(1+r)^n / ((1+r)^n - 1)
//
// A zero rate degenerates to straight-line principal.
func CalculatePMT(principal, annualRatePct float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	r := monthlyRate(annualRatePct)
	if r == 0 {
		return principal / float64(months)
	}
	factor := math.Pow(1+r, float64(months))
	return principal * r * factor / (factor - 1)
}

// ResolveExitMonth maps an ExitPlan milestone to a concrete payoff month.
// Returns 0 when the strategy has no exit or the milestone does not apply
// to this loan (no promo period, no grace period, fee never drops).
func ResolveExitMonth(spec *ScheduleSpec) int {
	if spec.Strategy.Kind != ExitPlan {
		return 0
	}
	switch spec.Strategy.Milestone {
	case ExitAtPromoEnd:
		return spec.PromoMonths
	case ExitAtGraceEnd:
		return spec.GraceMonths
	case ExitAtMonth:
		return spec.Strategy.ExitMonth
	case ExitAtFeeThreshold:
		return FirstMonthAtOrBelowFeePct(spec.penaltyTiers(), spec.LoanAgeMonths, spec.Strategy.FeeThresholdPct)
	default:
		return 0
	}
}

// GenerateSchedule simulates the loan month by month and returns the full
// schedule with totals and summary metrics.
func GenerateSchedule(spec ScheduleSpec) ScheduleResult {
	horizon := spec.HorizonMonths
	if horizon <= 0 || horizon > spec.TermMonths {
		horizon = spec.TermMonths
	}

	exitMonth := ResolveExitMonth(&spec)
	tiers := spec.penaltyTiers()

	balance := roundVND(spec.Principal)
	payment := 0.0
	prevRate := math.NaN()

	rows := make([]ScheduleRow, 0, horizon)
	for m := 1; m <= horizon && balance > 0; m++ {
		rate := RateForMonth(spec.Timeline, m)
		interest := roundVND(balance * monthlyRate(rate))

		// The annuity payment holds until a trigger: the first month, any
		// rate change (promo expiry included), the month after grace ends,
		// and each post-promo reset boundary.
		recompute := m == 1 || rate != prevRate
		if spec.GraceMonths > 0 && m == spec.GraceMonths+1 {
			recompute = true
		}
		if spec.ResetMonths > 0 && m > spec.PromoMonths && (m-spec.PromoMonths-1)%spec.ResetMonths == 0 {
			recompute = true
		}
		if recompute && spec.Method == Annuity {
			payment = CalculatePMT(balance, rate, spec.TermMonths-m+1)
		}
		prevRate = rate

		inGrace := m <= spec.GraceMonths
		var scheduled float64
		switch {
		case inGrace:
			scheduled = 0
		case spec.Method == EqualPrincipal:
			scheduled = roundVND(spec.Principal / float64(spec.TermMonths-spec.GraceMonths))
		default:
			scheduled = roundVND(payment - interest)
		}
		if scheduled < 0 {
			scheduled = 0
		}
		if !inGrace && (m == spec.TermMonths || scheduled > balance) {
			// The final contractual month clears any rounding residue. A
			// grace period covering the whole term is a legitimate
			// interest-only loan: the principal never amortizes.
			scheduled = balance
		}

		remaining := balance - scheduled

		// Extra principal below the product's minimum partial prepayment is
		// quietly skipped unless it would retire the loan outright.
		extra := 0.0
		if spec.Strategy.Kind == FixedExtraPrincipal && remaining > 0 {
			e := roundVND(spec.Strategy.ExtraPerMonth)
			if e >= remaining {
				extra = remaining
			} else if e >= spec.MinPartialPrepayment {
				extra = e
			}
		}

		penalty := 0.0
		payoff := false
		if exitMonth > 0 && m == exitMonth && remaining > 0 {
			extra = remaining
			penalty = PrepaymentFee(tiers, spec.LoanAgeMonths+m, remaining)
			payoff = true
		}

		accountFee := 0.0
		insurance := 0.0
		if spec.Fees != nil {
			accountFee = roundVND(spec.Fees.MonthlyAccountVND)
			if spec.IncludeInsurance {
				insurance = MonthlyInsurance(spec.Fees.Insurance, balance, spec.PropertyValue)
			}
		}

		row := ScheduleRow{
			Month:              m,
			AnnualRatePct:      rate,
			OpeningBalance:     balance,
			Interest:           interest,
			ScheduledPrincipal: scheduled,
			ExtraPrincipal:     extra,
			AccountFee:         accountFee,
			Insurance:          insurance,
			PrepaymentFee:      penalty,
			TotalPayment:       interest + scheduled + extra + accountFee + insurance + penalty,
			ClosingBalance:     balance - scheduled - extra,
			InGracePeriod:      inGrace,
			MilestonePayoff:    payoff,
		}
		if !spec.StartDate.IsZero() {
			row.Date = spec.StartDate.AddDate(0, m, 0)
		}
		rows = append(rows, row)
		balance = row.ClosingBalance
	}

	result := ScheduleResult{
		Principal:  spec.Principal,
		TermMonths: spec.TermMonths,
		Rows:       rows,
	}
	result.Totals = sumScheduleRows(rows)
	if spec.Fees != nil {
		result.Totals.Upfront = CalculateUpfrontFees(*spec.Fees, spec.Principal)
	}
	result.Totals.TotalFees = result.Totals.Upfront.Total + result.Totals.AccountFees + result.Totals.Penalties
	result.Totals.TotalPaid += result.Totals.Upfront.Total
	result.Totals.CostOfCredit = result.Totals.Interest + result.Totals.TotalFees + result.Totals.Insurance
	result.Metrics = summarizeSchedule(&result, spec.PromoMonths)
	return result
}

func sumScheduleRows(rows []ScheduleRow) ScheduleTotals {
	var t ScheduleTotals
	for _, row := range rows {
		t.Interest += row.Interest
		t.ScheduledPrincipal += row.ScheduledPrincipal
		t.ExtraPrincipal += row.ExtraPrincipal
		t.AccountFees += row.AccountFee
		t.Insurance += row.Insurance
		t.Penalties += row.PrepaymentFee
		t.TotalPaid += row.TotalPayment
	}
	return t
}

func summarizeSchedule(result *ScheduleResult, promoMonths int) ScheduleMetrics {
	var m ScheduleMetrics

	firstYearSum := 0.0
	firstYearCount := 0
	postPromoSum := 0.0
	postPromoCount := 0
	for _, row := range result.Rows {
		if row.Month <= 12 {
			firstYearSum += row.TotalPayment
			firstYearCount++
		}
		if row.Month > promoMonths {
			postPromoSum += row.TotalPayment
			postPromoCount++
		}
		if row.TotalPayment > m.MaxMonthlyPayment {
			m.MaxMonthlyPayment = row.TotalPayment
		}
		if row.ClosingBalance == 0 && m.PayoffMonth == 0 {
			m.PayoffMonth = row.Month
		}
	}
	if firstYearCount > 0 {
		m.FirstYearAvgPayment = firstYearSum / float64(firstYearCount)
	}
	if postPromoCount > 0 {
		m.PostPromoAvgPayment = postPromoSum / float64(postPromoCount)
	}

	m.APRPct, m.APRAvailable = CalculateAPR(result.Principal, result.Totals.Upfront.Total, result.Rows)
	return m
}
