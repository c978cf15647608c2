package main

// Refinance comparison.
//
// The baseline is the old loan left untouched for its remaining term. The
// refinance path pays the old loan normally until the switch month, settles
// the remaining balance (incurring the old bank's prepayment fee at the
// loan's absolute age), then runs a new loan on the candidate product with
// its own upfront fees. Net saving is the lifetime cost difference; the
// break-even month is where the refinance cumulative cost curve first dips
// to or below the baseline curve after the switch.

// RefinanceCosts itemizes the money flows behind a comparison
type RefinanceCosts struct {
	PaidBeforeSwitch float64 // Old-loan payments made before switching
	PayoffBalance    float64 // Old balance settled at the switch month
	OldPrepaymentFee float64
	NewUpfrontFees   float64
	NewLoanPaid      float64 // Everything paid on the new loan, upfront included
	BaselinePaid     float64 // Everything paid when keeping the old loan
}

// RefinanceResult is the outcome of comparing one switch month
type RefinanceResult struct {
	SwitchMonth    int // Months of delay before switching; 0 = refinance now
	Strategy       Strategy
	Baseline       ScheduleResult
	NewLoan        ScheduleResult
	NewPrincipal   float64
	Costs          RefinanceCosts
	NetSaving      float64 // Negative when refinancing loses money
	BreakEvenMonth int
	HasBreakEven   bool
}

// CompareRefinance evaluates switching from the old loan to the template's
// product after switchMonth more payments, repaying the new loan under the
// given strategy.
func CompareRefinance(tpl *ProductTemplate, loan LoanRequest, old *OldLoanConfig, strategy Strategy, switchMonth int) RefinanceResult {
	baseline := GenerateSchedule(ScheduleSpec{
		Principal:  old.BalanceVND,
		TermMonths: old.RemainingMonths,
		Timeline:   FlatRateTimeline(old.AnnualRatePct, old.RemainingMonths),
		Method:     old.Method(),
		Strategy:   Strategy{Kind: MinimumPayment},
	})

	if switchMonth < 0 {
		switchMonth = 0
	}

	paidBefore := 0.0
	payoffBalance := old.BalanceVND
	for _, row := range baseline.Rows {
		if row.Month > switchMonth {
			break
		}
		paidBefore += row.TotalPayment
		payoffBalance = row.ClosingBalance
	}

	prepayFee := PrepaymentFee(old.PrepaymentTiers, old.AgeMonths+switchMonth, payoffBalance)
	newPrincipal := payoffBalance + loan.CashOutVND

	newLoan := GenerateSchedule(ScheduleSpec{
		Principal:            newPrincipal,
		TermMonths:           loan.TermMonths,
		Timeline:             BuildRateTimeline(tpl.Rates, loan.StressBumpPct, loan.TermMonths),
		Method:               tpl.Method(),
		GraceMonths:          tpl.GracePrincipalMonths,
		PromoMonths:          tpl.Rates.PromoMonths,
		ResetMonths:          tpl.Rates.ResetFrequencyMonths,
		Fees:                 &tpl.Fees,
		PropertyValue:        loan.PropertyValueVND,
		IncludeInsurance:     loan.IncludeInsurance,
		MinPartialPrepayment: tpl.MinPartialPrepaymentVND,
		Strategy:             strategy,
		StartDate:            monthsAfter(loan.ParsedStartDate(), switchMonth),
	})

	result := RefinanceResult{
		SwitchMonth:  switchMonth,
		Strategy:     strategy,
		Baseline:     baseline,
		NewLoan:      newLoan,
		NewPrincipal: newPrincipal,
		Costs: RefinanceCosts{
			PaidBeforeSwitch: paidBefore,
			PayoffBalance:    payoffBalance,
			OldPrepaymentFee: prepayFee,
			NewUpfrontFees:   newLoan.Totals.Upfront.Total,
			NewLoanPaid:      newLoan.Totals.TotalPaid,
			BaselinePaid:     baseline.Totals.TotalPaid,
		},
	}
	result.NetSaving = result.Costs.BaselinePaid -
		(paidBefore + prepayFee + result.Costs.NewLoanPaid)
	result.BreakEvenMonth, result.HasBreakEven = findBreakEven(&result)
	return result
}

// findBreakEven walks the cumulative cost curves of both paths and returns
// the first month after the switch where the refinance path is no longer
// behind. Months before the switch are identical by construction and are
// not eligible.
func findBreakEven(r *RefinanceResult) (int, bool) {
	horizon := len(r.Baseline.Rows)
	if h := r.SwitchMonth + len(r.NewLoan.Rows); h > horizon {
		horizon = h
	}

	cumBaseline := 0.0
	cumRefinance := 0.0
	switchingCost := r.Costs.OldPrepaymentFee + r.Costs.NewUpfrontFees
	if r.SwitchMonth == 0 {
		cumRefinance = switchingCost
	}

	for m := 1; m <= horizon; m++ {
		cumBaseline += paymentAt(&r.Baseline, m)
		if m <= r.SwitchMonth {
			cumRefinance += paymentAt(&r.Baseline, m)
			if m == r.SwitchMonth {
				cumRefinance += switchingCost
			}
			continue
		}
		cumRefinance += paymentAt(&r.NewLoan, m-r.SwitchMonth)
		if cumRefinance <= cumBaseline {
			return m, true
		}
	}
	return 0, false
}

// paymentAt returns the payment in a schedule's 1-indexed month, zero once
// the loan is paid off.
func paymentAt(s *ScheduleResult, month int) float64 {
	if month < 1 || month > len(s.Rows) {
		return 0
	}
	return s.Rows[month-1].TotalPayment
}
