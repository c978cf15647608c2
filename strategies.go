package main

// Strategy engine.
//
// For a purchase, three canonical strategies are compared: minimum payment,
// a fixed extra-principal overpayment, and a milestone exit plan. For a
// refinance against an existing loan, the comparison covers switching now
// with minimum payments, switching now with extra principal, and the
// optimal-timing search. Every simulation is stateless; a strategy run
// never mutates the config or another run's results.

// PurchaseResult is one strategy applied to a new purchase loan
type PurchaseResult struct {
	Strategy          Strategy
	Schedule          ScheduleResult
	ClosingCashNeeded float64 // Down payment plus upfront fees
	LTVPct            float64
}

// StrategyOutcome is one entry of a multi-strategy comparison. Exactly one
// of Purchase, Refinance or Timing is set.
type StrategyOutcome struct {
	Strategy  Strategy
	Purchase  *PurchaseResult
	Refinance *RefinanceResult
	Timing    *TimingSearchResult
}

// ComparisonResult collects all strategy outcomes plus the recommended index
type ComparisonResult struct {
	Outcomes []StrategyOutcome
	BestIdx  int
}

// DefaultExitStrategy picks the exit milestone that fits the product: the
// promo end when there is a promotional period, the grace end when only a
// grace period exists, otherwise the first penalty-free month.
func DefaultExitStrategy(tpl *ProductTemplate) Strategy {
	switch {
	case tpl.Rates.PromoMonths > 0:
		return Strategy{Kind: ExitPlan, Milestone: ExitAtPromoEnd}
	case tpl.GracePrincipalMonths > 0:
		return Strategy{Kind: ExitPlan, Milestone: ExitAtGraceEnd}
	default:
		return Strategy{Kind: ExitPlan, Milestone: ExitAtFeeThreshold, FeeThresholdPct: 0}
	}
}

// PurchaseStrategies returns the canonical strategy set for a purchase.
// The extra-principal amount defaults to 1% of the principal per month when
// the loan request does not specify one.
func PurchaseStrategies(tpl *ProductTemplate, loan LoanRequest) []Strategy {
	extra := loan.ExtraPerMonthVND
	if extra <= 0 {
		extra = roundVND(loan.PrincipalVND * 0.01)
	}
	return []Strategy{
		{Kind: MinimumPayment},
		{Kind: FixedExtraPrincipal, ExtraPerMonth: extra},
		DefaultExitStrategy(tpl),
	}
}

// NewPurchaseSpec builds the schedule spec for a purchase loan on a product
func NewPurchaseSpec(tpl *ProductTemplate, loan LoanRequest, strategy Strategy) ScheduleSpec {
	return ScheduleSpec{
		Principal:            loan.PrincipalVND,
		TermMonths:           loan.TermMonths,
		HorizonMonths:        loan.HorizonMonths,
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
		StartDate:            loan.ParsedStartDate(),
	}
}

// SimulatePurchase runs one purchase strategy and derives the cash needed
// at closing and the loan-to-value ratio.
func SimulatePurchase(tpl *ProductTemplate, loan LoanRequest, strategy Strategy) PurchaseResult {
	schedule := GenerateSchedule(NewPurchaseSpec(tpl, loan, strategy))

	downPayment := loan.PropertyValueVND - loan.PrincipalVND
	if downPayment < 0 {
		downPayment = 0
	}
	ltv := 0.0
	if loan.PropertyValueVND > 0 {
		ltv = loan.PrincipalVND / loan.PropertyValueVND * 100
	}

	return PurchaseResult{
		Strategy:          strategy,
		Schedule:          schedule,
		ClosingCashNeeded: downPayment + schedule.Totals.Upfront.Total,
		LTVPct:            ltv,
	}
}

// CompareAllStrategies runs the full strategy set for the configured loan.
// With an old loan configured the comparison is a refinance; otherwise a
// purchase.
func CompareAllStrategies(config *Config) ComparisonResult {
	if config.OldLoan != nil {
		return compareRefinanceStrategies(config)
	}
	return comparePurchaseStrategies(config)
}

func comparePurchaseStrategies(config *Config) ComparisonResult {
	var result ComparisonResult
	for _, strategy := range PurchaseStrategies(&config.Template, config.Loan) {
		purchase := SimulatePurchase(&config.Template, config.Loan, strategy)
		result.Outcomes = append(result.Outcomes, StrategyOutcome{
			Strategy: strategy,
			Purchase: &purchase,
		})
	}

	// Cheapest total cost of credit wins.
	result.BestIdx = 0
	for i, outcome := range result.Outcomes {
		if outcome.Purchase.Schedule.Totals.CostOfCredit <
			result.Outcomes[result.BestIdx].Purchase.Schedule.Totals.CostOfCredit {
			result.BestIdx = i
		}
	}
	return result
}

func compareRefinanceStrategies(config *Config) ComparisonResult {
	tpl := &config.Template
	loan := config.Loan
	old := config.OldLoan

	extra := loan.ExtraPerMonthVND
	if extra <= 0 {
		extra = roundVND(old.BalanceVND * 0.01)
	}
	minimum := Strategy{Kind: MinimumPayment}
	overpay := Strategy{Kind: FixedExtraPrincipal, ExtraPerMonth: extra}

	nowMinimum := CompareRefinance(tpl, loan, old, minimum, 0)
	nowOverpay := CompareRefinance(tpl, loan, old, overpay, 0)
	timing := FindOptimalTiming(tpl, loan, old, minimum, config.Search.ParsedObjective(), config.Search.MaxDelayMonths)

	result := ComparisonResult{
		Outcomes: []StrategyOutcome{
			{Strategy: minimum, Refinance: &nowMinimum},
			{Strategy: overpay, Refinance: &nowOverpay},
			{Strategy: minimum, Timing: &timing},
		},
	}

	// Highest net saving wins.
	result.BestIdx = 0
	best := result.Outcomes[0].Refinance.NetSaving
	for i, outcome := range result.Outcomes {
		saving := 0.0
		switch {
		case outcome.Refinance != nil:
			saving = outcome.Refinance.NetSaving
		case outcome.Timing != nil:
			saving = outcome.Timing.Best.NetSaving
		}
		if saving > best {
			best = saving
			result.BestIdx = i
		}
	}
	return result
}
