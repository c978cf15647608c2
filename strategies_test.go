package main

import "testing"

func TestPurchaseStrategies_DefaultSet(t *testing.T) {
	strategies := PurchaseStrategies(testTemplate(), testLoan())

	if len(strategies) != 3 {
		t.Fatalf("expected 3 canonical strategies, got %d", len(strategies))
	}
	if strategies[0].Kind != MinimumPayment {
		t.Error("first strategy should be minimum payment")
	}
	if strategies[1].Kind != FixedExtraPrincipal {
		t.Fatal("second strategy should be fixed extra principal")
	}
	// Defaults to 1% of the principal per month.
	if strategies[1].ExtraPerMonth != 24_000_000 {
		t.Errorf("default extra %.0f, want 1%% of 2.4B = 24,000,000",
			strategies[1].ExtraPerMonth)
	}
	if strategies[2].Kind != ExitPlan {
		t.Error("third strategy should be an exit plan")
	}
}

func TestPurchaseStrategies_ExplicitExtra(t *testing.T) {
	loan := testLoan()
	loan.ExtraPerMonthVND = 15_000_000
	strategies := PurchaseStrategies(testTemplate(), loan)

	if strategies[1].ExtraPerMonth != 15_000_000 {
		t.Errorf("extra %.0f, want the configured 15,000,000", strategies[1].ExtraPerMonth)
	}
}

func TestDefaultExitStrategy(t *testing.T) {
	tpl := testTemplate()
	if s := DefaultExitStrategy(tpl); s.Milestone != ExitAtPromoEnd {
		t.Errorf("product with a promo period: milestone %v, want promo end", s.Milestone)
	}

	tpl.Rates.PromoMonths = 0
	tpl.GracePrincipalMonths = 12
	if s := DefaultExitStrategy(tpl); s.Milestone != ExitAtGraceEnd {
		t.Errorf("product with only a grace period: milestone %v, want grace end", s.Milestone)
	}

	tpl.GracePrincipalMonths = 0
	s := DefaultExitStrategy(tpl)
	if s.Milestone != ExitAtFeeThreshold || s.FeeThresholdPct != 0 {
		t.Errorf("plain product: got %v, want the first penalty-free month", s)
	}
}

func TestSimulatePurchase_ClosingCashAndLTV(t *testing.T) {
	result := SimulatePurchase(testTemplate(), testLoan(), Strategy{Kind: MinimumPayment})

	// 800M down payment plus 15M upfront fees.
	want := 800_000_000 + result.Schedule.Totals.Upfront.Total
	if result.ClosingCashNeeded != want {
		t.Errorf("closing cash %.0f, want %.0f", result.ClosingCashNeeded, want)
	}
	if result.LTVPct != 75.0 {
		t.Errorf("LTV %.2f%%, want 75.00%%", result.LTVPct)
	}
}

func TestCompareAllStrategies_Purchase(t *testing.T) {
	config := &Config{Template: *testTemplate(), Loan: testLoan()}
	result := CompareAllStrategies(config)

	if len(result.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(result.Outcomes))
	}
	for i, outcome := range result.Outcomes {
		if outcome.Purchase == nil {
			t.Fatalf("outcome %d missing its purchase result", i)
		}
		if outcome.Refinance != nil || outcome.Timing != nil {
			t.Fatalf("outcome %d carries refinance data in a purchase comparison", i)
		}
	}

	// The recommendation is the cheapest cost of credit.
	bestCost := result.Outcomes[result.BestIdx].Purchase.Schedule.Totals.CostOfCredit
	for _, outcome := range result.Outcomes {
		if outcome.Purchase.Schedule.Totals.CostOfCredit < bestCost {
			t.Errorf("recommended cost %.0f is not the minimum", bestCost)
		}
	}

	// Overpaying beats the minimum payment on lifetime interest.
	minInterest := result.Outcomes[0].Purchase.Schedule.Totals.Interest
	extraInterest := result.Outcomes[1].Purchase.Schedule.Totals.Interest
	if extraInterest >= minInterest {
		t.Errorf("overpayment interest %.0f not below minimum-payment interest %.0f",
			extraInterest, minInterest)
	}
}

func TestCompareAllStrategies_Refinance(t *testing.T) {
	config := &Config{
		Template: *testTemplate(),
		Loan:     refiLoan(),
		OldLoan:  refiOldLoan(),
	}
	result := CompareAllStrategies(config)

	if len(result.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(result.Outcomes))
	}
	if result.Outcomes[0].Refinance == nil || result.Outcomes[1].Refinance == nil {
		t.Fatal("refinance-now outcomes missing")
	}
	if result.Outcomes[2].Timing == nil {
		t.Fatal("optimal-timing outcome missing")
	}
	if result.Outcomes[0].Refinance.SwitchMonth != 0 {
		t.Error("first outcome should switch immediately")
	}
	if result.Outcomes[1].Refinance.Strategy.Kind != FixedExtraPrincipal {
		t.Error("second outcome should overpay the new loan")
	}
}

func TestSimulatePurchase_ExitPlanRetiresAtPromoEnd(t *testing.T) {
	result := SimulatePurchase(testTemplate(), testLoan(), DefaultExitStrategy(testTemplate()))

	if result.Schedule.Metrics.PayoffMonth != 24 {
		t.Errorf("payoff month %d, want the promo end at 24", result.Schedule.Metrics.PayoffMonth)
	}
	if result.Schedule.Totals.Penalties == 0 {
		t.Error("an exit inside the penalty window should incur a prepayment fee")
	}
}

func TestSimulatePurchase_RunsAreIndependent(t *testing.T) {
	tpl := testTemplate()
	loan := testLoan()

	first := SimulatePurchase(tpl, loan, Strategy{Kind: MinimumPayment})
	SimulatePurchase(tpl, loan, Strategy{Kind: FixedExtraPrincipal, ExtraPerMonth: 50_000_000})
	second := SimulatePurchase(tpl, loan, Strategy{Kind: MinimumPayment})

	if first.Schedule.Totals.Interest != second.Schedule.Totals.Interest {
		t.Error("a strategy run mutated shared state")
	}
}
