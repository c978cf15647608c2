package main

import "testing"

func TestAffordability_PaymentCapBinds(t *testing.T) {
	tpl := testTemplate()
	loan := testLoan()
	loan.PropertyValueVND = 0 // no LTV ceiling
	cap := 20_000_000.0

	result := MaxAffordablePrincipal(tpl, loan, cap)

	if !result.Converged {
		t.Fatal("search did not converge")
	}
	if result.MaxPrincipal <= 0 {
		t.Fatal("no affordable principal found for a 20M/month budget")
	}
	if result.FirstYearAvgPayment > cap {
		t.Errorf("first-year payment %.0f exceeds the %.0f cap",
			result.FirstYearAvgPayment, cap)
	}
	if result.LTVLimited {
		t.Error("no property value was set, so the LTV cannot be the binding limit")
	}

	// The result is maximal: 1% more principal blows the budget.
	bigger := loan
	bigger.PrincipalVND = result.MaxPrincipal * 1.01
	over := GenerateSchedule(NewPurchaseSpec(tpl, bigger, Strategy{Kind: MinimumPayment}))
	if over.Metrics.FirstYearAvgPayment <= cap {
		t.Errorf("principal %.0f still fits the cap; the search stopped early",
			bigger.PrincipalVND)
	}
}

func TestAffordability_LTVCapBinds(t *testing.T) {
	tpl := testTemplate() // max LTV 75%
	loan := testLoan()
	loan.PropertyValueVND = 1_000_000_000

	// A budget far beyond any payment this loan size could need.
	result := MaxAffordablePrincipal(tpl, loan, 1_000_000_000)

	if !result.LTVLimited {
		t.Fatal("expected the LTV cap to bind under an unlimited budget")
	}
	if result.MaxPrincipal != 750_000_000 {
		t.Errorf("max principal %.0f, want 75%% of the 1B property", result.MaxPrincipal)
	}
	if !result.Converged {
		t.Error("the early LTV exit should report convergence")
	}
}

func TestAffordability_ZeroCap(t *testing.T) {
	result := MaxAffordablePrincipal(testTemplate(), testLoan(), 0)
	if result.MaxPrincipal != 0 || result.Converged {
		t.Errorf("zero cap returned principal %.0f (converged=%v), want an empty result",
			result.MaxPrincipal, result.Converged)
	}
}

func TestAffordability_ScalesWithBudget(t *testing.T) {
	tpl := testTemplate()
	loan := testLoan()
	loan.PropertyValueVND = 0

	small := MaxAffordablePrincipal(tpl, loan, 15_000_000)
	large := MaxAffordablePrincipal(tpl, loan, 30_000_000)

	if large.MaxPrincipal <= small.MaxPrincipal {
		t.Errorf("doubling the budget did not raise the ceiling: %.0f vs %.0f",
			large.MaxPrincipal, small.MaxPrincipal)
	}
}
