package main

import "testing"

// Optimal-timing search tests. The search space is tiny, so expected
// winners are recomputed with brute force over the same comparisons and
// the search result must agree.

func TestOptimalTiming_EvaluatesFullWindow(t *testing.T) {
	result := FindOptimalTiming(testTemplate(), refiLoan(), refiOldLoan(),
		Strategy{Kind: MinimumPayment}, MaxNetSaving, 12)

	if result.Evaluated != 13 {
		t.Errorf("evaluated %d candidates, want delays 0..12 = 13", result.Evaluated)
	}
	if result.Fallback {
		t.Error("a profitable refinance should not fall back")
	}
	if result.OptimalMonth != result.Best.SwitchMonth {
		t.Errorf("optimal month %d disagrees with the best candidate's switch month %d",
			result.OptimalMonth, result.Best.SwitchMonth)
	}
	if result.Best.NetSaving <= 0 {
		t.Errorf("best candidate saving %.0f, want positive", result.Best.NetSaving)
	}
}

func TestOptimalTiming_MaxSavingMatchesBruteForce(t *testing.T) {
	tpl := testTemplate()
	loan := refiLoan()
	old := refiOldLoan()
	strategy := Strategy{Kind: MinimumPayment}
	maxDelay := 12

	result := FindOptimalTiming(tpl, loan, old, strategy, MaxNetSaving, maxDelay)

	bestSaving := 0.0
	for delay := 0; delay <= maxDelay; delay++ {
		candidate := CompareRefinance(tpl, loan, old, strategy, delay)
		if candidate.NetSaving > bestSaving {
			bestSaving = candidate.NetSaving
		}
	}
	if result.Best.NetSaving != bestSaving {
		t.Errorf("search found saving %.0f, brute force found %.0f",
			result.Best.NetSaving, bestSaving)
	}
}

func TestOptimalTiming_MinBreakEvenMatchesBruteForce(t *testing.T) {
	tpl := testTemplate()
	loan := refiLoan()
	old := refiOldLoan()
	strategy := Strategy{Kind: MinimumPayment}
	maxDelay := 12

	result := FindOptimalTiming(tpl, loan, old, strategy, MinBreakEven, maxDelay)

	earliest := 0
	for delay := 0; delay <= maxDelay; delay++ {
		candidate := CompareRefinance(tpl, loan, old, strategy, delay)
		if candidate.NetSaving <= 0 || !candidate.HasBreakEven {
			continue
		}
		if earliest == 0 || candidate.BreakEvenMonth < earliest {
			earliest = candidate.BreakEvenMonth
		}
	}
	if earliest == 0 {
		t.Fatal("no qualifying candidate in the brute-force scan")
	}
	if !result.Best.HasBreakEven || result.Best.BreakEvenMonth != earliest {
		t.Errorf("search break-even month %d, brute force found %d",
			result.Best.BreakEvenMonth, earliest)
	}
}

func TestOptimalTiming_FallbackWhenNothingSaves(t *testing.T) {
	loan := LoanRequest{TermMonths: 120}
	result := FindOptimalTiming(losingTemplate(), loan, cheapOldLoan(),
		Strategy{Kind: MinimumPayment}, MaxNetSaving, 12)

	if !result.Fallback {
		t.Fatal("expected the fallback flag when no candidate saves money")
	}
	if result.OptimalMonth != 0 {
		t.Errorf("fallback optimal month %d, want 0", result.OptimalMonth)
	}
	if result.Best.SwitchMonth != 0 {
		t.Errorf("fallback should carry the refinance-now comparison, got switch %d",
			result.Best.SwitchMonth)
	}
	if result.Best.NetSaving >= 0 {
		t.Errorf("fallback saving %.0f should still be reported as negative",
			result.Best.NetSaving)
	}
}

func TestOptimalTiming_WindowClampedToRemainingTerm(t *testing.T) {
	old := refiOldLoan()
	old.RemainingMonths = 10
	result := FindOptimalTiming(testTemplate(), refiLoan(), old,
		Strategy{Kind: MinimumPayment}, MaxNetSaving, 36)

	// Delays are capped at remaining - 1, so 0..9 are evaluated.
	if result.Evaluated != 10 {
		t.Errorf("evaluated %d candidates, want 10", result.Evaluated)
	}
}

func TestOptimalTiming_DefaultWindow(t *testing.T) {
	result := FindOptimalTiming(testTemplate(), refiLoan(), refiOldLoan(),
		Strategy{Kind: MinimumPayment}, MaxNetSaving, 0)

	if result.Evaluated != DefaultMaxDelayMonths+1 {
		t.Errorf("evaluated %d candidates, want the default window %d",
			result.Evaluated, DefaultMaxDelayMonths+1)
	}
}
