package main

// Optimal refinance timing search.
//
// Waiting to refinance trades extra months at the old rate against a lower
// prepayment fee tier. The candidate space is small (a few dozen months), so
// every delay is evaluated with a full comparison and the best is picked by
// the configured objective. Only candidates with a strictly positive net
// saving qualify; when none qualify, the result falls back to the
// refinance-now comparison with a flag the caller can branch on.

// DefaultMaxDelayMonths caps the candidate switch months considered
const DefaultMaxDelayMonths = 36

// TimingSearchResult is the outcome of an optimal-timing search
type TimingSearchResult struct {
	Objective    Objective
	Evaluated    int // Number of candidate months compared
	Best         RefinanceResult
	OptimalMonth int
	Fallback     bool // True when no candidate produced a positive saving
}

// FindOptimalTiming evaluates delaying the switch by 0..maxDelay months and
// returns the best candidate under the objective.
func FindOptimalTiming(tpl *ProductTemplate, loan LoanRequest, old *OldLoanConfig, strategy Strategy, objective Objective, maxDelay int) TimingSearchResult {
	if maxDelay <= 0 || maxDelay > DefaultMaxDelayMonths {
		maxDelay = DefaultMaxDelayMonths
	}
	if limit := old.RemainingMonths - 1; maxDelay > limit {
		maxDelay = limit
	}
	if maxDelay < 0 {
		maxDelay = 0
	}

	result := TimingSearchResult{Objective: objective}

	var candidates []RefinanceResult
	for delay := 0; delay <= maxDelay; delay++ {
		candidate := CompareRefinance(tpl, loan, old, strategy, delay)
		result.Evaluated++
		if delay == 0 {
			result.Best = candidate // fallback seed
		}
		if candidate.NetSaving > 0 {
			candidates = append(candidates, candidate)
		}
	}

	if len(candidates) == 0 {
		result.Fallback = true
		result.OptimalMonth = 0
		return result
	}

	best := pickByObjective(candidates, objective)
	result.Best = best
	result.OptimalMonth = best.SwitchMonth
	return result
}

func pickByObjective(candidates []RefinanceResult, objective Objective) RefinanceResult {
	if objective == MinBreakEven {
		if best, ok := earliestBreakEven(candidates); ok {
			return best
		}
		// No candidate ever breaks even; fall through to saving.
	}
	return highestSaving(candidates)
}

// highestSaving returns the candidate with the largest net saving,
// preferring the earlier switch month on ties.
func highestSaving(candidates []RefinanceResult) RefinanceResult {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.NetSaving > best.NetSaving {
			best = c
		}
	}
	return best
}

// earliestBreakEven returns the candidate whose break-even arrives first,
// counting from today (the switch delay is part of the wait). Ties go to
// the higher saving.
func earliestBreakEven(candidates []RefinanceResult) (RefinanceResult, bool) {
	var best RefinanceResult
	found := false
	for _, c := range candidates {
		if !c.HasBreakEven {
			continue
		}
		if !found || c.BreakEvenMonth < best.BreakEvenMonth ||
			(c.BreakEvenMonth == best.BreakEvenMonth && c.NetSaving > best.NetSaving) {
			best = c
			found = true
		}
	}
	return best, found
}
