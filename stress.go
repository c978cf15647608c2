package main

// Rate stress scenarios.
//
// The floating rate after the promotional period is the main uncertainty in
// a Vietnamese mortgage. Each scenario re-runs the schedule with the
// floating rate bumped by a number of percentage points; the promotional
// rate is contractually fixed and never bumped.

// DefaultStressBumpsPct are the standard floating-rate shocks
var DefaultStressBumpsPct = []float64{0, 2, 4}

// StressScenario is one bumped-rate run of the configured loan
type StressScenario struct {
	BumpPct     float64
	FloatingPct float64 // Resulting post-promo annual rate
	Schedule    ScheduleResult
}

// RunStressScenarios simulates the loan under each floating-rate bump.
// A nil bumps slice runs the default {0, +2, +4} set.
func RunStressScenarios(tpl *ProductTemplate, loan LoanRequest, strategy Strategy, bumps []float64) []StressScenario {
	if bumps == nil {
		bumps = DefaultStressBumpsPct
	}
	scenarios := make([]StressScenario, 0, len(bumps))
	for _, bump := range bumps {
		stressed := loan
		stressed.StressBumpPct = bump
		scenarios = append(scenarios, StressScenario{
			BumpPct:     bump,
			FloatingPct: FloatingRatePct(tpl.Rates, bump),
			Schedule:    GenerateSchedule(NewPurchaseSpec(tpl, stressed, strategy)),
		})
	}
	return scenarios
}
