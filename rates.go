package main

// Rate timeline construction.
//
// Vietnamese mortgage products quote a fixed promotional rate for the first
// promo_months, then float at reference + margin. A stress bump widens the
// floating rate only; the promotional rate is contractually fixed.

// FloatingRatePct returns the post-promo annual rate under a stress bump
func FloatingRatePct(rs RateScheduleConfig, stressBumpPct float64) float64 {
	return rs.ReferenceRatePct + rs.MarginPct + stressBumpPct
}

// BuildRateTimeline expands a rate schedule into one RatePoint per month,
// 1-indexed, covering months 1..months.
func BuildRateTimeline(rs RateScheduleConfig, stressBumpPct float64, months int) []RatePoint {
	timeline := make([]RatePoint, 0, months)
	floating := FloatingRatePct(rs, stressBumpPct)
	for m := 1; m <= months; m++ {
		rate := floating
		if m <= rs.PromoMonths {
			rate = rs.PromoRatePct
		}
		timeline = append(timeline, RatePoint{Month: m, AnnualRatePct: rate})
	}
	return timeline
}

// FlatRateTimeline builds a constant-rate timeline, used for loans that are
// already past any promotional period (the old loan in a refinance).
func FlatRateTimeline(annualRatePct float64, months int) []RatePoint {
	timeline := make([]RatePoint, 0, months)
	for m := 1; m <= months; m++ {
		timeline = append(timeline, RatePoint{Month: m, AnnualRatePct: annualRatePct})
	}
	return timeline
}

// RateForMonth looks up the annual rate for a 1-indexed month.
// Months beyond the timeline hold the last known rate.
func RateForMonth(timeline []RatePoint, month int) float64 {
	if len(timeline) == 0 {
		return 0
	}
	if month < 1 {
		month = 1
	}
	if month > len(timeline) {
		month = len(timeline)
	}
	return timeline[month-1].AnnualRatePct
}

// monthlyRate converts an annual percent rate to a monthly decimal rate.
// Rates stay in percent everywhere else; this is the single conversion point.
func monthlyRate(annualRatePct float64) float64 {
	return annualRatePct / 100.0 / 12.0
}
