package main

import (
	"fmt"
	"math"
	"time"
)

// RepaymentMethod selects how scheduled principal is computed each month
type RepaymentMethod int

const (
	Annuity        RepaymentMethod = iota // Constant payment while the rate holds
	EqualPrincipal                        // Constant principal, declining payment
)

func (m RepaymentMethod) String() string {
	switch m {
	case Annuity:
		return "Annuity"
	case EqualPrincipal:
		return "Equal Principal"
	default:
		return "Unknown"
	}
}

// StrategyKind represents a repayment strategy family
type StrategyKind int

const (
	MinimumPayment      StrategyKind = iota // Pay only what the bank requires
	FixedExtraPrincipal                     // Fixed extra principal every month
	ExitPlan                                // Full payoff at a milestone month
)

// ExitMilestone selects when an ExitPlan strategy retires the loan
type ExitMilestone int

const (
	ExitAtPromoEnd     ExitMilestone = iota // Last month of the promotional rate
	ExitAtGraceEnd                          // Last month of the principal grace period
	ExitAtFeeThreshold                      // First month the prepayment fee drops to a threshold
	ExitAtMonth                             // Explicit month chosen by the caller
)

func (e ExitMilestone) String() string {
	switch e {
	case ExitAtPromoEnd:
		return "Promo End"
	case ExitAtGraceEnd:
		return "Grace End"
	case ExitAtFeeThreshold:
		return "Fee Threshold"
	case ExitAtMonth:
		return "Fixed Month"
	default:
		return "Unknown"
	}
}

// Objective represents what the timing search optimizes for
type Objective int

const (
	MaxNetSaving Objective = iota // Maximize lifetime saving vs staying put
	MinBreakEven                  // Reach the break-even month as early as possible
)

func (o Objective) String() string {
	switch o {
	case MaxNetSaving:
		return "Max Net Saving"
	case MinBreakEven:
		return "Min Break-Even"
	default:
		return "Unknown"
	}
}

// Strategy is a repayment strategy. Kind selects which of the other fields
// are meaningful: ExtraPerMonth for FixedExtraPrincipal, Milestone (plus
// ExitMonth or FeeThresholdPct) for ExitPlan.
type Strategy struct {
	Kind            StrategyKind
	ExtraPerMonth   float64       // VND added to principal each month
	Milestone       ExitMilestone // When an ExitPlan pays off
	ExitMonth       int           // Explicit payoff month for ExitAtMonth
	FeeThresholdPct float64       // Fee level that triggers ExitAtFeeThreshold
}

func (s Strategy) String() string {
	switch s.Kind {
	case MinimumPayment:
		return "Minimum Payment"
	case FixedExtraPrincipal:
		return fmt.Sprintf("Extra %s/month", FormatMoney(s.ExtraPerMonth))
	case ExitPlan:
		switch s.Milestone {
		case ExitAtMonth:
			return fmt.Sprintf("Exit at month %d", s.ExitMonth)
		case ExitAtFeeThreshold:
			return fmt.Sprintf("Exit when fee <= %.1f%%", s.FeeThresholdPct)
		default:
			return fmt.Sprintf("Exit at %s", s.Milestone)
		}
	default:
		return "Unknown"
	}
}

func (s Strategy) ShortName() string {
	switch s.Kind {
	case MinimumPayment:
		return "Minimum"
	case FixedExtraPrincipal:
		return "Extra"
	case ExitPlan:
		switch s.Milestone {
		case ExitAtPromoEnd:
			return "Exit/Promo"
		case ExitAtGraceEnd:
			return "Exit/Grace"
		case ExitAtFeeThreshold:
			return "Exit/Fee"
		default:
			return "Exit/Month"
		}
	default:
		return "Unknown"
	}
}

// RatePoint is the annual rate applied in one month of the loan.
// Months are 1-indexed; rates are percent per year (8.5 = 8.5%).
type RatePoint struct {
	Month         int
	AnnualRatePct float64
}

// ScheduleRow is one month of an amortization schedule.
// All monetary values are whole VND, rounded once when computed.
type ScheduleRow struct {
	Month              int
	Date               time.Time // Zero when no start date was configured
	AnnualRatePct      float64
	OpeningBalance     float64
	Interest           float64
	ScheduledPrincipal float64
	ExtraPrincipal     float64
	AccountFee         float64
	Insurance          float64
	PrepaymentFee      float64 // Penalty charged on a milestone payoff
	TotalPayment       float64
	ClosingBalance     float64
	InGracePeriod      bool
	MilestonePayoff    bool // True on the row where an ExitPlan retires the loan
}

// UpfrontFees breaks down the fees due at disbursement
type UpfrontFees struct {
	Origination  float64
	Appraisal    float64
	Disbursement float64
	Total        float64
}

// ScheduleTotals aggregates a schedule. Derived strictly from the row
// sequence plus the upfront fee breakdown, never computed independently.
type ScheduleTotals struct {
	Interest           float64
	ScheduledPrincipal float64
	ExtraPrincipal     float64
	AccountFees        float64
	Insurance          float64
	Penalties          float64
	Upfront            UpfrontFees
	TotalFees          float64 // Upfront + account fees + penalties
	TotalPaid          float64 // All row payments plus upfront fees
	CostOfCredit       float64 // Interest + TotalFees + Insurance
}

// ScheduleMetrics summarizes a schedule for comparison output
type ScheduleMetrics struct {
	FirstYearAvgPayment float64
	PostPromoAvgPayment float64
	MaxMonthlyPayment   float64
	PayoffMonth         int // Month the balance reached zero, 0 if it never did
	APRPct              float64
	APRAvailable        bool
}

// ScheduleResult is a complete simulated schedule
type ScheduleResult struct {
	Principal  float64
	TermMonths int
	Rows       []ScheduleRow
	Totals     ScheduleTotals
	Metrics    ScheduleMetrics
}

// FinalBalance returns the closing balance of the last generated row
func (r *ScheduleResult) FinalBalance() float64 {
	if len(r.Rows) == 0 {
		return r.Principal
	}
	return r.Rows[len(r.Rows)-1].ClosingBalance
}

// PaidOff reports whether the schedule retired the full principal
func (r *ScheduleResult) PaidOff() bool {
	return len(r.Rows) > 0 && r.FinalBalance() == 0
}

// roundVND rounds to whole VND. Every computed monetary value passes
// through here exactly once, before it is summed into anything else.
func roundVND(amount float64) float64 {
	return math.Round(amount)
}
