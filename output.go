package main

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney formats a VND amount compactly (1.25B ₫, 850.0M ₫, 50k ₫)
func FormatMoney(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	switch {
	case amount >= 1e9:
		return fmt.Sprintf("%s%.2fB ₫", sign, amount/1e9)
	case amount >= 1e6:
		return fmt.Sprintf("%s%.1fM ₫", sign, amount/1e6)
	case amount >= 1e3:
		return fmt.Sprintf("%s%.0fk ₫", sign, amount/1e3)
	default:
		return fmt.Sprintf("%s%.0f ₫", sign, amount)
	}
}

// FormatMoneyFull formats a VND amount with thousands separators
func FormatMoneyFull(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatFloat(amount, 'f', 0, 64)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String() + " ₫"
}

// PrintHeader prints the configuration summary
func PrintHeader(config *Config) {
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                 MORTGAGE AMORTIZATION & REFINANCE FORECAST                   ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("──────────────")

	tpl := &config.Template
	fmt.Printf("  Product: %s (%s), %s\n", tpl.Name, tpl.Bank, tpl.Method())
	fmt.Printf("  Rates: %.2f%% fixed for %d months, then %.2f%% + %.2f%% floating",
		tpl.Rates.PromoRatePct, tpl.Rates.PromoMonths,
		tpl.Rates.ReferenceRatePct, tpl.Rates.MarginPct)
	if tpl.Rates.ResetFrequencyMonths > 0 {
		fmt.Printf(" (reset every %d months)", tpl.Rates.ResetFrequencyMonths)
	}
	fmt.Println()
	if tpl.GracePrincipalMonths > 0 {
		fmt.Printf("  Grace: no scheduled principal for the first %d months\n", tpl.GracePrincipalMonths)
	}
	if len(tpl.Fees.PrepaymentTiers) > 0 {
		var bands []string
		for _, t := range tpl.Fees.PrepaymentTiers {
			if t.ToMonth == 0 {
				bands = append(bands, fmt.Sprintf("%d+: %.1f%%", t.FromMonth, t.FeePct))
			} else {
				bands = append(bands, fmt.Sprintf("%d-%d: %.1f%%", t.FromMonth, t.ToMonth, t.FeePct))
			}
		}
		fmt.Printf("  Prepayment fee: %s\n", strings.Join(bands, ", "))
	}

	loan := config.Loan
	fmt.Printf("  Loan: %s over %d months", FormatMoney(loan.PrincipalVND), loan.TermMonths)
	if loan.PropertyValueVND > 0 {
		fmt.Printf(" on a %s property (LTV %.1f%%)",
			FormatMoney(loan.PropertyValueVND), loan.PrincipalVND/loan.PropertyValueVND*100)
	}
	fmt.Println()
	if loan.StressBumpPct > 0 {
		fmt.Printf("  Stress: floating rate bumped by %.1f points\n", loan.StressBumpPct)
	}

	if old := config.OldLoan; old != nil {
		fmt.Printf("  Old loan: %s at %.2f%%, %d months left (age %d months)\n",
			FormatMoney(old.BalanceVND), old.AnnualRatePct, old.RemainingMonths, old.AgeMonths)
	}
	fmt.Println()
}

// PrintSchedule prints the amortization table. maxRows 0 prints every row;
// otherwise the first maxRows rows plus every December and the final row.
func PrintSchedule(result *ScheduleResult, maxRows int) {
	fmt.Printf("%-6s %6s │ %14s %14s %14s │ %12s │ %14s %14s\n",
		"Month", "Rate", "Opening", "Interest", "Principal", "Extra", "Payment", "Closing")
	fmt.Println(strings.Repeat("─", 120))

	last := len(result.Rows) - 1
	for i, row := range result.Rows {
		if maxRows > 0 && i >= maxRows && i != last && row.Month%12 != 0 {
			continue
		}
		marker := " "
		if row.MilestonePayoff {
			marker = "*"
		} else if row.InGracePeriod {
			marker = "g"
		}
		fmt.Printf("%-5d%s %5.2f%% │ %14s %14s %14s │ %12s │ %14s %14s\n",
			row.Month, marker, row.AnnualRatePct,
			FormatMoney(row.OpeningBalance),
			FormatMoney(row.Interest),
			FormatMoney(row.ScheduledPrincipal),
			FormatMoney(row.ExtraPrincipal),
			FormatMoney(row.TotalPayment),
			FormatMoney(row.ClosingBalance))
	}
	fmt.Println(strings.Repeat("─", 120))
	fmt.Println("  g = grace period, * = milestone payoff")
	fmt.Println()
}

// PrintScheduleSummary prints totals and metrics for one schedule
func PrintScheduleSummary(result *ScheduleResult) {
	t := result.Totals
	m := result.Metrics

	fmt.Println("Summary:")
	fmt.Printf("  Principal:          %s\n", FormatMoneyFull(result.Principal))
	fmt.Printf("  Total Interest:     %s\n", FormatMoneyFull(t.Interest))
	fmt.Printf("  Upfront Fees:       %s\n", FormatMoneyFull(t.Upfront.Total))
	fmt.Printf("  Recurring Fees:     %s\n", FormatMoneyFull(t.AccountFees))
	if t.Insurance > 0 {
		fmt.Printf("  Insurance:          %s\n", FormatMoneyFull(t.Insurance))
	}
	if t.Penalties > 0 {
		fmt.Printf("  Prepayment Fees:    %s\n", FormatMoneyFull(t.Penalties))
	}
	fmt.Printf("  Cost of Credit:     %s\n", FormatMoneyFull(t.CostOfCredit))
	fmt.Printf("  Total Paid:         %s\n", FormatMoneyFull(t.TotalPaid))
	fmt.Println()
	fmt.Printf("  First-Year Payment: %s/month (avg)\n", FormatMoney(m.FirstYearAvgPayment))
	if m.PostPromoAvgPayment > 0 {
		fmt.Printf("  Post-Promo Payment: %s/month (avg)\n", FormatMoney(m.PostPromoAvgPayment))
	}
	fmt.Printf("  Peak Payment:       %s/month\n", FormatMoney(m.MaxMonthlyPayment))
	if m.PayoffMonth > 0 && m.PayoffMonth < result.TermMonths {
		fmt.Printf("  Paid off in month %d (%d months early)\n",
			m.PayoffMonth, result.TermMonths-m.PayoffMonth)
	}
	if m.APRAvailable {
		fmt.Printf("  Effective APR:      %.2f%%\n", m.APRPct)
	} else {
		fmt.Println("  Effective APR:      unavailable")
	}
	fmt.Println()
}

// PrintComparison prints a side-by-side strategy comparison
func PrintComparison(result ComparisonResult) {
	fmt.Println()
	fmt.Println("╔════════════════════════════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                                    STRATEGY COMPARISON                                             ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()

	if len(result.Outcomes) == 0 {
		return
	}
	if result.Outcomes[0].Purchase != nil {
		printPurchaseComparison(result)
	} else {
		printRefinanceComparison(result)
	}
}

func printPurchaseComparison(result ComparisonResult) {
	fmt.Printf("%-25s", "Metric")
	for _, o := range result.Outcomes {
		fmt.Printf(" │ %-16s", o.Strategy.ShortName())
	}
	fmt.Println()
	fmt.Println(strings.Repeat("─", 25+len(result.Outcomes)*20))

	row := func(label string, value func(*PurchaseResult) string) {
		fmt.Printf("%-25s", label)
		for _, o := range result.Outcomes {
			fmt.Printf(" │ %-16s", value(o.Purchase))
		}
		fmt.Println()
	}

	row("Total Interest", func(p *PurchaseResult) string { return FormatMoney(p.Schedule.Totals.Interest) })
	row("Total Fees", func(p *PurchaseResult) string { return FormatMoney(p.Schedule.Totals.TotalFees) })
	row("Cost of Credit", func(p *PurchaseResult) string { return FormatMoney(p.Schedule.Totals.CostOfCredit) })
	row("First-Year Payment", func(p *PurchaseResult) string { return FormatMoney(p.Schedule.Metrics.FirstYearAvgPayment) })
	row("Peak Payment", func(p *PurchaseResult) string { return FormatMoney(p.Schedule.Metrics.MaxMonthlyPayment) })
	row("Payoff Month", func(p *PurchaseResult) string {
		if p.Schedule.Metrics.PayoffMonth == 0 {
			return "-"
		}
		return strconv.Itoa(p.Schedule.Metrics.PayoffMonth)
	})
	row("Effective APR", func(p *PurchaseResult) string {
		if !p.Schedule.Metrics.APRAvailable {
			return "n/a"
		}
		return fmt.Sprintf("%.2f%%", p.Schedule.Metrics.APRPct)
	})
	row("Closing Cash", func(p *PurchaseResult) string { return FormatMoney(p.ClosingCashNeeded) })

	fmt.Println(strings.Repeat("─", 25+len(result.Outcomes)*20))
	best := result.Outcomes[result.BestIdx]
	fmt.Println()
	fmt.Printf("  RECOMMENDED: %s — lowest cost of credit (%s)\n",
		best.Strategy, FormatMoney(best.Purchase.Schedule.Totals.CostOfCredit))
	fmt.Println()
}

func printRefinanceComparison(result ComparisonResult) {
	fmt.Printf("%-25s", "Metric")
	labels := []string{"Refi Now/Min", "Refi Now/Extra", "Optimal Timing"}
	for i := range result.Outcomes {
		fmt.Printf(" │ %-16s", labels[i%len(labels)])
	}
	fmt.Println()
	fmt.Println(strings.Repeat("─", 25+len(result.Outcomes)*20))

	pick := func(o StrategyOutcome) *RefinanceResult {
		if o.Timing != nil {
			return &o.Timing.Best
		}
		return o.Refinance
	}

	row := func(label string, value func(*RefinanceResult) string) {
		fmt.Printf("%-25s", label)
		for _, o := range result.Outcomes {
			fmt.Printf(" │ %-16s", value(pick(o)))
		}
		fmt.Println()
	}

	row("Switch Month", func(r *RefinanceResult) string { return strconv.Itoa(r.SwitchMonth) })
	row("Prepayment Fee", func(r *RefinanceResult) string { return FormatMoney(r.Costs.OldPrepaymentFee) })
	row("New Upfront Fees", func(r *RefinanceResult) string { return FormatMoney(r.Costs.NewUpfrontFees) })
	row("Net Saving", func(r *RefinanceResult) string { return FormatMoney(r.NetSaving) })
	row("Break-Even", func(r *RefinanceResult) string {
		if !r.HasBreakEven {
			return "never"
		}
		return fmt.Sprintf("month %d", r.BreakEvenMonth)
	})

	fmt.Println(strings.Repeat("─", 25+len(result.Outcomes)*20))
	fmt.Println()

	best := result.Outcomes[result.BestIdx]
	bestRefi := pick(best)
	if bestRefi.NetSaving > 0 {
		fmt.Printf("  RECOMMENDED: %s at month %d — saves %s\n",
			best.Strategy, bestRefi.SwitchMonth, FormatMoney(bestRefi.NetSaving))
	} else {
		fmt.Printf("  ⚠️  Refinancing loses money under every option (best: %s). Keep the old loan.\n",
			FormatMoney(bestRefi.NetSaving))
	}
	fmt.Println()
}

// PrintRefinance prints the detail of one refinance comparison
func PrintRefinance(r *RefinanceResult) {
	fmt.Println()
	fmt.Printf("╔══════════════════════════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║ Refinance at month %-3d (%-40s)         ║\n", r.SwitchMonth, r.Strategy)
	fmt.Printf("╚══════════════════════════════════════════════════════════════════════════════╝\n")
	fmt.Println()
	fmt.Printf("  Keep old loan (baseline):   %s\n", FormatMoneyFull(r.Costs.BaselinePaid))
	fmt.Println()
	fmt.Printf("  Old payments before switch: %s\n", FormatMoneyFull(r.Costs.PaidBeforeSwitch))
	fmt.Printf("  Balance settled at switch:  %s\n", FormatMoneyFull(r.Costs.PayoffBalance))
	fmt.Printf("  Old-bank prepayment fee:    %s\n", FormatMoneyFull(r.Costs.OldPrepaymentFee))
	fmt.Printf("  New loan principal:         %s\n", FormatMoneyFull(r.NewPrincipal))
	fmt.Printf("  New upfront fees:           %s\n", FormatMoneyFull(r.Costs.NewUpfrontFees))
	fmt.Printf("  New loan total paid:        %s\n", FormatMoneyFull(r.Costs.NewLoanPaid))
	fmt.Println()
	fmt.Printf("  NET SAVING:                 %s\n", FormatMoneyFull(r.NetSaving))
	if r.HasBreakEven {
		fmt.Printf("  Break-even: month %d\n", r.BreakEvenMonth)
	} else {
		fmt.Println("  Break-even: never (the refinance path stays behind)")
	}
	fmt.Println()
}

// PrintTimingSearch prints the optimal-timing search outcome
func PrintTimingSearch(t *TimingSearchResult) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                        OPTIMAL REFINANCE TIMING                              ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("  Objective: %s, %d candidate months evaluated\n", t.Objective, t.Evaluated)

	if t.Fallback {
		fmt.Println()
		fmt.Println("  ⚠️  No switch month produces a positive saving.")
		fmt.Println("  Showing the refinance-now comparison for reference:")
		PrintRefinance(&t.Best)
		return
	}

	fmt.Printf("  Best switch: wait %d months\n", t.OptimalMonth)
	PrintRefinance(&t.Best)
}

// PrintStressTable prints the stress scenario comparison
func PrintStressTable(scenarios []StressScenario) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                        FLOATING-RATE STRESS SCENARIOS                        ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("%-12s │ %10s │ %14s │ %14s │ %14s │ %10s\n",
		"Scenario", "Floating", "Cost of Credit", "Year-1 Pay", "Peak Pay", "APR")
	fmt.Println(strings.Repeat("─", 92))

	for _, s := range scenarios {
		apr := "n/a"
		if s.Schedule.Metrics.APRAvailable {
			apr = fmt.Sprintf("%.2f%%", s.Schedule.Metrics.APRPct)
		}
		fmt.Printf("%-12s │ %9.2f%% │ %14s │ %14s │ %14s │ %10s\n",
			fmt.Sprintf("+%.0f pts", s.BumpPct),
			s.FloatingPct,
			FormatMoney(s.Schedule.Totals.CostOfCredit),
			FormatMoney(s.Schedule.Metrics.FirstYearAvgPayment),
			FormatMoney(s.Schedule.Metrics.MaxMonthlyPayment),
			apr)
	}
	fmt.Println(strings.Repeat("─", 92))
	fmt.Println()
}

// PrintAffordability prints the affordability search outcome
func PrintAffordability(result AffordabilityResult, capVND float64) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                           AFFORDABILITY SEARCH                               ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("  Monthly payment cap:  %s\n", FormatMoneyFull(capVND))
	fmt.Printf("  Max principal:        %s\n", FormatMoneyFull(result.MaxPrincipal))
	fmt.Printf("  First-year payment:   %s/month (avg)\n", FormatMoney(result.FirstYearAvgPayment))
	if result.LTVLimited {
		fmt.Println("  Bound by the product's LTV cap, not the payment cap.")
	}
	if !result.Converged {
		fmt.Println("  ⚠️  Search did not converge within the iteration limit.")
	}
	fmt.Println()
}
