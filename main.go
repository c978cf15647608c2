package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Mortgage Amortization & Refinance Forecaster

Projects Vietnamese mortgage products month by month: promotional then
floating rates, principal grace periods, tiered early-repayment fees and
the all-in cost of credit. Compares repayment strategies, evaluates
refinancing an existing loan and searches for the cheapest month to switch.

MODES:

  SCHEDULE (default)
    Generate the full amortization schedule for the configured loan with
    totals, payment metrics and the effective APR.

  COMPARE (-compare)
    Run minimum payment, fixed extra principal and early-exit strategies
    side by side and recommend the lowest cost of credit. With an old_loan
    block configured, compares refinance options instead.

  REFINANCE (-refinance)
    Compare keeping the configured old loan against refinancing it onto
    the template product today, including the old bank's prepayment fee
    and the new loan's upfront fees.

  OPTIMAL TIMING (-optimal)
    Brute-force every switch month within the search window and pick the
    best by net saving or earliest break-even.

  STRESS (-stress)
    Re-run the schedule with the post-promo floating rate bumped by
    0, +2 and +4 percentage points.

  AFFORDABILITY (-afford N)
    Binary-search the largest principal whose first-year average payment
    stays under N million VND per month.

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                           Interactive mode selector
  %s -config my.yaml           Use custom configuration file
  %s -details                  Full month-by-month schedule
  %s -compare                  Strategy comparison
  %s -refinance                Refinance now vs keeping the old loan
  %s -optimal                  Search for the best switch month
  %s -stress                   Floating-rate stress table
  %s -afford 25                Max principal for a 25M VND/month budget
  %s -pdf forecast.pdf         Write the schedule as a PDF report

Configuration:
  Edit config.yaml to describe the bank product (template), the loan
  request (loan) and, for refinance modes, the existing loan (old_loan).
  Run with -init to write a commented sample configuration.
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	configFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	initConfig := flag.Bool("init", false, "Write a commented sample configuration and exit")
	showDetails := flag.Bool("details", false, "Show every month of the schedule instead of an annual digest")
	runCompare := flag.Bool("compare", false, "Compare repayment (or refinance) strategies side by side")
	runRefinance := flag.Bool("refinance", false, "Compare refinancing the configured old loan today")
	runOptimal := flag.Bool("optimal", false, "Search for the optimal refinance switch month")
	runStress := flag.Bool("stress", false, "Run floating-rate stress scenarios")
	affordCap := flag.Float64("afford", 0, "Max affordable principal for this monthly budget (million VND)")
	pdfFile := flag.String("pdf", "", "Write the forecast to this PDF file")
	flag.Parse()

	if *initConfig {
		config, err := LoadDefaultConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building default config: %v\n", err)
			os.Exit(1)
		}
		if err := SaveConfig(config, *configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *configFile, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote sample configuration to %s\n", *configFile)
		return
	}

	config := mustLoadConfig(*configFile)

	anyMode := *runCompare || *runRefinance || *runOptimal || *runStress || *affordCap > 0 ||
		*showDetails || *pdfFile != ""
	if !anyMode {
		switch promptForMode(config) {
		case "2":
			*runCompare = true
		case "3":
			*runRefinance = true
		case "4":
			*runOptimal = true
		case "5":
			*runStress = true
		}
	}

	PrintHeader(config)

	switch {
	case *runCompare:
		PrintComparison(CompareAllStrategies(config))
	case *runRefinance:
		requireOldLoan(config)
		result := CompareRefinance(&config.Template, config.Loan, config.OldLoan,
			Strategy{Kind: MinimumPayment}, 0)
		PrintRefinance(&result)
	case *runOptimal:
		requireOldLoan(config)
		result := FindOptimalTiming(&config.Template, config.Loan, config.OldLoan,
			Strategy{Kind: MinimumPayment},
			config.Search.ParsedObjective(), config.Search.MaxDelayMonths)
		PrintTimingSearch(&result)
	case *runStress:
		scenarios := RunStressScenarios(&config.Template, config.Loan,
			Strategy{Kind: MinimumPayment}, nil)
		PrintStressTable(scenarios)
	case *affordCap > 0:
		capVND := *affordCap * 1e6
		result := MaxAffordablePrincipal(&config.Template, config.Loan, capVND)
		PrintAffordability(result, capVND)
	default:
		strategy := Strategy{Kind: MinimumPayment}
		if config.Loan.ExtraPerMonthVND > 0 {
			strategy = Strategy{Kind: FixedExtraPrincipal, ExtraPerMonth: config.Loan.ExtraPerMonthVND}
		}
		schedule := GenerateSchedule(NewPurchaseSpec(&config.Template, config.Loan, strategy))
		maxRows := 24
		if *showDetails {
			maxRows = 0
		}
		PrintSchedule(&schedule, maxRows)
		PrintScheduleSummary(&schedule)
	}

	if *pdfFile != "" {
		data, err := BuildPDFReport(config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating PDF: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*pdfFile, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *pdfFile, err)
			os.Exit(1)
		}
		fmt.Printf("PDF report written to %s\n", *pdfFile)
	}
}

// mustLoadConfig loads and validates the configuration, offering to write a
// sample file when none exists.
func mustLoadConfig(configFile string) *Config {
	config, err := LoadConfig(configFile)
	if os.IsNotExist(err) {
		fmt.Printf("No configuration found at %s.\n", configFile)
		fmt.Print("Write a commented sample there and continue with it? [Y/n]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer == "n" || answer == "no" {
			os.Exit(1)
		}
		config, err = LoadDefaultConfig()
		if err == nil {
			err = SaveConfig(config, configFile)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing sample config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s.\n\n", configFile)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if problems := ValidateConfig(config); len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "Configuration problems in %s:\n", configFile)
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		os.Exit(1)
	}
	return config
}

func requireOldLoan(config *Config) {
	if config.OldLoan == nil {
		fmt.Fprintf(os.Stderr, "This mode needs an old_loan block in the configuration.\n")
		os.Exit(1)
	}
}

// promptForMode shows the interactive mode selector when no flags were given
func promptForMode(config *Config) string {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║               MORTGAGE AMORTIZATION & REFINANCE FORECASTER                   ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("Select mode:")
	fmt.Println()
	fmt.Printf("    1) Schedule        - Amortize %s over %d months\n",
		FormatMoney(config.Loan.PrincipalVND), config.Loan.TermMonths)
	fmt.Println("    2) Compare         - Repayment strategies side by side")
	if config.OldLoan != nil {
		fmt.Printf("    3) Refinance       - Settle the %s old loan today\n",
			FormatMoney(config.OldLoan.BalanceVND))
		fmt.Println("    4) Optimal timing  - Search for the cheapest switch month")
	} else {
		fmt.Println("    3) Refinance       - (needs an old_loan block in the config)")
		fmt.Println("    4) Optimal timing  - (needs an old_loan block in the config)")
	}
	fmt.Println("    5) Stress          - Floating rate +0/+2/+4 points")
	fmt.Println()
	fmt.Print("Choice [1]: ")

	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "1"
	}
	if _, err := strconv.Atoi(answer); err != nil {
		return "1"
	}
	return answer
}
