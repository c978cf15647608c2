package main

import (
	_ "embed"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// Repayment method and insurance basis values accepted in YAML
const (
	MethodAnnuity        = "annuity"
	MethodEqualPrincipal = "equal_principal"

	InsuranceBasisBalance  = "balance"
	InsuranceBasisProperty = "property"
)

// RateScheduleConfig describes a product's rate structure.
// All rates are percent per year (8.5 means 8.5%).
type RateScheduleConfig struct {
	PromoRatePct         float64 `yaml:"promo_rate_pct" json:"promo_rate_pct"`
	PromoMonths          int     `yaml:"promo_months" json:"promo_months"`
	ReferenceRatePct     float64 `yaml:"reference_rate_pct" json:"reference_rate_pct"`     // Base deposit/reference rate
	MarginPct            float64 `yaml:"margin_pct" json:"margin_pct"`                     // Bank margin over the reference
	ResetFrequencyMonths int     `yaml:"reset_frequency_months" json:"reset_frequency_months"` // 0 = reprice only on rate changes
}

// PrepaymentTier is one band of the early-repayment fee table.
// Bands are half-open [from_month, to_month); to_month 0 is open-ended.
type PrepaymentTier struct {
	FromMonth int     `yaml:"from_month" json:"from_month"`
	ToMonth   int     `yaml:"to_month,omitempty" json:"to_month,omitempty"`
	FeePct    float64 `yaml:"fee_pct" json:"fee_pct"`
	MinFeeVND float64 `yaml:"min_fee_vnd,omitempty" json:"min_fee_vnd,omitempty"`
}

// InsuranceConfig describes borrower insurance. A flat annual amount wins
// over a percentage; the percentage applies to the configured basis.
type InsuranceConfig struct {
	AnnualPct       float64 `yaml:"annual_pct,omitempty" json:"annual_pct,omitempty"`
	AnnualAmountVND float64 `yaml:"annual_amount_vnd,omitempty" json:"annual_amount_vnd,omitempty"`
	Basis           string  `yaml:"basis,omitempty" json:"basis,omitempty"` // "balance" (default) or "property"
}

// FeeScheduleConfig holds all fees a product charges
type FeeScheduleConfig struct {
	OriginationPct      float64          `yaml:"origination_pct" json:"origination_pct"`
	OriginationMinVND   float64          `yaml:"origination_min_vnd,omitempty" json:"origination_min_vnd,omitempty"`
	OriginationMaxVND   float64          `yaml:"origination_max_vnd,omitempty" json:"origination_max_vnd,omitempty"`
	AppraisalVND        float64          `yaml:"appraisal_vnd,omitempty" json:"appraisal_vnd,omitempty"`
	DisbursementFlatVND float64          `yaml:"disbursement_flat_vnd,omitempty" json:"disbursement_flat_vnd,omitempty"`
	DisbursementPct     float64          `yaml:"disbursement_pct,omitempty" json:"disbursement_pct,omitempty"`
	MonthlyAccountVND   float64          `yaml:"monthly_account_vnd,omitempty" json:"monthly_account_vnd,omitempty"`
	Insurance           InsuranceConfig  `yaml:"insurance,omitempty" json:"insurance,omitempty"`
	PrepaymentTiers     []PrepaymentTier `yaml:"prepayment_tiers" json:"prepayment_tiers"`
}

// ProductTemplate describes one bank mortgage product
type ProductTemplate struct {
	Name                    string             `yaml:"name" json:"name"`
	Bank                    string             `yaml:"bank" json:"bank"`
	RepaymentMethod         string             `yaml:"repayment_method" json:"repayment_method"` // "annuity" or "equal_principal"
	MaxLTVPct               float64            `yaml:"max_ltv_pct,omitempty" json:"max_ltv_pct,omitempty"`
	MinTermMonths           int                `yaml:"min_term_months,omitempty" json:"min_term_months,omitempty"`
	MaxTermMonths           int                `yaml:"max_term_months,omitempty" json:"max_term_months,omitempty"`
	GracePrincipalMonths    int                `yaml:"grace_principal_months,omitempty" json:"grace_principal_months,omitempty"`
	MinPartialPrepaymentVND float64            `yaml:"min_partial_prepayment_vnd,omitempty" json:"min_partial_prepayment_vnd,omitempty"`
	Rates                   RateScheduleConfig `yaml:"rates" json:"rates"`
	Fees                    FeeScheduleConfig  `yaml:"fees" json:"fees"`
}

// Method maps the configured repayment method string to its enum,
// defaulting to annuity.
func (t *ProductTemplate) Method() RepaymentMethod {
	return parseMethod(t.RepaymentMethod)
}

func parseMethod(s string) RepaymentMethod {
	if strings.EqualFold(strings.TrimSpace(s), MethodEqualPrincipal) {
		return EqualPrincipal
	}
	return Annuity
}

// LoanRequest holds the borrower's side of the simulation
type LoanRequest struct {
	PrincipalVND     float64 `yaml:"principal_vnd" json:"principal_vnd"`
	TermMonths       int     `yaml:"term_months" json:"term_months"`
	HorizonMonths    int     `yaml:"horizon_months,omitempty" json:"horizon_months,omitempty"` // 0 = full term
	PropertyValueVND float64 `yaml:"property_value_vnd,omitempty" json:"property_value_vnd,omitempty"`
	IncludeInsurance bool    `yaml:"include_insurance,omitempty" json:"include_insurance,omitempty"`
	StressBumpPct    float64 `yaml:"stress_bump_pct,omitempty" json:"stress_bump_pct,omitempty"`
	ExtraPerMonthVND float64 `yaml:"extra_per_month_vnd,omitempty" json:"extra_per_month_vnd,omitempty"`
	CashOutVND       float64 `yaml:"cash_out_vnd,omitempty" json:"cash_out_vnd,omitempty"` // Refinance only
	StartDate        string  `yaml:"start_date,omitempty" json:"start_date,omitempty"`     // YYYY-MM
}

// ParsedStartDate returns the configured first-disbursement month, or the
// zero time when unset or malformed (schedules then carry no dates).
func (l LoanRequest) ParsedStartDate() time.Time {
	if l.StartDate == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01", l.StartDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// OldLoanConfig describes the loan being refinanced away from
type OldLoanConfig struct {
	BalanceVND      float64          `yaml:"balance_vnd" json:"balance_vnd"`
	AnnualRatePct   float64          `yaml:"annual_rate_pct" json:"annual_rate_pct"`
	RemainingMonths int              `yaml:"remaining_months" json:"remaining_months"`
	AgeMonths       int              `yaml:"age_months" json:"age_months"` // Months already elapsed on the old loan
	RepaymentMethod string           `yaml:"repayment_method,omitempty" json:"repayment_method,omitempty"`
	PrepaymentTiers []PrepaymentTier `yaml:"prepayment_tiers" json:"prepayment_tiers"`
}

func (o *OldLoanConfig) Method() RepaymentMethod {
	return parseMethod(o.RepaymentMethod)
}

// SearchConfig holds optimal-timing search settings
type SearchConfig struct {
	Objective      string `yaml:"objective,omitempty" json:"objective,omitempty"` // "max_saving" or "min_break_even"
	MaxDelayMonths int    `yaml:"max_delay_months,omitempty" json:"max_delay_months,omitempty"`
}

func (s SearchConfig) ParsedObjective() Objective {
	if strings.EqualFold(strings.TrimSpace(s.Objective), "min_break_even") {
		return MinBreakEven
	}
	return MaxNetSaving
}

// Config holds the complete configuration
type Config struct {
	Template ProductTemplate `yaml:"template" json:"template"`
	Loan     LoanRequest     `yaml:"loan" json:"loan"`
	OldLoan  *OldLoanConfig  `yaml:"old_loan,omitempty" json:"old_loan,omitempty"`
	Search   SearchConfig    `yaml:"search,omitempty" json:"search,omitempty"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	// Add a header comment with instructions
	header := []byte(`# Mortgage Forecast Configuration
# Feel free to edit manually
#
# ═══════════════════════════════════════════════════════════════════════════════
# VALUE FORMATS
# ═══════════════════════════════════════════════════════════════════════════════
#   Rates: percent per year (8.5 = 8.5%/year)
#   Money: whole VND (2400000000 = 2.4 billion VND)
#   Dates: YYYY-MM format (e.g., 2026-01)
#
# ═══════════════════════════════════════════════════════════════════════════════
# RUN COMMANDS
# ═══════════════════════════════════════════════════════════════════════════════
#   ./goMortgageForecast                      Interactive mode selector
#   ./goMortgageForecast -details             Full amortization schedule
#   ./goMortgageForecast -compare             Strategy comparison
#   ./goMortgageForecast -refinance           Refinance vs keeping the old loan
#   ./goMortgageForecast -optimal             Optimal refinance timing search
#   ./goMortgageForecast -stress              Floating-rate stress scenarios
#   ./goMortgageForecast -afford 25           Max principal for 25M VND/month
#   ./goMortgageForecast -pdf forecast.pdf    PDF report
#   ./goMortgageForecast -help                Show all options
#
# See default-config.yaml for all available options with detailed comments.

`)
	content := append(header, data...)
	return os.WriteFile(filename, content, 0644)
}

// LoadDefaultConfig loads the configuration embedded in the binary
func LoadDefaultConfig() (*Config, error) {
	var config Config
	err := yaml.Unmarshal([]byte(defaultConfigYAML), &config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// ValidateConfig checks the configuration at the boundary and returns a
// list of problems. An empty list means the config is usable.
func ValidateConfig(c *Config) []string {
	var problems []string

	if c.Loan.PrincipalVND <= 0 {
		problems = append(problems, "loan.principal_vnd must be positive")
	}
	if c.Loan.TermMonths <= 0 {
		problems = append(problems, "loan.term_months must be positive")
	}
	if c.Template.MinTermMonths > 0 && c.Loan.TermMonths < c.Template.MinTermMonths {
		problems = append(problems, "loan.term_months is below the product's minimum term")
	}
	if c.Template.MaxTermMonths > 0 && c.Loan.TermMonths > c.Template.MaxTermMonths {
		problems = append(problems, "loan.term_months exceeds the product's maximum term")
	}
	if c.Template.Rates.PromoRatePct < 0 || c.Template.Rates.ReferenceRatePct < 0 || c.Template.Rates.MarginPct < 0 {
		problems = append(problems, "template rates must not be negative")
	}
	if c.Template.MaxLTVPct > 0 && c.Loan.PropertyValueVND > 0 {
		ltv := c.Loan.PrincipalVND / c.Loan.PropertyValueVND * 100
		if ltv > c.Template.MaxLTVPct {
			problems = append(problems, "loan exceeds the product's maximum LTV")
		}
	}
	problems = append(problems, ValidatePrepaymentTiers(c.Template.Fees.PrepaymentTiers)...)

	if old := c.OldLoan; old != nil {
		if old.BalanceVND <= 0 {
			problems = append(problems, "old_loan.balance_vnd must be positive")
		}
		if old.RemainingMonths <= 0 {
			problems = append(problems, "old_loan.remaining_months must be positive")
		}
		if old.AgeMonths < 0 {
			problems = append(problems, "old_loan.age_months must not be negative")
		}
		problems = append(problems, ValidatePrepaymentTiers(old.PrepaymentTiers)...)
	}

	return problems
}

// monthsAfter shifts a date by whole months, passing the zero time through
func monthsAfter(t time.Time, months int) time.Time {
	if t.IsZero() || months == 0 {
		return t
	}
	return t.AddDate(0, months, 0)
}
