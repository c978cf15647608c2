package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultConfig(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("embedded default config failed to parse: %v", err)
	}

	if config.Template.Name == "" || config.Template.Bank == "" {
		t.Error("default template missing its product identity")
	}
	if config.Template.Method() != Annuity {
		t.Errorf("default repayment method %v, want annuity", config.Template.Method())
	}
	if len(config.Template.Fees.PrepaymentTiers) != 4 {
		t.Errorf("default tier table has %d tiers, want 4", len(config.Template.Fees.PrepaymentTiers))
	}
	if config.OldLoan != nil {
		t.Error("default config should not configure an old loan")
	}
	if problems := ValidateConfig(config); len(problems) != 0 {
		t.Errorf("default config fails its own validation: %v", problems)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	config.Loan.PrincipalVND = 1_234_000_000
	config.OldLoan = &OldLoanConfig{
		BalanceVND:      900_000_000,
		AnnualRatePct:   11.0,
		RemainingMonths: 96,
		AgeMonths:       24,
		PrepaymentTiers: []PrepaymentTier{{FromMonth: 0, FeePct: 1.5}},
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := SaveConfig(config, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Loan.PrincipalVND != 1_234_000_000 {
		t.Errorf("principal %.0f survived the round trip as %.0f",
			config.Loan.PrincipalVND, loaded.Loan.PrincipalVND)
	}
	if loaded.OldLoan == nil || loaded.OldLoan.BalanceVND != 900_000_000 {
		t.Error("old loan block lost in the round trip")
	}
	if loaded.Template.Rates.PromoRatePct != config.Template.Rates.PromoRatePct {
		t.Error("rate schedule lost in the round trip")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		return &Config{Template: *testTemplate(), Loan: testLoan()}
	}

	if problems := ValidateConfig(base()); len(problems) != 0 {
		t.Fatalf("reference config rejected: %v", problems)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero principal", func(c *Config) { c.Loan.PrincipalVND = 0 }},
		{"zero term", func(c *Config) { c.Loan.TermMonths = 0 }},
		{"term below product minimum", func(c *Config) { c.Loan.TermMonths = 12 }},
		{"term above product maximum", func(c *Config) { c.Loan.TermMonths = 600 }},
		{"negative rate", func(c *Config) { c.Template.Rates.MarginPct = -1 }},
		{"LTV breach", func(c *Config) { c.Loan.PrincipalVND = 3_000_000_000 }},
		{"broken tier table", func(c *Config) {
			c.Template.Fees.PrepaymentTiers = []PrepaymentTier{{FromMonth: 6, FeePct: 1}}
		}},
		{"old loan without balance", func(c *Config) {
			c.OldLoan = &OldLoanConfig{RemainingMonths: 60}
		}},
	}

	for _, tc := range cases {
		config := base()
		tc.mutate(config)
		if problems := ValidateConfig(config); len(problems) == 0 {
			t.Errorf("%s: accepted", tc.name)
		}
	}
}

func TestValidateConfig_InterestOnlyLoanAllowed(t *testing.T) {
	// Grace covering the whole term is an interest-only loan, not a
	// configuration mistake.
	config := &Config{Template: *testTemplate(), Loan: testLoan()}
	config.Template.GracePrincipalMonths = config.Loan.TermMonths
	if problems := ValidateConfig(config); len(problems) != 0 {
		t.Errorf("interest-only configuration rejected: %v", problems)
	}
}

func TestParsedStartDate(t *testing.T) {
	loan := LoanRequest{StartDate: "2026-01"}
	got := loan.ParsedStartDate()
	if got.Year() != 2026 || got.Month() != time.January {
		t.Errorf("parsed %v, want January 2026", got)
	}

	for _, bad := range []string{"", "not-a-date", "2026-13"} {
		if !(LoanRequest{StartDate: bad}).ParsedStartDate().IsZero() {
			t.Errorf("%q should parse to the zero time", bad)
		}
	}
}

func TestParsedObjective(t *testing.T) {
	if (SearchConfig{Objective: "min_break_even"}).ParsedObjective() != MinBreakEven {
		t.Error("min_break_even not recognized")
	}
	if (SearchConfig{Objective: "max_saving"}).ParsedObjective() != MaxNetSaving {
		t.Error("max_saving not recognized")
	}
	if (SearchConfig{}).ParsedObjective() != MaxNetSaving {
		t.Error("empty objective should default to max saving")
	}
}

func TestParseMethod(t *testing.T) {
	if parseMethod("equal_principal") != EqualPrincipal {
		t.Error("equal_principal not recognized")
	}
	if parseMethod("  Equal_Principal ") != EqualPrincipal {
		t.Error("method parsing should be case and whitespace insensitive")
	}
	if parseMethod("annuity") != Annuity || parseMethod("") != Annuity {
		t.Error("annuity should be the default method")
	}
}
