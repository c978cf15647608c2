package main

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{2_400_000_000, "2.40B ₫"},
		{1_250_000_000, "1.25B ₫"},
		{850_000_000, "850.0M ₫"},
		{12_500_000, "12.5M ₫"},
		{50_000, "50k ₫"},
		{999, "999 ₫"},
		{0, "0 ₫"},
		{-18_000_000, "-18.0M ₫"},
	}

	for _, tc := range tests {
		if got := FormatMoney(tc.amount); got != tc.expected {
			t.Errorf("FormatMoney(%.0f) = %q, want %q", tc.amount, got, tc.expected)
		}
	}
}

func TestFormatMoneyFull(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{2_400_000_000, "2,400,000,000 ₫"},
		{1_000, "1,000 ₫"},
		{999, "999 ₫"},
		{0, "0 ₫"},
		{-1_234_567, "-1,234,567 ₫"},
	}

	for _, tc := range tests {
		if got := FormatMoneyFull(tc.amount); got != tc.expected {
			t.Errorf("FormatMoneyFull(%.0f) = %q, want %q", tc.amount, got, tc.expected)
		}
	}
}

func TestFormatMoneyPDF(t *testing.T) {
	if got := FormatMoneyPDF(2_400_000_000); got != "2.40B VND" {
		t.Errorf("FormatMoneyPDF = %q, want %q", got, "2.40B VND")
	}
}
