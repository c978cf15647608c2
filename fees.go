package main

import "strconv"

// Fee calculations: prepayment penalty tiers, upfront fees and insurance.
//
// Prepayment tiers are half-open intervals [from_month, to_month) indexed by
// the absolute age of the loan in months. A to_month of 0 means the tier is
// open-ended. For an old loan being refinanced the lookup month is the loan
// age at simulation start plus the elapsed months, so mid-life loans land in
// the correct tier.

// PrepaymentTierFor returns the tier covering an absolute loan month,
// or nil when no tier matches.
func PrepaymentTierFor(tiers []PrepaymentTier, month int) *PrepaymentTier {
	for i := range tiers {
		t := &tiers[i]
		if month < t.FromMonth {
			continue
		}
		if t.ToMonth == 0 || month < t.ToMonth {
			return t
		}
	}
	return nil
}

// PrepaymentFeePct returns the fee percentage charged for a prepayment at an
// absolute loan month. Months not covered by any tier are free.
func PrepaymentFeePct(tiers []PrepaymentTier, month int) float64 {
	tier := PrepaymentTierFor(tiers, month)
	if tier == nil {
		return 0
	}
	return tier.FeePct
}

// PrepaymentFee returns the fee in VND for prepaying amount at an absolute
// loan month, applying the tier's minimum-fee floor when one is set.
func PrepaymentFee(tiers []PrepaymentTier, month int, amount float64) float64 {
	tier := PrepaymentTierFor(tiers, month)
	if tier == nil || amount <= 0 {
		return 0
	}
	fee := roundVND(amount * tier.FeePct / 100.0)
	if fee > 0 && fee < tier.MinFeeVND {
		fee = tier.MinFeeVND
	}
	return fee
}

// feeThresholdScanMonths bounds the fee-threshold scan for tier tables that
// never drop to the requested level.
const feeThresholdScanMonths = 360

// FirstMonthAtOrBelowFeePct returns the first elapsed month (1-indexed) at
// which the prepayment fee percentage is at or below threshold, scanning up
// to feeThresholdScanMonths ahead. ageMonths offsets the lookup for loans
// already part-way through their tier table. Returns 0 when the fee never
// drops to the threshold within the scan window.
func FirstMonthAtOrBelowFeePct(tiers []PrepaymentTier, ageMonths int, thresholdPct float64) int {
	for m := 1; m <= feeThresholdScanMonths; m++ {
		if PrepaymentFeePct(tiers, ageMonths+m) <= thresholdPct {
			return m
		}
	}
	return 0
}

// ValidatePrepaymentTiers checks that a tier table starts at month 0, is
// contiguous, and ends with an open tier. Returns a list of problems.
func ValidatePrepaymentTiers(tiers []PrepaymentTier) []string {
	var problems []string
	if len(tiers) == 0 {
		return problems
	}
	if tiers[0].FromMonth != 0 {
		problems = append(problems, "first prepayment tier must start at month 0")
	}
	for i := 1; i < len(tiers); i++ {
		prev := tiers[i-1]
		if prev.ToMonth == 0 {
			problems = append(problems, "only the last prepayment tier may be open-ended")
			break
		}
		if tiers[i].FromMonth != prev.ToMonth {
			problems = append(problems,
				"prepayment tiers must be contiguous (gap or overlap at month "+strconv.Itoa(tiers[i].FromMonth)+")")
		}
	}
	if last := tiers[len(tiers)-1]; last.ToMonth != 0 {
		problems = append(problems, "last prepayment tier must be open-ended (to_month: 0)")
	}
	for _, t := range tiers {
		if t.FeePct < 0 {
			problems = append(problems, "prepayment fee percentage must not be negative")
			break
		}
	}
	return problems
}

// CalculateUpfrontFees computes the fees due at disbursement: origination
// (percent of principal clamped to a min/max band), a flat appraisal fee,
// and a disbursement fee that may carry both a flat and a percent component.
func CalculateUpfrontFees(fs FeeScheduleConfig, principal float64) UpfrontFees {
	origination := roundVND(principal * fs.OriginationPct / 100.0)
	if fs.OriginationMinVND > 0 && origination < fs.OriginationMinVND {
		origination = fs.OriginationMinVND
	}
	if fs.OriginationMaxVND > 0 && origination > fs.OriginationMaxVND {
		origination = fs.OriginationMaxVND
	}

	appraisal := roundVND(fs.AppraisalVND)
	disbursement := roundVND(fs.DisbursementFlatVND + principal*fs.DisbursementPct/100.0)

	return UpfrontFees{
		Origination:  origination,
		Appraisal:    appraisal,
		Disbursement: disbursement,
		Total:        origination + appraisal + disbursement,
	}
}

// MonthlyInsurance returns one month of borrower insurance. A flat annual
// amount takes precedence; otherwise an annual percentage is applied to the
// configured basis (outstanding balance by default, property value when the
// policy covers the collateral).
func MonthlyInsurance(ins InsuranceConfig, openingBalance, propertyValue float64) float64 {
	if ins.AnnualAmountVND > 0 {
		return roundVND(ins.AnnualAmountVND / 12.0)
	}
	if ins.AnnualPct <= 0 {
		return 0
	}
	basis := openingBalance
	if ins.Basis == InsuranceBasisProperty {
		basis = propertyValue
	}
	return roundVND(basis * ins.AnnualPct / 100.0 / 12.0)
}
