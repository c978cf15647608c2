package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// FormatMoneyPDF formats money for PDF output. The dong sign has no Latin-1
// encoding, so PDF text spells out VND instead.
func FormatMoneyPDF(amount float64) string {
	return strings.ReplaceAll(FormatMoney(amount), "₫", "VND")
}

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFLoanReport generates the printable forecast for one loan run
type PDFLoanReport struct {
	pdf        *fpdf.Fpdf
	config     *Config
	schedule   *ScheduleResult
	comparison *ComparisonResult
}

// GenerateLoanPDFReport creates the PDF forecast. The comparison section is
// skipped when comparison is nil.
func GenerateLoanPDFReport(config *Config, schedule *ScheduleResult, comparison *ComparisonResult) ([]byte, error) {
	report := &PDFLoanReport{
		pdf:        fpdf.New("P", "mm", "A4", ""),
		config:     config,
		schedule:   schedule,
		comparison: comparison,
	}

	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)

	report.addTitlePage()
	report.addScheduleTable()
	if comparison != nil && len(comparison.Outcomes) > 0 && comparison.Outcomes[0].Purchase != nil {
		report.addComparisonPage()
	}

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPDFReport renders the standard loan forecast for the configured loan:
// schedule, cost summary and the strategy comparison. With an old_loan block
// and no explicit principal, the new loan is sized to the old balance plus
// any cash-out.
func BuildPDFReport(config *Config) ([]byte, error) {
	loan := config.Loan
	if config.OldLoan != nil && loan.PrincipalVND <= 0 {
		loan.PrincipalVND = config.OldLoan.BalanceVND + loan.CashOutVND
	}
	strategy := Strategy{Kind: MinimumPayment}
	if loan.ExtraPerMonthVND > 0 {
		strategy = Strategy{Kind: FixedExtraPrincipal, ExtraPerMonth: loan.ExtraPerMonthVND}
	}
	schedule := GenerateSchedule(NewPurchaseSpec(&config.Template, loan, strategy))
	comparison := CompareAllStrategies(config)

	cfg := *config
	cfg.Loan = loan
	return GenerateLoanPDFReport(&cfg, &schedule, &comparison)
}

func (r *PDFLoanReport) addTitlePage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 28)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(40)
	r.pdf.CellFormat(contentWidth, 15, "Mortgage Forecast", "", 1, "C", false, 0, "")

	tpl := &r.config.Template
	r.pdf.SetFont("Arial", "", 14)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(8)
	r.pdf.CellFormat(contentWidth, 10, fmt.Sprintf("%s - %s", tpl.Bank, tpl.Name), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.Ln(12)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")

	// Loan terms box
	r.pdf.Ln(15)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)

	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Loan Terms", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	loan := r.config.Loan
	rows := []string{
		fmt.Sprintf("Principal: %s over %d months (%s)",
			FormatMoneyPDF(loan.PrincipalVND), loan.TermMonths, tpl.Method()),
		fmt.Sprintf("Promo rate: %.2f%% for %d months, then %.2f%% + %.2f%% floating",
			tpl.Rates.PromoRatePct, tpl.Rates.PromoMonths,
			tpl.Rates.ReferenceRatePct, tpl.Rates.MarginPct),
	}
	if loan.PropertyValueVND > 0 {
		rows = append(rows, fmt.Sprintf("Property: %s (LTV %.1f%%)",
			FormatMoneyPDF(loan.PropertyValueVND), loan.PrincipalVND/loan.PropertyValueVND*100))
	}
	if tpl.GracePrincipalMonths > 0 {
		rows = append(rows, fmt.Sprintf("Principal grace: %d months", tpl.GracePrincipalMonths))
	}
	for _, text := range rows {
		r.pdf.CellFormat(contentWidth, 7, text, "LR", 1, "C", true, 0, "")
	}
	r.pdf.CellFormat(contentWidth, 1, "", "LRB", 1, "C", true, 0, "")

	// Cost summary box
	r.pdf.Ln(10)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Cost Summary", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	t := r.schedule.Totals
	m := r.schedule.Metrics
	apr := "unavailable"
	if m.APRAvailable {
		apr = fmt.Sprintf("%.2f%%", m.APRPct)
	}
	summary := []string{
		fmt.Sprintf("Total interest: %s", FormatMoneyPDF(t.Interest)),
		fmt.Sprintf("Total fees: %s  |  Insurance: %s", FormatMoneyPDF(t.TotalFees), FormatMoneyPDF(t.Insurance)),
		fmt.Sprintf("Cost of credit: %s", FormatMoneyPDF(t.CostOfCredit)),
		fmt.Sprintf("First-year payment: %s/month  |  Peak: %s/month",
			FormatMoneyPDF(m.FirstYearAvgPayment), FormatMoneyPDF(m.MaxMonthlyPayment)),
		fmt.Sprintf("Effective APR: %s", apr),
	}
	if m.PayoffMonth > 0 && m.PayoffMonth < r.schedule.TermMonths {
		summary = append(summary, fmt.Sprintf("Paid off in month %d (%d months early)",
			m.PayoffMonth, r.schedule.TermMonths-m.PayoffMonth))
	}
	for _, text := range summary {
		r.pdf.CellFormat(contentWidth, 7, text, "LR", 1, "C", true, 0, "")
	}
	r.pdf.CellFormat(contentWidth, 1, "", "LRB", 1, "C", true, 0, "")

	r.pdf.Ln(15)
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4.5,
		"This forecast is a deterministic projection of the configured rate path. "+
			"Actual floating rates reset with the reference rate and will differ.",
		"", "C", false)
}

func (r *PDFLoanReport) addScheduleTable() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, "Amortization Schedule (annual)", "", 1, "L", false, 0, "")
	r.pdf.Ln(2)

	widths := []float64{14, 14, 30, 28, 28, 28, 38}
	headers := []string{"Year", "Rate", "Opening", "Interest", "Principal", "Payment", "Closing"}

	r.drawTableHeader(widths, headers)

	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)

	fill := false
	emit := func(year int, rate, opening, interest, principal, payment, closing float64) {
		if r.pdf.GetY() > pageHeight-marginBottom-10 {
			r.pdf.AddPage()
			r.drawTableHeader(widths, headers)
			r.pdf.SetFont("Arial", "", 9)
			r.pdf.SetTextColor(50, 50, 50)
		}
		cells := []string{
			strconv.Itoa(year),
			fmt.Sprintf("%.2f%%", rate),
			FormatMoneyPDF(opening),
			FormatMoneyPDF(interest),
			FormatMoneyPDF(principal),
			FormatMoneyPDF(payment),
			FormatMoneyPDF(closing),
		}
		for i, cell := range cells {
			r.pdf.CellFormat(widths[i], 6, cell, "LR", 0, "R", fill, 0, "")
		}
		r.pdf.Ln(-1)
		fill = !fill
	}

	// Aggregate rows by loan year
	var opening, interest, principal, payment float64
	var closing, rate float64
	year := 0
	for i, row := range r.schedule.Rows {
		if row.Month%12 == 1 || i == 0 {
			opening = row.OpeningBalance
			interest, principal, payment = 0, 0, 0
		}
		year = (row.Month-1)/12 + 1
		rate = row.AnnualRatePct
		interest += row.Interest
		principal += row.ScheduledPrincipal + row.ExtraPrincipal
		payment += row.TotalPayment
		closing = row.ClosingBalance
		if row.Month%12 == 0 || i == len(r.schedule.Rows)-1 {
			emit(year, rate, opening, interest, principal, payment, closing)
		}
	}

	var total float64 = 0
	for _, w := range widths {
		total += w
	}
	r.pdf.CellFormat(total, 0, "", "T", 1, "", false, 0, "")
}

func (r *PDFLoanReport) drawTableHeader(widths []float64, headers []string) {
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFillColor(0, 51, 102)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
	r.pdf.SetFillColor(245, 247, 250)
}

func (r *PDFLoanReport) addComparisonPage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, "Strategy Comparison", "", 1, "L", false, 0, "")
	r.pdf.Ln(2)

	labelWidth := 48.0
	colWidth := (contentWidth - labelWidth) / float64(len(r.comparison.Outcomes))

	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.CellFormat(labelWidth, 7, "Metric", "1", 0, "L", true, 0, "")
	for _, o := range r.comparison.Outcomes {
		r.pdf.CellFormat(colWidth, 7, o.Strategy.ShortName(), "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.SetFillColor(245, 247, 250)

	fill := false
	row := func(label string, value func(*PurchaseResult) string) {
		r.pdf.CellFormat(labelWidth, 6, label, "LR", 0, "L", fill, 0, "")
		for _, o := range r.comparison.Outcomes {
			r.pdf.CellFormat(colWidth, 6, value(o.Purchase), "LR", 0, "R", fill, 0, "")
		}
		r.pdf.Ln(-1)
		fill = !fill
	}

	row("Total Interest", func(p *PurchaseResult) string { return FormatMoneyPDF(p.Schedule.Totals.Interest) })
	row("Total Fees", func(p *PurchaseResult) string { return FormatMoneyPDF(p.Schedule.Totals.TotalFees) })
	row("Cost of Credit", func(p *PurchaseResult) string { return FormatMoneyPDF(p.Schedule.Totals.CostOfCredit) })
	row("First-Year Payment", func(p *PurchaseResult) string { return FormatMoneyPDF(p.Schedule.Metrics.FirstYearAvgPayment) })
	row("Peak Payment", func(p *PurchaseResult) string { return FormatMoneyPDF(p.Schedule.Metrics.MaxMonthlyPayment) })
	row("Payoff Month", func(p *PurchaseResult) string {
		if p.Schedule.Metrics.PayoffMonth == 0 {
			return "-"
		}
		return strconv.Itoa(p.Schedule.Metrics.PayoffMonth)
	})
	r.pdf.CellFormat(contentWidth, 0, "", "T", 1, "", false, 0, "")

	best := r.comparison.Outcomes[r.comparison.BestIdx]
	r.pdf.Ln(8)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 102, 51)
	r.pdf.CellFormat(contentWidth, 8,
		fmt.Sprintf("Recommended: %s (cost of credit %s)",
			best.Strategy, FormatMoneyPDF(best.Purchase.Schedule.Totals.CostOfCredit)),
		"", 1, "L", false, 0, "")
}
