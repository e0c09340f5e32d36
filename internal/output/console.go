package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	totalStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	noteStyle    = lipgloss.NewStyle().Faint(true)
)

// GenerateConsoleReport writes a styled, human-readable result to w:
// bases, component taxes, the lease breakdown when present, the debug
// block, and the full audit trail.
func (rg *ReportGenerator) GenerateConsoleReport(w io.Writer, result *domain.TaxCalculationResult) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Tax Calculation — %s (scheme %s, rules v%d)", result.StateCode, result.Scheme, result.RulesVersion)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Taxable Bases"))
	b.WriteString("\n")
	writeLine(&b, "Vehicle", result.Bases.VehicleBase)
	writeLine(&b, "Fees", result.Bases.FeesBase)
	writeLine(&b, "Products", result.Bases.ProductsBase)
	writeTotal(&b, "Total", result.Bases.TotalTaxableBase)

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Taxes"))
	b.WriteString("\n")
	for _, c := range result.Taxes.ComponentTaxes {
		writeLine(&b, fmt.Sprintf("%s (%s%%)", c.Label, c.Rate.Mul(decimal.NewFromInt(100)).String()), c.Amount)
	}
	writeTotal(&b, "Total", result.Taxes.TotalTax)

	if result.Lease != nil {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Lease Breakdown"))
		b.WriteString("\n")
		writeLine(&b, "Upfront base", result.Lease.UpfrontBase)
		writeLine(&b, "Upfront tax", result.Lease.UpfrontTaxes.TotalTax)
		writeLine(&b, "Per-payment base", result.Lease.PaymentBasePerPeriod)
		writeLine(&b, "Per-payment tax", result.Lease.PaymentTaxesPerPeriod.TotalTax)
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(pad("Payments")), valueStyle.Render(fmt.Sprintf("%d", result.Lease.PaymentCount))))
		writeTotal(&b, "Total over term", result.Lease.TotalTaxOverTerm)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Credits & Detail"))
	b.WriteString("\n")
	writeLine(&b, "Trade-in credit", result.Debug.TradeInCredit)
	writeLine(&b, "Rebates (non-taxable)", result.Debug.RebatesNonTaxable)
	writeLine(&b, "Rebates (taxable)", result.Debug.RebatesTaxable)
	writeLine(&b, "Reciprocity credit", result.Debug.ReciprocityCredit)
	for _, fee := range result.Debug.TaxableFees {
		writeLine(&b, fmt.Sprintf("Taxable fee %s", fee.Code), fee.Amount)
	}
	for _, fee := range result.Debug.SpecialFees {
		writeLine(&b, fmt.Sprintf("Special fee %s", fee.Code), fee.Amount)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Audit Trail"))
	b.WriteString("\n")
	for i, note := range result.Debug.Notes {
		b.WriteString(noteStyle.Render(fmt.Sprintf("  %2d. %s", i+1, note)))
		b.WriteString("\n")
	}

	_, err := fmt.Fprint(w, b.String())
	return err
}

func pad(label string) string {
	return fmt.Sprintf("%-24s", label)
}

func writeLine(b *strings.Builder, label string, amount decimal.Decimal) {
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(pad(label)), valueStyle.Render("$"+amount.StringFixed(2))))
}

func writeTotal(b *strings.Builder, label string, amount decimal.Decimal) {
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(pad(label)), totalStyle.Render("$"+amount.StringFixed(2))))
}
