package report

import (
	"fmt"
	"strings"

	"OptionAnalyzer/internal/analyzer"
	"OptionAnalyzer/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money formats v as $1234.57.
func Money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// Percent formats a fraction as 4.00%.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Mul(hundred).StringFixed(2) + "%"
}

// FormatParameters renders the input parameters block.
func FormatParameters(sc model.Scenario) string {
	var b strings.Builder
	b.WriteString("Black-Scholes Pricing Model\n\n")
	b.WriteString(fmt.Sprintf("Current Asset Price: %s\n", Money(sc.Spot)))
	b.WriteString(fmt.Sprintf("Volatility: %s\n", Percent(sc.Volatility)))
	b.WriteString(fmt.Sprintf("Strike Price: %s\n", Money(sc.Strike)))
	b.WriteString(fmt.Sprintf("Risk Free Rate: %s\n", Percent(sc.Rate)))
	b.WriteString(fmt.Sprintf("Time To Maturity: %d days\n", sc.MaturityDays))
	b.WriteString(fmt.Sprintf("Purchase Price: %s\n", Money(sc.PurchasePrice)))
	return b.String()
}

// FormatValueBox renders the headline price for one option kind.
func FormatValueBox(kind model.OptionKind, value float64) string {
	return fmt.Sprintf("%s Value\n%s", strings.ToUpper(kind.String()), Money(value))
}

// FormatSummary renders both value boxes and the PnL range of each surface.
func FormatSummary(res *analyzer.Result) string {
	var b strings.Builder
	b.WriteString(FormatParameters(res.Scenario))
	b.WriteString("\n")
	for _, kind := range model.Kinds {
		hm := res.Heatmap(kind)
		value := res.CallValue
		if kind == model.Put {
			value = res.PutValue
		}
		b.WriteString(FormatValueBox(kind, value))
		b.WriteString(fmt.Sprintf("\nPnL range: %s .. %s (%s)\n\n", Money(hm.Min), Money(hm.Max), hm.Regime))
	}
	return b.String()
}

// FormatSaveConfirmation renders the message shown after a successful save.
func FormatSaveConfirmation(rec *model.CalculationRecord) string {
	return fmt.Sprintf("Calculation saved successfully! Calculation ID: %d (%d outputs)", rec.ID, len(rec.Outputs))
}

// FormatSaveError renders the message shown when saving fails.
func FormatSaveError(err error) string {
	return fmt.Sprintf("Error saving to database: %v", err)
}
