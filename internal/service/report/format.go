package report

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency prints v with two decimals and thousand separators, e.g. 1,234.56.
func FormatCurrency(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatQuantity prints v without trailing zeros, e.g. 200 or 2.5.
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCo2PerKg(v float64) string {
	return fmt.Sprintf("%.2f kg CO2/kg", v)
}

func formatCo2PerTonne(v float64) string {
	return fmt.Sprintf("%.0f kg CO2/t", v)
}

func formatCircularity(v float64) string {
	return fmt.Sprintf("%.1f/100", v)
}

func formatRedMud(tonnes, quantity float64) string {
	return fmt.Sprintf("Red mud generation estimate: %.2f t (for %s t Al).", tonnes, FormatQuantity(quantity))
}

func formatSO2(kg float64) string {
	return fmt.Sprintf("SO2 estimate: %.1f kg - recommend capture and conversion to sulfuric acid.", kg)
}
