// Package currencyutils provides amount parsing and locale-aware currency
// formatting shared by the ingest, insight and report packages.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪\s]|CHF|EUR|USD|GBP`)

// ParseAmount parses a string representation of an amount into a decimal value
// It handles various formats like "1,234.56", "1.234,56", "1234.56", "1234,56"
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts various currency string formats to a standard format that can be parsed by decimal.NewFromString
// Handles patterns like "CHF 1'234.56", "€1.234,56", "$1,234.56", "1 234,56", etc.
func StandardizeAmount(amountStr string) string {
	amountStr = currencySymbols.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// US format (1,234.56)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		// A trailing group of at most two digits is a decimal part (1234,56),
		// otherwise the comma separates thousands (1,234)
		parts := strings.Split(amountStr, ",")
		if len(parts) > 1 && len(parts[len(parts)-1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	// Remove apostrophes used as thousand separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")
	amountStr = strings.ReplaceAll(amountStr, "’", "")

	return amountStr
}

// FormatAmount formats a decimal amount with two decimal places and the currency
// code, without locale rules. Returns strings like "1234.56 CHF".
func FormatAmount(amount decimal.Decimal, currency string) string {
	formattedAmount := amount.StringFixed(2)
	if currency == "" {
		return formattedAmount
	}
	return formattedAmount + " " + strings.ToUpper(currency)
}

// FormatPercent renders a percentage with one decimal place, dropping a
// trailing ".0".
func FormatPercent(pct float64) string {
	s := decimal.NewFromFloat(pct).Round(1).String()
	return s + "%"
}
