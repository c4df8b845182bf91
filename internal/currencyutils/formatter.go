package currencyutils

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used for currencies missing from the locale table.
const DefaultLocale = "en-US"

// DefaultCurrencyLocales returns the reference currency -> locale table.
func DefaultCurrencyLocales() map[string]string {
	return map[string]string{
		"USD": "en-US",
		"EUR": "de-DE",
		"GBP": "en-GB",
		"CHF": "de-CH",
		"JPY": "ja-JP",
		"INR": "en-IN",
		"CAD": "en-CA",
		"AUD": "en-AU",
		"BRL": "pt-BR",
		"MXN": "es-MX",
	}
}

// Formatter renders amounts with the symbol, grouping and decimal rules of the
// locale configured for each currency.
type Formatter struct {
	defaultTag language.Tag
	locales    map[string]language.Tag

	mu       sync.Mutex
	printers map[language.Tag]*message.Printer
}

// NewFormatter creates a Formatter. Locale tags that fail to parse are ignored so
// the affected currencies fall back to defaultLocale.
func NewFormatter(defaultLocale string, locales map[string]string) *Formatter {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		def = language.MustParse(DefaultLocale)
	}

	tags := make(map[string]language.Tag, len(locales))
	for code, loc := range locales {
		tag, err := language.Parse(loc)
		if err != nil {
			continue
		}
		tags[strings.ToUpper(code)] = tag
	}

	return &Formatter{
		defaultTag: def,
		locales:    tags,
		printers:   make(map[language.Tag]*message.Printer),
	}
}

// NewDefaultFormatter creates a Formatter over DefaultCurrencyLocales.
func NewDefaultFormatter() *Formatter {
	return NewFormatter(DefaultLocale, DefaultCurrencyLocales())
}

// Locale returns the locale used for the currency.
func (f *Formatter) Locale(currencyCode string) language.Tag {
	if tag, ok := f.locales[strings.ToUpper(currencyCode)]; ok {
		return tag
	}
	return f.defaultTag
}

// Format renders amount in currencyCode, e.g. "$ 1,234.50" or "€ 1.234,50".
// Unknown ISO codes fall back to FormatAmount.
func (f *Formatter) Format(amount decimal.Decimal, currencyCode string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return FormatAmount(amount, currencyCode)
	}

	p := f.printer(f.Locale(currencyCode))
	return p.Sprint(currency.Symbol(unit.Amount(amount.InexactFloat64())))
}

func (f *Formatter) printer(tag language.Tag) *message.Printer {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.printers[tag]; ok {
		return p
	}
	p := message.NewPrinter(tag)
	f.printers[tag] = p
	return p
}
