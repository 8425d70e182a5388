package view

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// en-US display symbols for the common codes; others print the ISO code
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
	"INR": "₹",
	"CNY": "CN¥",
}

// FormatCurrency formats amount as en-US currency, e.g. "$15,000.00".
// Unknown codes fall back to two decimals and the code as prefix.
func FormatCurrency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))

	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}

	prefix, ok := currencySymbols[code]
	if !ok {
		prefix = code + " "
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}

	digits := printer.Sprintf("%v", number.Decimal(amount, number.Scale(scale)))
	return sign + prefix + digits
}

// FormatQuantity prints a share count without trailing zeros
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// FormatDate renders an ISO date (YYYY-MM-DD) as en-US M/D/YYYY.
// Anything unparseable is returned unchanged.
func FormatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("1/2/2006")
}
