package format

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders a USD amount with thousands separators and two
// decimals: 1800 -> "$1,800.00", -5 -> "-$5.00".
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", math.Abs(amount))
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// formatQuantity renders hour counts without trailing zeros.
func formatQuantity(v float64) string {
	return humanize.Ftoa(v)
}
