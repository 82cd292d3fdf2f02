package dashboard

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const displayDate = "Jan 2, 2006"

func formatMoney(d decimal.Decimal) string {
	amount := d.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", amount.InexactFloat64())
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDate)
}

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}
