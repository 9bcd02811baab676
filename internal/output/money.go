package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vnPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND renders a whole-dong amount with Vietnamese digit grouping,
// e.g. 20.555.000 ₫
func FormatVND(amount decimal.Decimal) string {
	return FormatAmount(amount) + " ₫"
}

// FormatAmount is FormatVND without the currency sign
func FormatAmount(amount decimal.Decimal) string {
	return vnPrinter.Sprintf("%d", amount.Round(0).IntPart())
}

// FormatSigned prefixes positive amounts with a plus sign
func FormatSigned(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + FormatAmount(amount)
	}
	return FormatAmount(amount)
}
