package dashboard

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts in the configured currency and plain numbers
// with locale grouping. It is fixed to one currency for the session; there
// is no conversion.
type Formatter struct {
	code     string
	fraction int32
	printer  *message.Printer
}

func NewFormatter(currencyCode string) Formatter {
	c := money.GetCurrency(currencyCode)
	if c == nil {
		c = money.GetCurrency(money.EUR)
	}
	return Formatter{
		code:     c.Code,
		fraction: int32(c.Fraction),
		printer:  message.NewPrinter(language.English),
	}
}

// Money renders a signed decimal amount as a currency string.
func (f Formatter) Money(d decimal.Decimal) string {
	minor := d.Shift(f.fraction).Round(0).IntPart()
	return money.New(minor, f.code).Display()
}

// Count renders an integer with thousands grouping.
func (f Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}
