package order

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in US cents.
type Money int64

var printer = message.NewPrinter(language.AmericanEnglish)

// Dollars builds a Money value from a dollar amount such as 12.99.
func Dollars(d float64) Money {
	if d < 0 {
		return Money(d*100 - 0.5)
	}
	return Money(d*100 + 0.5)
}

func (m Money) Times(n int) Money { return m * Money(n) }

// String formats the amount for display, e.g. "$12.99".
func (m Money) String() string {
	return printer.Sprintf("$%.2f", float64(m)/100)
}
