package decimal

import (
	"github.com/shopspring/decimal"
)

// Quantity is a population figure in thousands of people, held as a decimal so
// that display rounding is exact.
type Quantity struct {
	decimal.Decimal
}

// Display scales relative to one thousand people.
var (
	scaleTenThousand    = decimal.NewFromInt(10)
	scaleHundredMillion = decimal.NewFromInt(100000)
)

// NewQuantity creates a Quantity from a float64 number of thousands.
func NewQuantity(thousands float64) Quantity {
	return Quantity{decimal.NewFromFloat(thousands)}
}

// TenThousands expresses the quantity in units of ten thousand people.
func (q Quantity) TenThousands() decimal.Decimal {
	return q.Decimal.Div(scaleTenThousand)
}

// HundredMillions expresses the quantity in units of one hundred million people.
func (q Quantity) HundredMillions() decimal.Decimal {
	return q.Decimal.Div(scaleHundredMillion)
}

// AtLeastTenThousand reports whether the quantity reaches ten thousand people.
func (q Quantity) AtLeastTenThousand() bool {
	return q.Decimal.GreaterThanOrEqual(decimal.NewFromInt(100))
}

// AtLeastHundredMillion reports whether the quantity reaches one hundred million people.
func (q Quantity) AtLeastHundredMillion() bool {
	return q.Decimal.GreaterThanOrEqual(scaleHundredMillion)
}

// String returns the quantity in thousands rounded to whole numbers.
func (q Quantity) String() string {
	return q.Decimal.StringFixed(0)
}
