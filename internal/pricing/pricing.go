// Package pricing holds the storefront's money arithmetic. Values are
// carried as decimals and only rounded to whole currency units at the end.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line is one priced entry of a cart or order.
type Line struct {
	Price    float64
	Discount float64 // percent, 0-100
	Quantity int
}

// UnitPrice is price * (1 - discount/100), unrounded.
func UnitPrice(price, discountPct float64) decimal.Decimal {
	return applyPercent(decimal.NewFromFloat(price), discountPct)
}

// DisplayPrice is the unit price rounded to a whole currency unit.
func DisplayPrice(price, discountPct float64) float64 {
	return Round(UnitPrice(price, discountPct))
}

// Subtotal sums unit price times quantity over lines without rounding.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		total = total.Add(UnitPrice(l.Price, l.Discount).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Total is the rounded Subtotal.
func Total(lines []Line) float64 {
	return Round(Subtotal(lines))
}

// ApplyCoupon takes pct off the unrounded subtotal and rounds once.
func ApplyCoupon(subtotal decimal.Decimal, pct float64) float64 {
	return Round(applyPercent(subtotal, pct))
}

// MinorUnits converts a whole amount to the gateway's smallest unit (paise).
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

func Round(d decimal.Decimal) float64 {
	f, _ := d.Round(0).Float64()
	return f
}

func applyPercent(amount decimal.Decimal, pct float64) decimal.Decimal {
	if pct == 0 {
		return amount
	}
	factor := hundred.Sub(decimal.NewFromFloat(pct)).Div(hundred)
	return amount.Mul(factor)
}
