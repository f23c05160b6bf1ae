package order

import "github.com/shopspring/decimal"

// PricedLine is anything that contributes quantity × unit price to an order
type PricedLine interface {
	LineQuantity() int
	LineUnitPrice() decimal.Decimal
}

// LineTotal returns quantity × unitPrice
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Subtotal sums the line totals of all lines
func Subtotal[L PricedLine](lines []L) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineTotal(l.LineQuantity(), l.LineUnitPrice()))
	}
	return sum
}

// OrderTotal returns the subtotal rounded to whole currency units plus the shipping fee
func OrderTotal[L PricedLine](lines []L, shippingFee decimal.Decimal) decimal.Decimal {
	return Subtotal(lines).Round(0).Add(shippingFee)
}
