package service

import (
	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/repository"
)

// LineSubtotal computes unit price times quantity, rounded half-up to the
// currency's minor unit.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// OrderTotal sums line subtotals over priced cart lines. Each line is rounded
// before summing so the total always equals the sum of the stored subtotals.
func OrderTotal(lines []repository.PricedLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineSubtotal(line.UnitPrice, line.Quantity))
	}
	return total.Round(2)
}
