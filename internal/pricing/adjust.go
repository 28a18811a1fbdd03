package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrUnknownDirection = errors.New("unknown adjustment direction")

// Direction is either a markup or a markdown.
type Direction string

const (
	Markup   Direction = "markup"
	Markdown Direction = "markdown"
)

func (d Direction) Valid() bool {
	return d == Markup || d == Markdown
}

// Adjustment is a user-chosen percentage applied to a canonical breakdown. Only one
// direction applies per call.
type Adjustment struct {
	Percent   decimal.Decimal `json:"percent"`
	Direction Direction       `json:"direction"`
}

// SignedPercent returns +Percent for a markup and -Percent for a markdown.
func (a Adjustment) SignedPercent() (decimal.Decimal, error) {
	switch a.Direction {
	case Markup:
		return a.Percent, nil
	case Markdown:
		return a.Percent.Neg(), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownDirection, a.Direction)
}

// AdjustmentResult holds redistributed line items and the totals recomputed from them.
type AdjustmentResult struct {
	Items            LineItems       `json:"line_items"`
	Adjustment       Adjustment      `json:"adjustment"`
	AdjustmentAmount decimal.Decimal `json:"adjustment_amount"`
	TransferAmount   decimal.Decimal `json:"transfer_amount"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	SalesTax         decimal.Decimal `json:"sales_tax"`
	TotalPrice       decimal.Decimal `json:"total_price"`
}

// Adjust applies a markup or markdown to a canonical breakdown with the standard rates.
func Adjust(b Breakdown, adj Adjustment) (AdjustmentResult, error) {
	return defaultCalculator.Adjust(b, adj)
}

// AdjustItems redistributes a signed percentage with the standard rates.
func AdjustItems(items LineItems, sel Selection, signedPercent decimal.Decimal, windowsCharged bool) AdjustmentResult {
	return defaultCalculator.AdjustItems(items, sel, signedPercent, windowsCharged)
}

// Adjust redistributes adj across the breakdown's participating items. The breakdown must be
// the canonical one produced by Compute; results are never fed back in.
func (c *Calculator) Adjust(b Breakdown, adj Adjustment) (AdjustmentResult, error) {
	signed, err := adj.SignedPercent()
	if err != nil {
		return AdjustmentResult{}, fmt.Errorf("apply adjustment: %w", err)
	}
	res := c.AdjustItems(b.Items, b.Participating, signed, b.WindowsCharged)
	res.Adjustment = adj
	return res, nil
}

// AdjustItems spreads signedPercent of the selected items' total over those items in
// proportion to their values. Items outside the selection keep their value. When both the
// base price and a charged window line take part, half of the window line's share is moved
// to the base price.
//
// A selection that sums to zero is returned unchanged.
func (c *Calculator) AdjustItems(items LineItems, sel Selection, signedPercent decimal.Decimal, windowsCharged bool) AdjustmentResult {
	res := AdjustmentResult{
		Items:      items,
		Adjustment: adjustmentFromSigned(signedPercent),
	}

	total := items.Sum(sel)
	if total.IsZero() {
		return c.withTotals(res)
	}

	amount := total.Mul(signedPercent).Div(hundred)
	res.AdjustmentAmount = roundCents(amount)

	largest := -1
	for i := range items {
		if !sel[i] {
			continue
		}
		share := amount.Mul(items[i]).DivRound(total, shareScale)
		res.Items[i] = roundCents(items[i].Add(share))
		if largest < 0 || res.Items[i].GreaterThan(res.Items[largest]) {
			largest = i
		}
	}

	// Per-item rounding can leave a cent or two; the largest item absorbs it.
	target := roundCents(total.Add(amount))
	if diff := target.Sub(res.Items.Sum(sel)); !diff.IsZero() {
		res.Items[largest] = res.Items[largest].Add(diff)
	}

	if sel[BasePrice] && sel[WindowCleaningCost] && windowsCharged &&
		!signedPercent.IsZero() && items[BasePrice].IsPositive() {
		windowShare := amount.Mul(items[WindowCleaningCost]).DivRound(total, shareScale)
		transfer := roundCents(windowShare.Mul(half))
		res.Items[WindowCleaningCost] = res.Items[WindowCleaningCost].Sub(transfer)
		res.Items[BasePrice] = res.Items[BasePrice].Add(transfer)
		res.TransferAmount = transfer
	}

	return c.withTotals(res)
}

func (c *Calculator) withTotals(res AdjustmentResult) AdjustmentResult {
	res.Subtotal = res.Items.BillableSum()
	res.SalesTax = roundCents(res.Subtotal.Mul(c.rates.SalesTaxRate))
	res.TotalPrice = res.Subtotal.Add(res.SalesTax)
	return res
}

func adjustmentFromSigned(signed decimal.Decimal) Adjustment {
	if signed.IsNegative() {
		return Adjustment{Percent: signed.Neg(), Direction: Markdown}
	}
	return Adjustment{Percent: signed, Direction: Markup}
}
