package quotes

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/cleanquote/internal/pricing"
)

func money(d decimal.Decimal) string {
	return "$" + humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// Text renders a plain-text summary of a saved quote for pasting into email.
func Text(q Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Quote %s: %s\n", q.Number, q.Title)
	fmt.Fprintf(&b, "Date: %s\n", q.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total: %s\n", money(q.TotalPrice))

	job := q.Job
	b.WriteString("\nJob:\n")
	fmt.Fprintf(&b, "- Project: %s, %s clean (%s)\n", job.ProjectType, job.CleaningType, job.ServiceCategory)
	fmt.Fprintf(&b, "- Area: %s sq ft\n", humanize.Commaf(job.SquareFootage))
	if job.DistanceMiles > 0 {
		fmt.Fprintf(&b, "- Travel: %s miles\n", humanize.Commaf(job.DistanceMiles))
	}
	if n := job.TotalWindows(); job.WindowCleaning && n > 0 {
		fmt.Fprintf(&b, "- Windows: %d\n", n)
	}
	if job.Overnight {
		fmt.Fprintf(&b, "- Overnight: %d nights, crew of %d\n", job.Nights, job.CrewSize)
	}
	fmt.Fprintf(&b, "- Urgency: %d\n", job.UrgencyLevel)

	items := q.Breakdown.Items
	if q.Adjustment != nil {
		items = q.Adjustment.Items
	}
	b.WriteString("\nLine items:\n")
	for _, it := range pricing.Items() {
		v := items.Get(it)
		if v.IsZero() {
			continue
		}
		name := it.String()
		if !it.Billable() {
			name += " (in base)"
		}
		fmt.Fprintf(&b, "- %s: %s\n", name, money(v))
	}

	b.WriteString("\nTotals:\n")
	if adj := q.Adjustment; adj != nil {
		fmt.Fprintf(&b, "- Adjustment: %s %s%%\n", adj.Adjustment.Direction, adj.Adjustment.Percent.String())
		fmt.Fprintf(&b, "- Subtotal: %s\n", money(adj.Subtotal))
		fmt.Fprintf(&b, "- Sales tax: %s\n", money(adj.SalesTax))
		fmt.Fprintf(&b, "- Total: %s\n", money(adj.TotalPrice))
	} else {
		bd := q.Breakdown
		fmt.Fprintf(&b, "- Before markup: %s\n", money(bd.TotalBeforeMarkup))
		if bd.MarkupAmount.IsPositive() {
			fmt.Fprintf(&b, "- Markup: %s\n", money(bd.MarkupAmount))
		}
		fmt.Fprintf(&b, "- Sales tax: %s\n", money(bd.SalesTax))
		fmt.Fprintf(&b, "- Total: %s\n", money(bd.TotalPrice))
	}
	fmt.Fprintf(&b, "- Estimated hours: %d\n", q.Breakdown.EstimatedHours)

	if q.Notes != "" {
		fmt.Fprintf(&b, "\nNotes:\n%s\n", q.Notes)
	}
	return b.String()
}
