package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanquote/internal/intake"
	"github.com/Simplici0/cleanquote/internal/pricing"
)

func computeCommand() *cli.Command {
	return &cli.Command{
		Name:  "compute",
		Usage: "Price a job description",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "job",
				Aliases:  []string{"j"},
				Usage:    "Path to the job description JSON (- for stdin)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "markup",
				Usage: "Redistribute a markup percentage across the line items",
			},
			&cli.StringFlag{
				Name:  "markdown",
				Usage: "Redistribute a markdown percentage across the line items",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "text",
				Usage:   "Output format (text, json)",
			},
		},
		Action: runCompute,
	}
}

type computeOutput struct {
	Breakdown  pricing.Breakdown         `json:"breakdown"`
	Adjustment *pricing.AdjustmentResult `json:"adjustment,omitempty"`
}

func runCompute(c *cli.Context) error {
	log := appLogger(c)

	output := c.String("output")
	if output != "text" && output != "json" {
		return fmt.Errorf("unknown output format %q", output)
	}

	adj, err := adjustmentFlags(c)
	if err != nil {
		return err
	}

	job, err := readJob(c.String("job"), c.App.Reader)
	if err != nil {
		var verr *intake.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				log.Error("invalid job field", zap.String("field", f.Field), zap.String("problem", f.Message))
			}
		}
		return err
	}

	b, err := pricing.Compute(job)
	if err != nil {
		return err
	}
	out := computeOutput{Breakdown: b}

	if adj != nil {
		res, err := pricing.Adjust(b, *adj)
		if err != nil {
			return err
		}
		out.Adjustment = &res
		log.Debug("adjustment applied",
			zap.String("direction", string(adj.Direction)),
			zap.String("percent", adj.Percent.String()),
			zap.String("transfer", res.TransferAmount.StringFixed(2)))
	}

	if output == "json" {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return writeText(c.App.Writer, out)
}

func adjustmentFlags(c *cli.Context) (*pricing.Adjustment, error) {
	up, down := c.String("markup"), c.String("markdown")
	if up != "" && down != "" {
		return nil, errors.New("--markup and --markdown are mutually exclusive")
	}

	raw, dir := up, pricing.Markup
	if down != "" {
		raw, dir = down, pricing.Markdown
	}
	if raw == "" {
		return nil, nil
	}

	pct, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse --%s: %w", dir, err)
	}
	adj := pricing.Adjustment{Percent: pct, Direction: dir}
	if err := intake.Adjustment(adj); err != nil {
		return nil, err
	}
	return &adj, nil
}

func readJob(path string, stdin io.Reader) (pricing.JobDescription, error) {
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		return intake.DecodeJob(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return pricing.JobDescription{}, fmt.Errorf("open job file: %w", err)
	}
	defer f.Close()
	return intake.DecodeJob(f)
}

func money(d decimal.Decimal) string {
	return "$" + humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

func writeText(w io.Writer, out computeOutput) error {
	b := out.Breakdown
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ITEM\tAMOUNT\tADJUSTED\t")
	for _, it := range pricing.Items() {
		v := b.Items.Get(it)
		if v.IsZero() && (out.Adjustment == nil || out.Adjustment.Items.Get(it).IsZero()) {
			continue
		}
		adjusted := ""
		if out.Adjustment != nil {
			adjusted = money(out.Adjustment.Items.Get(it))
		}
		name := it.String()
		if !it.Billable() {
			name += " (in base)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", name, money(v), adjusted)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nBefore markup:  %s\n", money(b.TotalBeforeMarkup))
	fmt.Fprintf(w, "Markup:         %s\n", money(b.MarkupAmount))
	fmt.Fprintf(w, "Sales tax:      %s\n", money(b.SalesTax))
	fmt.Fprintf(w, "Total:          %s\n", money(b.TotalPrice))
	fmt.Fprintf(w, "Per sq ft:      %s\n", money(b.PricePerSquareFoot))
	fmt.Fprintf(w, "Hours:          %d\n", b.EstimatedHours)

	if a := out.Adjustment; a != nil {
		fmt.Fprintf(w, "\nAdjusted (%s %s%%)\n", a.Adjustment.Direction, a.Adjustment.Percent)
		fmt.Fprintf(w, "Subtotal:       %s\n", money(a.Subtotal))
		fmt.Fprintf(w, "Sales tax:      %s\n", money(a.SalesTax))
		fmt.Fprintf(w, "Total:          %s\n", money(a.TotalPrice))
		if a.TransferAmount.IsPositive() {
			fmt.Fprintf(w, "Window to base: %s\n", money(a.TransferAmount))
		}
	}
	return nil
}
