package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/Simplici0/cleanquote/internal/rates"
)

func ratesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rates",
		Usage: "Print the rate tables",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "text",
				Usage:   "Output format (text, json)",
			},
		},
		Action: func(c *cli.Context) error {
			listing := rates.Standard().Listing()

			switch c.String("output") {
			case "json":
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(listing)
			case "text":
			default:
				return fmt.Errorf("unknown output format %q", c.String("output"))
			}

			tables := make([]string, 0, len(listing))
			for name := range listing {
				tables = append(tables, name)
			}
			sort.Strings(tables)

			tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			for _, name := range tables {
				fmt.Fprintf(tw, "%s\n", name)
				for _, e := range listing[name] {
					fmt.Fprintf(tw, "  %s\t%s\n", e.Key, e.Value)
				}
			}
			return tw.Flush()
		},
	}
}
