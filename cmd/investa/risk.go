package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/modules/insights"
	"github.com/aristath/investa/internal/modules/risk"
	"github.com/spf13/cobra"
)

func newRiskCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Score the portfolio risk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.assetService()
			if err != nil {
				return err
			}
			all, err := svc.List()
			if err != nil {
				return err
			}

			report := risk.BuildReport(all)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	return cmd
}

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print assets, risk and goals as one JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			summary, err := insights.NewService(a.services, a.log).Summarize(sess)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}
}

func printReport(w io.Writer, report risk.Report) error {
	fmt.Fprintf(w, "Risk score: %d/100 (%s)\n", report.Score, report.Band)
	fmt.Fprintf(w, "%s\n\n", report.Tip)

	categories := make([]string, 0, len(report.Distribution))
	for c := range report.Distribution {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tVALUE")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\n", c, domain.FormatAmount(report.Distribution[c]))
	}
	fmt.Fprintf(tw, "Total\t%s\n", domain.FormatAmount(report.TotalValue))
	return tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
