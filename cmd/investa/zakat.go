package main

import (
	"fmt"

	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/modules/zakat"
	"github.com/spf13/cobra"
)

func newZakatCommand(a *app) *cobra.Command {
	fields := make(map[string]*string, len(zakat.Fields))

	cmd := &cobra.Command{
		Use:   "zakat",
		Short: "Calculate zakat due on the given holdings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]string, len(fields))
			for name, v := range fields {
				values[name] = *v
			}
			in, err := zakat.ParseInput(values)
			if err != nil {
				return err
			}
			result, err := zakat.Calculate(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Eligible wealth: %s\nZakat due: %s\n",
				domain.FormatAmount(result.Total), domain.FormatAmount(result.Due))
			return nil
		},
	}

	flagNames := map[string]string{
		"gold":        "gold",
		"cash":        "cash",
		"stocks":      "stocks",
		"real_estate": "real-estate",
		"other":       "other",
	}
	for _, name := range zakat.Fields {
		fields[name] = cmd.Flags().String(flagNames[name], "", fmt.Sprintf("value of %s holdings", flagNames[name]))
	}
	return cmd
}
