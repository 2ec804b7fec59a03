package main

import (
	"fmt"

	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/modules/assets"
	"github.com/aristath/investa/internal/utils"
	"github.com/spf13/cobra"
)

func (a *app) assetService() (*assets.Service, error) {
	sess, err := a.session()
	if err != nil {
		return nil, err
	}
	return a.services.Assets(sess)
}

func newAssetsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List and edit assets",
	}

	var category, name, value string
	addFlags := func(c *cobra.Command) {
		c.Flags().StringVarP(&category, "category", "c", "", "asset category, e.g. Stocks or Gold")
		c.Flags().StringVarP(&name, "name", "n", "", "asset name")
		c.Flags().StringVarP(&value, "value", "v", "", "asset value")
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List assets with their positions",
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

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "#\tCATEGORY\tNAME\tVALUE")
			for i, asset := range all {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, asset.Category, asset.Name, domain.FormatAmount(asset.Value))
			}
			fmt.Fprintf(tw, "\t\tTotal\t%s\n", domain.FormatAmount(assets.Total(all)))
			return tw.Flush()
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add an asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.assetService()
			if err != nil {
				return err
			}
			asset, err := svc.Add(category, name, value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) worth %s\n", asset.Name, asset.Category, domain.FormatAmount(asset.Value))
			return nil
		},
	}
	addFlags(add)

	edit := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Replace the asset at INDEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := utils.ParseIndex(args[0])
			if err != nil {
				return err
			}
			svc, err := a.assetService()
			if err != nil {
				return err
			}
			asset, err := svc.Update(idx, category, name, value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d: %s (%s) worth %s\n", idx, asset.Name, asset.Category, domain.FormatAmount(asset.Value))
			return nil
		},
	}
	addFlags(edit)

	remove := &cobra.Command{
		Use:   "remove INDEX",
		Short: "Remove the asset at INDEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := utils.ParseIndex(args[0])
			if err != nil {
				return err
			}
			svc, err := a.assetService()
			if err != nil {
				return err
			}
			asset, err := svc.Remove(idx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", asset.Name)
			return nil
		},
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear assets without --yes")
			}
			svc, err := a.assetService()
			if err != nil {
				return err
			}
			if err := svc.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All assets cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")

	cmd.AddCommand(list, add, edit, remove, clearCmd)
	return cmd
}
