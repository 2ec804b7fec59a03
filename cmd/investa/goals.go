package main

import (
	"fmt"

	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/modules/goals"
	"github.com/aristath/investa/internal/utils"
	"github.com/spf13/cobra"
)

func (a *app) goalService() (*goals.Service, error) {
	sess, err := a.session()
	if err != nil {
		return nil, err
	}
	return a.services.Goals(sess)
}

func newGoalsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Track savings goals",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List goals and their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.goalService()
			if err != nil {
				return err
			}
			views, err := svc.List()
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "#\tTYPE\tTARGET\tDEADLINE\tPROGRESS\tDONE")
			for i, g := range views {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.2f%%\n",
					i, g.Type, domain.FormatAmount(g.TargetAmount), g.Deadline,
					domain.FormatAmount(g.Progress), g.ProgressPct)
			}
			return tw.Flush()
		},
	}

	var goalType, target, deadline, progress string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.goalService()
			if err != nil {
				return err
			}
			g, err := svc.Add(goalType, target, deadline, progress)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s goal of %s by %s\n", g.Type, domain.FormatAmount(g.TargetAmount), g.Deadline)
			return nil
		},
	}
	add.Flags().StringVarP(&goalType, "type", "t", domain.GoalRetirement, "goal type")
	add.Flags().StringVar(&target, "target", "", "target amount")
	add.Flags().StringVarP(&deadline, "deadline", "d", "", "deadline (YYYY-MM-DD)")
	add.Flags().StringVarP(&progress, "progress", "p", "0", "amount saved so far")

	remove := &cobra.Command{
		Use:   "remove INDEX",
		Short: "Remove the goal at INDEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := utils.ParseIndex(args[0])
			if err != nil {
				return err
			}
			svc, err := a.goalService()
			if err != nil {
				return err
			}
			g, err := svc.Remove(idx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s goal due %s\n", g.Type, g.Deadline)
			return nil
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}
