package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/core"
)

// goal <amount>: replace the savings goal.
func goalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal <amount>",
		Short: "Set the savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appCtx.ledger.SetGoal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successStyle.Render("Your new savings goal is "+s.Goal.Display()))
			renderSavings(out, s)
			return nil
		},
	}
}

// save <amount>: add a deposit to the current savings.
func saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <amount>",
		Short: "Add money to your savings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deposit, err := core.ParseNonNegativeAmount(args[0])
			if err != nil {
				return err
			}
			s, err := appCtx.ledger.AddSavings(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successStyle.Render("Added "+deposit.Display()+" to your savings"))
			renderSavings(out, s)
			return nil
		},
	}
}

func savingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "savings",
		Short: "Show savings progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appCtx.ledger.Savings(cmd.Context())
			if err != nil {
				return err
			}
			renderSavings(cmd.OutOrStdout(), s)
			return nil
		},
	}
}
