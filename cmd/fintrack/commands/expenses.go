package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// add <description> <amount>: record an expense; the category is picked from the description.
func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := appCtx.ledger.RecordExpense(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render(e.Confirmation()), badge(e.Category))
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := appCtx.ledger.Expenses(cmd.Context())
			if err != nil {
				return err
			}
			renderExpenses(cmd.OutOrStdout(), items, limit)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n expenses (0 for all)")
	return cmd
}

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show the spending prediction, alerts and top categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := appCtx.ledger.Insights(cmd.Context())
			if err != nil {
				return err
			}
			renderInsights(cmd.OutOrStdout(), in)
			return nil
		},
	}
}

// categorize <text>: preview the category a description would get, without recording it.
func categorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <text>",
		Short: "Show which category a description falls into",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := appCtx.ledger.Categorize(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if m.Keyword == "" {
				fmt.Fprintf(out, "%s %s\n", badge(m.Category), mutedStyle.Render("(no keyword matched)"))
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", badge(m.Category), mutedStyle.Render(fmt.Sprintf("(matched %q)", m.Keyword)))
			return nil
		},
	}
}
