package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/shindan/internal/compat"
)

var compatCmd = &cobra.Command{
	Use:   "compat <code> <code>",
	Short: "Show how well two characters work together",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := compat.Check(args[0], args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s × %s: %d%% (%s)\n", r.CodeA, r.CodeB, r.Percentage, r.Tier)
		fmt.Fprintln(out, r.Message)
		for _, d := range r.Details {
			fmt.Fprintf(out, "  • %s\n", d)
		}
		return nil
	},
}
