package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/shindan/internal/export"
	"github.com/abhisek/shindan/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect saved quiz results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		ctx := cmd.Context()

		e, err := newEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()
		repo, err := e.resultRepo(ctx)
		if err != nil {
			return err
		}

		results, err := repo.List(ctx, limit)
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results saved yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-5s  %-22s  %s\n", "ID", "Saved", "Code", "Character", "Hint")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, r := range results {
			fmt.Fprintf(out, "%-36s  %-16s  %-5s  %-22s  %s\n",
				r.ID,
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				r.CharacterCode,
				truncate(r.CharacterName, 22),
				hintName(r.TypeHint))
		}
		return nil
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one result with its answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()
		repo, err := e.resultRepo(ctx)
		if err != nil {
			return err
		}

		r, err := repo.Get(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("result %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get result: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:         %s\n", r.ID)
		fmt.Fprintf(out, "Saved:      %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Character:  %s (%s)\n", r.CharacterName, r.CharacterCode)
		fmt.Fprintf(out, "Type hint:  %s\n", hintName(r.TypeHint))
		fmt.Fprintf(out, "Scores:     action %+d  social %+d  motivation %+d  thinking %+d\n",
			r.Scores.ActionStyle, r.Scores.SocialStyle, r.Scores.Motivation, r.Scores.Thinking)
		if r.Advice != "" {
			fmt.Fprintf(out, "Advice:     %s\n", r.Advice)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for i, a := range r.History {
			fmt.Fprintf(out, "%2d. [%s] %s\n    → %s\n", i+1, a.QuestionID, a.Question, a.SelectedAnswer)
		}
		return nil
	},
}

var resultsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count results per character",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()
		repo, err := e.resultRepo(ctx)
		if err != nil {
			return err
		}

		stats, err := repo.CharacterStats(ctx)
		if err != nil {
			return fmt.Errorf("character stats: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No results saved yet.")
			return nil
		}

		var total int
		for _, s := range stats {
			total += s.Count
		}
		fmt.Fprintf(out, "%-5s  %-22s  %6s  %6s\n", "Code", "Character", "Count", "Share")
		fmt.Fprintln(out, strings.Repeat("─", 46))
		for _, s := range stats {
			name := s.Code
			if c, ok := e.data.Character(s.Code); ok {
				name = c.Name
			}
			fmt.Fprintf(out, "%-5s  %-22s  %6d  %5.1f%%\n",
				s.Code, truncate(name, 22), s.Count, 100*float64(s.Count)/float64(total))
		}
		fmt.Fprintln(out, strings.Repeat("─", 46))
		fmt.Fprintf(out, "%-5s  %-22s  %6d\n", "TOTAL", "", total)
		return nil
	},
}

var resultsExportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export results to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		ctx := cmd.Context()

		e, err := newEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()
		repo, err := e.resultRepo(ctx)
		if err != nil {
			return err
		}
		results, err := repo.List(ctx, limit)
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create %s: %w", args[0], err)
		}
		if err := export.WriteResults(f, results); err != nil {
			f.Close()
			return fmt.Errorf("write workbook: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d results to %s\n", len(results), args[0])
		return nil
	},
}

func init() {
	resultsListCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
	resultsExportCmd.Flags().IntP("limit", "n", 1000, "Maximum number of results to export")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsShowCmd)
	resultsCmd.AddCommand(resultsStatsCmd)
	resultsCmd.AddCommand(resultsExportCmd)
}
