package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/selector"
	"github.com/abhisek/shindan/internal/session"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the question bank and simulate every hint",
	Long: `Load the question bank, then play a full quiz for every type hint
(and for no hint) with each fixed answer strategy, checking that every
path stays within the configured axis balance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		verbose, _ := cmd.Flags().GetBool("verbose")
		out := cmd.OutOrStdout()
		sel := e.newSelector()

		fmt.Fprintf(out, "Bank %s: %d slots, %d characters\n\n",
			e.data.Bank.Version, e.data.Bank.TotalSlots(), len(e.data.Characters))

		hints := append([]string{""}, quiz.TypeHints()...)
		var failed, total int
		for _, hint := range hints {
			for _, st := range session.Strategies() {
				total++
				s, err := session.Simulate(sel, hint, st)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL  %-5s %-10s %v\n", hintName(hint), st.Name, err)
					continue
				}
				report, err := s.Validate()
				if err != nil {
					return err
				}
				if !report.Valid {
					failed++
				}
				if !report.Valid || verbose {
					fmt.Fprintf(out, "%s  %-5s %-10s %s  %s\n",
						okLabel(report.Valid), hintName(hint), st.Name, quiz.TypeCode(s.Scores), coverage(report))
				}
			}
		}

		fmt.Fprintf(out, "\n%d/%d paths balanced\n", total-failed, total)
		if failed > 0 {
			return fmt.Errorf("%d unbalanced paths", failed)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolP("verbose", "v", false, "Print every path, not only failures")
}

func hintName(h string) string {
	if h == "" {
		return "-"
	}
	return h
}

func okLabel(ok bool) string {
	if ok {
		return "ok  "
	}
	return "FAIL"
}

func coverage(r selector.PathReport) string {
	parts := make([]string, 0, len(r.PerAxis))
	for _, a := range quiz.AllAxes() {
		ar := r.PerAxis[a]
		parts = append(parts, fmt.Sprintf("%s=%d[%d..%d]", a, ar.Count, ar.Min, ar.Max))
	}
	return strings.Join(parts, " ")
}
