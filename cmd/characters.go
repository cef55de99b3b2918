package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/shindan/internal/compat"
	"github.com/abhisek/shindan/internal/quiz"
)

var charactersCmd = &cobra.Command{
	Use:   "characters [code]",
	Short: "List the 16 characters, or describe one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintf(out, "%-5s  %-22s  %s\n", "Code", "Name", "Subtitle")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, code := range compat.AllCodes() {
				c, ok := e.data.Character(code)
				if !ok {
					continue
				}
				fmt.Fprintf(out, "%-5s  %-22s  %s\n", c.Code, truncate(c.Icon+" "+c.Name, 22), c.Subtitle)
			}
			return nil
		}

		c, ok := e.data.Character(args[0])
		if !ok {
			return fmt.Errorf("unknown character code %q", args[0])
		}
		printCharacter(out, c)
		return nil
	},
}

func printCharacter(out io.Writer, c quiz.Character) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintf(out, "%s %s (%s)\n", c.Icon, c.Name, c.Code)
	if c.Subtitle != "" {
		fmt.Fprintln(out, c.Subtitle)
	}
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, c.Personality)

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(out, "\n%s\n", title)
		for _, it := range items {
			fmt.Fprintf(out, "  • %s\n", it)
		}
	}
	list("Strengths", c.Strengths)
	list("Weaknesses", c.Weaknesses)
	list("Suitable jobs", c.SuitableJobs)

	if c.HiddenFace != "" {
		fmt.Fprintf(out, "\nHidden side\n  %s\n", c.HiddenFace)
	}
	fmt.Fprintf(out, "\nAdvice\n  %s\n", c.Advice)

	s := c.Skills
	fmt.Fprintf(out, "\nSkills  leadership %d  communication %d  planning %d  creativity %d  teamwork %d  technical %d\n",
		s.Leadership, s.Communication, s.Planning, s.Creativity, s.Teamwork, s.Technical)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
