package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/shindan/internal/llm"
	"github.com/abhisek/shindan/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

// openEvents builds the env and its LLM audit log.
func openEvents(cmd *cobra.Command) (*env, store.EventRepo, error) {
	e, err := newEnv(cmd, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	events, err := e.eventRepo()
	if err != nil {
		e.Close()
		return nil, nil, err
	}
	return e, events, nil
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		e, events, err := openEvents(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		records, err := events.QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Provider", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 112))
		for _, r := range records {
			ok := "✓"
			if !r.Success {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(r.Provider, 10),
				truncate(r.Purpose, 10),
				truncate(r.Model, 28),
				r.InputTokens,
				r.OutputTokens,
				r.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, events, err := openEvents(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		r, err := events.GetLLMEvent(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("event %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		printEvent(cmd.OutOrStdout(), r)
		return nil
	},
}

func printEvent(out io.Writer, r *store.LLMRequestEventRecord) {
	fmt.Fprintf(out, "ID:        %d\n", r.ID)
	fmt.Fprintf(out, "Time:      %s\n", r.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Provider:  %s\n", r.Provider)
	fmt.Fprintf(out, "Model:     %s\n", r.Model)
	fmt.Fprintf(out, "Purpose:   %s\n", r.Purpose)
	fmt.Fprintf(out, "Tokens:    %d in / %d out\n", r.InputTokens, r.OutputTokens)
	fmt.Fprintf(out, "Latency:   %dms\n", r.LatencyMs)
	fmt.Fprintf(out, "Success:   %v\n", r.Success)
	if r.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:     %s\n", r.ErrorMessage)
	}

	sep := strings.Repeat("─", 60)
	for _, part := range []struct{ title, body string }{
		{"REQUEST", r.RequestBody},
		{"RESPONSE", r.ResponseBody},
	} {
		fmt.Fprintf(out, "\n%s\n%s\n%s\n", sep, part.title, sep)
		if part.body == "" {
			fmt.Fprintln(out, "(not captured)")
		} else {
			fmt.Fprintln(out, part.body)
		}
	}
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, events, err := openEvents(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		stats, err := events.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		printPurposeUsage(out, stats)

		models, err := events.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(models) > 0 {
			fmt.Fprintln(out)
			printModelCost(out, models)
		}
		return nil
	},
}

func printPurposeUsage(out io.Writer, stats []store.LLMUsageStats) {
	rule := strings.Repeat("─", 72)
	fmt.Fprintln(out, "Usage by Purpose")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(out, rule)

	var calls, in, outTok int
	for _, st := range stats {
		fmt.Fprintf(out, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
			st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
		calls += st.Calls
		in += st.InputTokens
		outTok += st.OutputTokens
	}
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, outTok, in+outTok)
}

func printModelCost(out io.Writer, models []store.LLMModelUsage) {
	rule := strings.Repeat("─", 72)
	fmt.Fprintln(out, "Estimated Cost (USD)")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(out, rule)

	var total float64
	var unknown []string
	for _, mu := range models {
		price, ok := llm.PriceFor(mu.Model)
		if !ok {
			unknown = append(unknown, mu.Model)
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		c := price.Estimate(mu.InputTokens, mu.OutputTokens)
		total += c
		fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
	}

	fmt.Fprintln(out, rule)
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
	if len(unknown) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. advice)")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
