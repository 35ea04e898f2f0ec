package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/llm"
	"github.com/abhisek/hanzi/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect sentence-generation requests and token usage",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}
		if failed {
			kept := events[:0]
			for _, e := range events {
				if !e.Success {
					kept = append(kept, e)
				}
			}
			events = kept
		}
		printLLMEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and response of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return usageErrorf("invalid event id %q", args[0])
		}

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get llm event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no llm event with id %d", id)
		}
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage by purpose and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.EventRepo()
		purposes, err := repo.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		models, err := repo.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}
		printLLMUsage(cmd.OutOrStdout(), purposes, models)
		return nil
	},
}

func printLLMEvents(w io.Writer, events []store.LLMRequestEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM requests recorded.")
		return
	}
	row := "%-5v  %-19v  %-12v  %-28v  %6v  %6v  %7v  %9v  %v\n"
	fmt.Fprintf(w, row, "ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
	fmt.Fprintln(w, rule(104))
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗ " + truncate(e.ErrorMessage, 40)
		}
		fmt.Fprintf(w, row, e.ID, e.Timestamp.Local().Format(timeLayout), truncate(e.Purpose, 12),
			truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs,
			estimate(e.Model, e.InputTokens, e.OutputTokens), ok)
	}
}

func printLLMEvent(w io.Writer, e *store.LLMRequestEvent) {
	fields := []struct{ k, v string }{
		{"ID", strconv.Itoa(e.ID)},
		{"Time", e.Timestamp.Local().Format(timeLayout)},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Tokens", fmt.Sprintf("%d in / %d out (%s)", e.InputTokens, e.OutputTokens,
			estimate(e.Model, e.InputTokens, e.OutputTokens))},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Success", strconv.FormatBool(e.Success)},
		{"Error", e.ErrorMessage},
	}
	for _, f := range fields {
		if f.v != "" {
			fmt.Fprintf(w, "%-10s %s\n", f.k+":", f.v)
		}
	}
	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		body := strings.TrimSpace(part.body)
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", rule(60), part.title, rule(60), body)
	}
}

func printLLMUsage(w io.Writer, purposes []store.PurposeUsage, models []store.ModelUsage) {
	if len(purposes) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded.")
		return
	}

	row := "%-16v  %6v  %10v  %10v  %10v  %8v\n"
	fmt.Fprintln(w, "Usage by purpose")
	fmt.Fprintf(w, row, "Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
	fmt.Fprintln(w, rule(72))
	var calls, in, out int
	for _, p := range purposes {
		fmt.Fprintf(w, row, truncate(p.Purpose, 16), p.Calls, p.InputTokens, p.OutputTokens,
			p.InputTokens+p.OutputTokens, p.AvgLatencyMs)
		calls += p.Calls
		in += p.InputTokens
		out += p.OutputTokens
	}
	fmt.Fprintln(w, rule(72))
	fmt.Fprintf(w, row, "TOTAL", calls, in, out, in+out, "")

	if len(models) == 0 {
		return
	}
	row = "%-32v  %6v  %10v  %10v  %10v\n"
	fmt.Fprintln(w, "\nEstimated cost (USD)")
	fmt.Fprintf(w, row, "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, rule(76))
	var total float64
	var unpriced []string
	for _, m := range models {
		price := llm.LookupCost(m.Model)
		cost := "?"
		if price == nil {
			unpriced = append(unpriced, m.Model)
		} else {
			c := price.Cost(m.InputTokens, m.OutputTokens)
			total += c
			cost = formatCost(c)
		}
		fmt.Fprintf(w, row, truncate(m.Model, 32), m.Calls, m.InputTokens, m.OutputTokens, cost)
	}
	fmt.Fprintln(w, rule(76))
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, row, label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo price listed for: %s\n", strings.Join(unpriced, ", "))
	}
}

// estimate prices one request, or "?" for models without a listed price.
func estimate(model string, in, out int) string {
	if p := llm.LookupCost(model); p != nil {
		return formatCost(p.Cost(in, out))
	}
	return "?"
}

func rule(n int) string { return strings.Repeat("─", n) }

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// openEventStore opens only the database; the llm commands never load
// decks or mastery.
func openEventStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openStore(cfg)
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "only requests with this purpose (e.g. sentence)")
	llmListCmd.Flags().Bool("failed", false, "only failed requests")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
