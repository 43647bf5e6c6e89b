package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

var eventsCmd = &cobra.Command{
	Use:   "events <name>",
	Short: "Display the event journal for a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvents,
}

var eventsJSON bool

func init() {
	eventsCmd.Flags().BoolVar(&eventsJSON, "jsonl", false, "Output events as JSON lines")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := workspace.ValidateName(name); err != nil {
		return err
	}

	events, err := app.Default.Journal.Events(name)
	if err != nil {
		return fmt.Errorf("failed to read event journal: %w", err)
	}

	if len(events) == 0 {
		logInfo("No events found for workspace %s", name)
		return nil
	}

	w := out(cmd)
	for _, e := range events {
		if eventsJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(w, string(data))
			continue
		}

		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		line := fmt.Sprintf("[%s] %-7s %s", ts, e.Type, e.Workspace)
		if e.Details != "" {
			line += " (" + e.Details + ")"
		}
		if counts := formatCounts(e.Counts); counts != "" {
			line += " " + counts
		}
		fmt.Fprintln(w, line)
	}

	return nil
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k, v := range counts {
		if v != 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}
