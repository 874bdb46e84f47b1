package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/nao1215/pageaudit/internal/config"
	"github.com/nao1215/pageaudit/internal/history"
	"github.com/nao1215/pageaudit/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "Show stored audits of a page",
		Long: `History shows how a page's score changed across previous audits.

Each stored audit is compared with the one before it and marked as
improved, worsened or unchanged. When the audited markup differs between
two audits, the change is flagged as well.

Audits are stored by 'pageaudit audit' unless --no-save is given.

Examples:
  # List every audited page
  pageaudit history --list-urls

  # Show the history of one page
  pageaudit history https://shop.example.com/

  # Show only the last five audits as JSON
  pageaudit history -n 5 --json https://shop.example.com/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-urls", "L", false,
		"List all audited page urls")
	cmd.Flags().IntP("limit", "n", 0,
		"Show at most this many audits (0 shows all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listURLs, err := cmd.Flags().GetBool("list-urls")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database.
	if !listURLs && len(args) == 0 {
		return errors.New("page url is required (use --list-urls to see audited pages)")
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("invalid --limit %d: must not be negative", limit)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	out := cmd.OutOrStdout()

	// Reading history never creates a database.
	store, err := history.Open(dbDir, history.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, history.ErrNotFound) {
		fmt.Fprintln(out, "No audit history found.")
		fmt.Fprintln(out, "\nUse 'pageaudit audit <path>' to audit pages.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	if listURLs {
		return listAuditedURLs(ctx, out, store, jsonOutput)
	}
	return showHistory(ctx, out, store, args[0], limit, jsonOutput)
}

// listAuditedURLs prints every url that has stored audits.
func listAuditedURLs(ctx context.Context, out io.Writer, store *history.Store, jsonOutput bool) error {
	urls, err := store.ListURLs(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		if urls == nil {
			urls = []string{}
		}
		return writeJSON(out, urls)
	}

	if len(urls) == 0 {
		fmt.Fprintln(out, "No audited pages found in the database.")
		return nil
	}

	fmt.Fprintf(out, "Audited pages (%d):\n\n", len(urls))
	for _, u := range urls {
		fmt.Fprintf(out, "  • %s\n", u)
	}
	fmt.Fprintln(out, "\nUse 'pageaudit history <url>' to see the audits of a page.")
	return nil
}

// showHistory prints the stored audits of one page, newest first.
func showHistory(ctx context.Context, out io.Writer, store *history.Store, pageURL string, limit int, jsonOutput bool) error {
	records, err := store.History(ctx, pageURL)
	if err != nil {
		return err
	}

	// Deltas are computed over the full history so the last shown row
	// still compares with its predecessor.
	changes := history.Changes(records)
	if limit > 0 && len(changes) > limit {
		changes = changes[:limit]
	}

	if jsonOutput {
		return writeJSON(out, changes)
	}

	if len(changes) == 0 {
		fmt.Fprintf(out, "No audit history found for %s\n", pageURL)
		return nil
	}

	fmt.Fprintf(out, "Audit history for %s (%d audits):\n\n", pageURL, len(records))
	fmt.Fprintf(out, "  %-20s  %5s  %-17s  %s\n", "Date", "Score", "Status", "Change")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 66))

	for _, c := range changes {
		fmt.Fprintf(out, "  %-20s  %5d  %-17s  ",
			c.AuditedAt.UTC().Format("2006-01-02 15:04:05"),
			c.OverallScore,
			report.StatusLabel(c.Status),
		)
		printChange(out, c)
		fmt.Fprintln(out)
	}
	return nil
}

// printChange writes the colored delta column of one history row.
func printChange(out io.Writer, c history.Change) {
	if c.First {
		fmt.Fprint(out, "first audit")
		return
	}

	text := fmt.Sprintf("%+d %s", c.Delta, c.Trend)
	switch c.Trend {
	case history.TrendImproved:
		color.New(color.FgGreen).Fprint(out, text)
	case history.TrendWorsened:
		color.New(color.FgRed).Fprint(out, text)
	default:
		fmt.Fprint(out, text)
	}
	if c.MarkupChanged {
		fmt.Fprint(out, " (markup changed)")
	}
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
