package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/benjamonnguyen/pomomo-tui"
	"github.com/benjamonnguyen/pomomo-tui/sqlite"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCmd(root *rootFlags) *cobra.Command {
	var limit int
	var dbPath string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently completed intervals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pomomo.LoadConfig(root.isProd)
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.HistoryDBPath
			}
			if dbPath == "" {
				return errors.New("no history db configured: set POMOMO_HISTORY_DB or pass --db")
			}
			closeLog, err := setupLogging(cfg, root.logLevel)
			if err != nil {
				return err
			}
			defer closeLog()

			db, err := sqlite.Open(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open history db: %w", err)
			}
			defer db.Close() //nolint
			_, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
			repo := sqlite.NewHistoryRepo(dbGetter, log.With("component", "history"))

			return printHistory(cmd.Context(), cmd.OutOrStdout(), repo, limit, time.Now())
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of intervals to list")
	cmd.Flags().StringVar(&dbPath, "db", "", "history db path (default $POMOMO_HISTORY_DB)")
	return cmd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func printHistory(ctx context.Context, w io.Writer, repo pomomo.HistoryRepo, limit int, now time.Time) error {
	counts, err := repo.CountByMode(ctx, startOfDay(now))
	if err != nil {
		return fmt.Errorf("failed to count intervals: %w", err)
	}
	recent, err := repo.ListRecentIntervals(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list intervals: %w", err)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Today") + "\n")
	for _, m := range pomomo.Modes {
		fmt.Fprintf(&b, "  %s %d\n", lipgloss.NewStyle().Foreground(modeColor(m)).Width(12).Render(m.String()), counts[m])
	}
	b.WriteString("\n" + titleStyle.Render("Recent") + "\n")
	if len(recent) == 0 {
		b.WriteString(dimStyle.Render("  no completed intervals yet") + "\n")
	}
	for _, r := range recent {
		fmt.Fprintf(&b, "  %s %s %s\n",
			lipgloss.NewStyle().Foreground(modeColor(r.Mode)).Width(12).Render(r.Mode.String()),
			lipgloss.NewStyle().Width(8).Render(formatTime(int(r.Planned/time.Second))),
			dimStyle.Render(humanize.RelTime(r.CompletedAt, now, "ago", "from now")),
		)
	}

	_, err = io.WriteString(w, b.String())
	return err
}
