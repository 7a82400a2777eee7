package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/flix/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Session  string
	Account  string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the activity journal",
		Long: `Print entries from a SQLite activity journal written by "flix shell".

Entries are listed in the order they were recorded. Filter by session
token or by account id, not both.

Examples:
  flix history --db ./flix.db
  flix history --db ./flix.db --account pat
  flix history --db ./flix.db --session 0190f3a2-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite activity journal")
	cmd.Flags().StringVar(&opts.Session, "session", "", "only entries of this session token")
	cmd.Flags().StringVar(&opts.Account, "account", "", "only entries of this account id")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = opts.Config().Journal.Path
	}
	if dbPath == "" || dbPath == ":memory:" {
		return NewExitError(ExitCommandError, "--db is required (or set journal.path in the config)")
	}
	if opts.Session != "" && opts.Account != "" {
		return NewExitError(ExitCommandError, "--session and --account cannot be combined")
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", dbPath))
	}

	j, err := journal.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer func() {
		if closeErr := j.Close(); closeErr != nil {
			slog.Error("error closing journal", "error", closeErr)
		}
	}()

	var entries []journal.Entry
	switch {
	case opts.Session != "":
		entries, err = j.ReadSession(ctx, opts.Session)
	case opts.Account != "":
		entries, err = j.ReadAccount(ctx, opts.Account)
	default:
		entries, err = j.ReadAll(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	slog.Debug("journal read", "path", dbPath, "entries", len(entries))

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(entries)
	}
	if len(entries) == 0 {
		return formatter.Success("No journal entries found.")
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatEntry(e))
	}
	return formatter.Success(b.String())
}

// formatEntry renders e as "SEQ KIND SESSION ACCOUNT ["TITLE"] [@POS]".
func formatEntry(e journal.Entry) string {
	s := fmt.Sprintf("%d %s %s %s", e.Seq, e.Kind, e.Session, e.Account)
	if e.Title != "" {
		s += fmt.Sprintf(" %q", e.Title)
	}
	if e.Position >= 0 {
		s += fmt.Sprintf(" @%d", e.Position)
	}
	return s
}
