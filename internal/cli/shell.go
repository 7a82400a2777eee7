package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/flix/internal/account"
	"github.com/roach88/flix/internal/journal"
	"github.com/roach88/flix/internal/rental"
	"github.com/roach88/flix/internal/rentalerr"
)

// ShellOptions holds flags for the shell command.
type ShellOptions struct {
	*RootOptions
	Database string

	// Tokens overrides the session token generator (for testing).
	// If nil, defaults to rental.UUIDv7Generator.
	Tokens rental.TokenGenerator
}

const shellHelp = `commands:
  login <id> <password>     start a session (customer or admin)
  logout                    end the session
  add <id> <password> <max> register a customer (admin)
  cancel <id>               remove a customer, returning their items (admin)
  accounts                  list registered customers
  inventory                 list the catalog with positions
  reserve <pos>             reserve the catalog title at pos
  unreserve <pos>           drop the reservation at pos
  promote <pos>             move the reservation at pos one place forward
  return <pos>              return the at-home title at pos
  reserves                  list your reservations
  athome                    list your titles at home
  help                      show this text
  quit                      leave the shell`

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	return newShellCommand(&ShellOptions{RootOptions: rootOpts})
}

func newShellCommand(opts *ShellOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell [inventory-file]",
		Short: "Run an interactive rental session",
		Long: `Read rental commands from stdin, one per line, against a catalog
loaded from the inventory file.

Positions are 0-based. Errors are reported with their code and the shell
keeps reading. Blank lines and lines starting with # are ignored.

With --db (or journal.path in the config file) every change is appended
to a SQLite activity journal; see "flix history".

Example:
  flix shell ./movies.txt --db ./flix.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite activity journal")

	return cmd
}

func runShell(opts *ShellOptions, args []string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	cfg := opts.Config()
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	catalog, err := loadCatalog(opts.RootOptions, args)
	if err != nil {
		return err
	}
	slog.Debug("catalog loaded", "titles", catalog.Len())
	out.VerboseLog("catalog: %d titles", catalog.Len())

	var recorder rental.Recorder
	dbPath := opts.Database
	if dbPath == "" {
		dbPath = cfg.Journal.Path
	}
	if dbPath != "" {
		j, err := journal.Open(dbPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()

		rec, err := journal.NewRecorder(ctx, j)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			out.VerboseLog("journal: last seq %d", rec.LastSeq())
		}()
		recorder = rental.RecorderFunc(func(ctx context.Context, ev rental.Event) error {
			msg := fmt.Sprintf("journal: %s %s", ev.Kind, ev.Account)
			if ev.Title != "" {
				msg += fmt.Sprintf(" %q", ev.Title)
			}
			out.VerboseLog("%s", msg)
			return rec.Record(ctx, ev)
		})
		slog.Info("journal ready", "path", dbPath)
		out.VerboseLog("journal: %s (last seq %d)", dbPath, rec.LastSeq())
	}

	system := rental.NewSystem(catalog, rental.WithRecorder(recorder))
	registry := account.NewRegistry(
		account.WithCapacity(cfg.Accounts.Max),
		account.WithRegistryBcryptCost(cfg.Accounts.BcryptCost),
	)
	sessOpts := []rental.SessionOption{
		rental.WithAdmin(rental.Credentials{ID: cfg.Admin.ID, Password: cfg.Admin.Password}),
	}
	if opts.Tokens != nil {
		sessOpts = append(sessOpts, rental.WithTokens(opts.Tokens))
	}

	sh := &shell{
		session: rental.NewSession(system, registry, sessOpts...),
		out:     out,
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !sh.exec(ctx, strings.Fields(line)) {
			break
		}
	}
	sh.session.Logout(ctx)

	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read commands", err)
	}
	return nil
}

type shell struct {
	session *rental.Session
	out     *OutputFormatter
}

// exec runs one command. It returns false when the shell should stop.
func (sh *shell) exec(ctx context.Context, fields []string) bool {
	name, args := fields[0], fields[1:]
	sys := sh.session.System()
	slog.Debug("shell command", "command", name, "args", len(args))

	var err error
	switch name {
	case "quit", "exit":
		return false

	case "help":
		err = sh.out.Success(shellHelp)

	case "login":
		if err = want(args, 2, "login <id> <password>"); err == nil {
			if err = sh.session.Login(ctx, args[0], args[1]); err == nil {
				who := args[0]
				if sh.session.IsAdmin() {
					who = "administrator"
				}
				err = sh.out.Success("logged in as " + who)
			}
		}

	case "logout":
		sh.session.Logout(ctx)
		err = sh.out.Success("logged out")

	case "add":
		if err = want(args, 3, "add <id> <password> <max>"); err == nil {
			var maxAtHome int
			if maxAtHome, err = parseNumber(args[2]); err == nil {
				if err = sh.session.AddAccount(ctx, args[0], args[1], maxAtHome); err == nil {
					err = sh.out.Success("added " + args[0])
				}
			}
		}

	case "cancel":
		if err = want(args, 1, "cancel <id>"); err == nil {
			if err = sh.session.CancelAccount(ctx, args[0]); err == nil {
				err = sh.out.Success("cancelled " + args[0])
			}
		}

	case "accounts":
		err = sh.list(splitLines(sh.session.ListAccounts()))

	case "inventory":
		err = sh.list(splitLines(sys.ShowInventory()))

	case "reserves":
		var listing string
		if listing, err = sys.ReserveList(); err == nil {
			err = sh.list(splitLines(listing))
		}

	case "athome":
		var listing string
		if listing, err = sys.AtHomeList(); err == nil {
			err = sh.list(splitLines(listing))
		}

	case "reserve", "unreserve", "promote", "return":
		if err = want(args, 1, name+" <pos>"); err == nil {
			var pos int
			if pos, err = parseNumber(args[0]); err == nil {
				if err = sh.positional(ctx, name, pos); err == nil {
					err = sh.out.Success("ok")
				}
			}
		}

	default:
		err = rentalerr.New(rentalerr.CodeInvalidArgument, "unknown command %q (try help)", name)
	}

	if err != nil {
		switch {
		case rentalerr.IsInvariantViolation(err):
			slog.Error("rental invariant broken", "command", name, "error", err)
		case rentalerr.IsIndexOutOfRange(err):
			sh.out.VerboseLog("positions are 0-based; see inventory, reserves and athome")
		}
		if writeErr := sh.out.Fail(err); writeErr != nil {
			slog.Error("failed to write output", "error", writeErr)
		}
	}
	return true
}

func (sh *shell) positional(ctx context.Context, name string, pos int) error {
	sys := sh.session.System()
	switch name {
	case "reserve":
		return sys.Reserve(ctx, pos)
	case "unreserve":
		return sys.Unreserve(ctx, pos)
	case "promote":
		return sys.PromoteReservation(ctx, pos)
	default:
		return sys.ReturnItem(ctx, pos)
	}
}

// list prints entries numbered by position, or "(none)".
func (sh *shell) list(entries []string) error {
	if sh.out.Format == "json" {
		return sh.out.Success(entries)
	}
	if len(entries) == 0 {
		return sh.out.Success("(none)")
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%3d  %s", i, e)
	}
	return sh.out.Success(b.String())
}

func want(args []string, n int, usage string) error {
	if len(args) != n {
		return rentalerr.New(rentalerr.CodeInvalidArgument, "usage: %s", usage)
	}
	return nil
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, rentalerr.New(rentalerr.CodeInvalidArgument, "%q is not a number", s)
	}
	return n, nil
}

// splitLines turns a newline-terminated listing into its entries.
func splitLines(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
