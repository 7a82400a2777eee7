package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/roach88/flix/internal/account"
	"github.com/roach88/flix/internal/inventory"
	"github.com/roach88/flix/internal/journal"
	"github.com/roach88/flix/internal/rental"
	"github.com/roach88/flix/internal/rentalerr"
	"github.com/roach88/flix/internal/testutil"
)

// codeUnclassified marks a step error that carries no rentalerr code.
const codeUnclassified = "ERROR"

// Harness drives one scenario against a fresh rental session.
type Harness struct {
	session *rental.Session
	catalog *inventory.Catalog
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each run gets its own catalog, registry and in-memory journal, so
// scenarios never observe each other. An error is returned only when the
// scenario cannot be set up; step mismatches are reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	catalog, err := inventory.Load(strings.NewReader(strings.Join(scenario.Inventory, "\n")))
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	j, err := journal.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer j.Close()

	rec, err := journal.NewRecorder(ctx, j, journal.WithIDs(testutil.NewSequentialTokens("entry")))
	if err != nil {
		return nil, err
	}

	registry := account.NewRegistry(account.WithRegistryBcryptCost(bcrypt.MinCost))
	for _, a := range scenario.Accounts {
		if _, err := registry.Add(a.ID, a.Password, a.MaxAtHome); err != nil {
			return nil, fmt.Errorf("failed to register account %q: %w", a.ID, err)
		}
	}

	system := rental.NewSystem(catalog, rental.WithRecorder(rec))
	h := &Harness{
		session: rental.NewSession(system, registry,
			rental.WithTokens(testutil.NewSequentialTokens("session"))),
		catalog: catalog,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		h.executeStep(ctx, i+1, step, result)
	}

	trace, err := j.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	result.Trace = trace
	result.Inventory = catalog.Traverse()

	return result, nil
}

func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) {
	err := h.apply(ctx, step)

	code := ""
	if err != nil {
		code = string(rentalerr.CodeOf(err))
		if code == "" {
			code = codeUnclassified
		}
	}

	outcome := StepOutcome{
		Index:  index,
		Action: step.Do,
		Desc:   describe(step),
		Code:   code,
	}
	result.Steps = append(result.Steps, outcome)

	switch {
	case step.Error == "" && err != nil:
		result.AddError(fmt.Sprintf("step %d (%s): unexpected error: %v", index, outcome.Desc, err))
	case step.Error != "" && code != step.Error:
		got := code
		if got == "" {
			got = "success"
		}
		result.AddError(fmt.Sprintf("step %d (%s): expected %s, got %s", index, outcome.Desc, step.Error, got))
	}

	if step.Expect != nil {
		for _, msg := range h.checkExpect(step.Expect) {
			result.AddError(fmt.Sprintf("step %d (%s): %s", index, outcome.Desc, msg))
		}
	}

	h.logger.Debug("step completed",
		"step", index,
		"action", step.Do,
		"code", code,
	)
}

func (h *Harness) apply(ctx context.Context, step Step) error {
	sys := h.session.System()
	switch step.Do {
	case ActionLogin:
		return h.session.Login(ctx, step.ID, step.Password)
	case ActionLogout:
		h.session.Logout(ctx)
		return nil
	case ActionAddAccount:
		return h.session.AddAccount(ctx, step.ID, step.Password, step.MaxAtHome)
	case ActionCancelAccount:
		return h.session.CancelAccount(ctx, step.ID)
	case ActionReserve:
		return sys.Reserve(ctx, *step.Pos)
	case ActionUnreserve:
		return sys.Unreserve(ctx, *step.Pos)
	case ActionPromote:
		return sys.PromoteReservation(ctx, *step.Pos)
	case ActionReturn:
		return sys.ReturnItem(ctx, *step.Pos)
	}
	return fmt.Errorf("unknown action %q", step.Do)
}

func (h *Harness) checkExpect(want *Expect) []string {
	var errs []string
	sys := h.session.System()

	if want.Reserves != nil {
		got, err := sys.ReserveList()
		if err != nil {
			errs = append(errs, fmt.Sprintf("reserves: %v", err))
		} else if lines := splitLines(got); !slices.Equal(lines, want.Reserves) {
			errs = append(errs, fmt.Sprintf("reserves: expected %q, got %q", want.Reserves, lines))
		}
	}

	if want.AtHome != nil {
		got, err := sys.AtHomeList()
		if err != nil {
			errs = append(errs, fmt.Sprintf("at_home: %v", err))
		} else if lines := splitLines(got); !slices.Equal(lines, want.AtHome) {
			errs = append(errs, fmt.Sprintf("at_home: expected %q, got %q", want.AtHome, lines))
		}
	}

	titles := make([]string, 0, len(want.Stock))
	for title := range want.Stock {
		titles = append(titles, title)
	}
	slices.Sort(titles)
	for _, title := range titles {
		item, ok := h.catalog.Find(title)
		if !ok {
			errs = append(errs, fmt.Sprintf("stock: no item %q", title))
			continue
		}
		if item.Stock() != want.Stock[title] {
			errs = append(errs, fmt.Sprintf("stock: %q expected %d, got %d", title, want.Stock[title], item.Stock()))
		}
	}

	if want.Accounts != nil {
		if lines := splitLines(h.session.ListAccounts()); !slices.Equal(lines, want.Accounts) {
			errs = append(errs, fmt.Sprintf("accounts: expected %q, got %q", want.Accounts, lines))
		}
	}

	return errs
}

// describe renders a step for transcripts and error messages.
// Passwords are never included.
func describe(step Step) string {
	switch step.Do {
	case ActionLogin, ActionCancelAccount:
		return step.Do + " " + step.ID
	case ActionAddAccount:
		return fmt.Sprintf("%s %s max=%d", step.Do, step.ID, step.MaxAtHome)
	case ActionReserve, ActionUnreserve, ActionPromote, ActionReturn:
		return fmt.Sprintf("%s %d", step.Do, *step.Pos)
	}
	return step.Do
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
