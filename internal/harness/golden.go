package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders a result as plain text:
//
//	scenario: <name>
//	step 1: login pat -> ok
//	step 2: promote 4 -> INDEX_OUT_OF_RANGE
//	journal:
//	  1 login session-1 pat
//	  2 reserve session-1 pat "Alien" @0
//	inventory:
//	  Alien (currently unavailable)
//
// Entry ids are left out; everything shown is deterministic.
func Transcript(name string, result *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)

	for _, s := range result.Steps {
		status := "ok"
		if s.Code != "" {
			status = s.Code
		}
		fmt.Fprintf(&b, "step %d: %s -> %s\n", s.Index, s.Desc, status)
	}

	b.WriteString("journal:\n")
	for _, e := range result.Trace {
		fmt.Fprintf(&b, "  %d %s %s %s", e.Seq, e.Kind, e.Session, e.Account)
		if e.Title != "" {
			fmt.Fprintf(&b, " %q", e.Title)
		}
		if e.Position >= 0 {
			fmt.Fprintf(&b, " @%d", e.Position)
		}
		b.WriteString("\n")
	}

	b.WriteString("inventory:\n")
	for _, line := range splitLines(result.Inventory) {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	return []byte(b.String())
}

// RunWithGolden runs scenario and compares its transcript with
// testdata/golden/<name>.golden. The scenario's own expectations must
// also hold.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	if !result.Pass {
		for _, msg := range result.Errors {
			t.Error(msg)
		}
	}

	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares a result's transcript with its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Transcript(name, result))
}
