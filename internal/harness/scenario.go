package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one scripted rental session.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario demonstrates.
	Description string `yaml:"description"`

	// Inventory holds inventory file lines ("<stock> <title>").
	Inventory []string `yaml:"inventory"`

	// Accounts are registered before the first step.
	Accounts []AccountSpec `yaml:"accounts,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`
}

// AccountSpec describes a pre-registered account.
type AccountSpec struct {
	ID        string `yaml:"id"`
	Password  string `yaml:"password"`
	MaxAtHome int    `yaml:"max_at_home"`
}

// Step is one action plus its expected outcome.
type Step struct {
	// Do names the action.
	Do string `yaml:"do"`

	ID        string `yaml:"id,omitempty"`
	Password  string `yaml:"password,omitempty"`
	MaxAtHome int    `yaml:"max_at_home,omitempty"`

	// Pos is the catalog position for reserve, the queue position otherwise.
	Pos *int `yaml:"pos,omitempty"`

	// Error is the rentalerr code the step must fail with. Empty means
	// the step must succeed.
	Error string `yaml:"error,omitempty"`

	// Expect is checked after the step runs.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is a partial description of state. Nil fields are not checked.
type Expect struct {
	// Reserves lists the active account's reservations in order.
	Reserves []string `yaml:"reserves,omitempty"`

	// AtHome lists the active account's at-home items in order.
	AtHome []string `yaml:"at_home,omitempty"`

	// Stock maps titles to their expected stock.
	Stock map[string]int `yaml:"stock,omitempty"`

	// Accounts lists registered ids in registry order.
	Accounts []string `yaml:"accounts,omitempty"`
}

// Action names.
const (
	ActionLogin         = "login"
	ActionLogout        = "logout"
	ActionAddAccount    = "add_account"
	ActionCancelAccount = "cancel_account"
	ActionReserve       = "reserve"
	ActionUnreserve     = "unreserve"
	ActionPromote       = "promote"
	ActionReturn        = "return"
)

// LoadScenario reads and validates a scenario file.
// Unknown fields are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Inventory) == 0 {
		return fmt.Errorf("inventory list is required and must be non-empty")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, a := range s.Accounts {
		if a.ID == "" || a.Password == "" {
			return fmt.Errorf("accounts[%d]: id and password are required", i)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStep(step Step) error {
	switch step.Do {
	case "":
		return fmt.Errorf("do is required")
	case ActionLogout:
	case ActionLogin, ActionAddAccount:
		if step.ID == "" || step.Password == "" {
			return fmt.Errorf("%s requires id and password", step.Do)
		}
	case ActionCancelAccount:
		if step.ID == "" {
			return fmt.Errorf("%s requires id", step.Do)
		}
	case ActionReserve, ActionUnreserve, ActionPromote, ActionReturn:
		if step.Pos == nil {
			return fmt.Errorf("%s requires pos", step.Do)
		}
	default:
		return fmt.Errorf("unknown action %q", step.Do)
	}
	return nil
}
