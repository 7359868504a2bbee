package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/busybox/internal/eventlog"
)

// Scenario is one scripted session against a fresh store.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// StartMS is the clock reading before the first step.
	StartMS int64 `yaml:"start_ms,omitempty"`

	// Locale selects history labels (BCP 47). Empty means English.
	Locale string `yaml:"locale,omitempty"`

	// Timezone renders history dates. Empty means UTC.
	Timezone string `yaml:"timezone,omitempty"`

	// Shake overrides detector tuning.
	Shake *ShakeTuning `yaml:"shake,omitempty"`

	// Setup writes raw preference values before the service starts.
	Setup []SetupValue `yaml:"setup,omitempty"`

	// Steps are host events delivered in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ShakeTuning mirrors the config file's shake block.
type ShakeTuning struct {
	DebounceMS int     `yaml:"debounce_ms"`
	Threshold  float64 `yaml:"threshold"`
}

// SetupValue is a preference written before the run. Exactly one of Int and
// String must be set.
type SetupValue struct {
	Key    string  `yaml:"key"`
	Int    *int    `yaml:"int,omitempty"`
	String *string `yaml:"string,omitempty"`
}

// Step is one host event.
type Step struct {
	Action string    `yaml:"action"`
	At     *int64    `yaml:"at,omitempty"`
	Values []float32 `yaml:"values,omitempty"`
	Sensor int       `yaml:"sensor,omitempty"`
}

// Assertion validates the state after all steps.
type Assertion struct {
	Type  string   `yaml:"type"`
	Value *int     `yaml:"value,omitempty"` // counter
	Lines []string `yaml:"lines,omitempty"` // history_lines
	Kind  string   `yaml:"kind,omitempty"`  // history_count
	Count *int     `yaml:"count,omitempty"` // history_count, issues
	Key   string   `yaml:"key,omitempty"`   // store_string
	Text  *string  `yaml:"text,omitempty"`  // store_string
}

// Step actions.
const (
	ActionPress         = "press"
	ActionReset         = "reset"
	ActionSample        = "sample"
	ActionShake         = "shake"
	ActionToggleHistory = "toggle_history"
)

// Assertion types.
const (
	AssertCounter      = "counter"
	AssertHistoryLines = "history_lines"
	AssertHistoryCount = "history_count"
	AssertStoreString  = "store_string"
	AssertIssues       = "issues"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
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

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, v := range s.Setup {
		if v.Key == "" {
			return fmt.Errorf("setup[%d]: key is required", i)
		}
		if (v.Int == nil) == (v.String == nil) {
			return fmt.Errorf("setup[%d]: exactly one of int or string is required", i)
		}
	}

	for i, step := range s.Steps {
		switch step.Action {
		case ActionPress, ActionReset, ActionShake, ActionToggleHistory:
		case ActionSample:
			if len(step.Values) == 0 {
				return fmt.Errorf("steps[%d]: sample requires values", i)
			}
		default:
			return fmt.Errorf("steps[%d]: unknown action %q", i, step.Action)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertCounter:
		if a.Value == nil {
			return fmt.Errorf("counter requires value")
		}
	case AssertHistoryLines:
		// An absent lines list asserts an empty history.
	case AssertHistoryCount:
		if _, err := eventlog.ParseKind(a.Kind); err != nil {
			return fmt.Errorf("history_count: %w", err)
		}
		if a.Count == nil {
			return fmt.Errorf("history_count requires count")
		}
	case AssertStoreString:
		if a.Key == "" || a.Text == nil {
			return fmt.Errorf("store_string requires key and text")
		}
	case AssertIssues:
		if a.Count == nil {
			return fmt.Errorf("issues requires count")
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
