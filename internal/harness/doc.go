// Package harness replays scripted scenarios against the counter service.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: three_presses_then_reset
//	description: "Reset clears the counter but keeps history"
//	timezone: UTC            # optional, default UTC
//	locale: en               # optional, default en
//	shake:                   # optional detector tuning
//	  debounce_ms: 100
//	  threshold: 800
//	setup:                   # optional raw preference values
//	  - key: cntrValLabel
//	    string: "500|1,"
//	steps:
//	  - action: press
//	    at: 1000
//	  - action: reset
//	  - action: sample
//	    at: 5000
//	    values: [0, 0, 9.8]
//	assertions:
//	  - type: counter
//	    value: 0
//	  - type: history_count
//	    kind: press
//	    count: 1
//
// # Step Actions
//
//   - press: Increment
//   - reset: Reset
//   - sample: sensor callback with values (sensor defaults to accelerometer)
//   - shake: record a shake directly at the step time
//   - toggle_history: flip history visibility
//
// A step's "at" moves the scenario clock before the step runs; steps without
// it reuse the previous time.
//
// # Assertion Types
//
//   - counter: final counter value
//   - history_lines: exact rendered history
//   - history_count: number of rows of one kind
//   - store_string: raw string stored at a key
//   - issues: number of skipped malformed tokens
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory SQLite store and a manual clock, so the
// same scenario always produces the same trace. RunWithGolden compares that
// trace against testdata/golden/{name}.golden via goldie.
package harness
