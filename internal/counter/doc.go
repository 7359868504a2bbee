// Package counter is the stateful shell around the event-log core.
//
// A Service owns the counter value and the shake detector state, and is the
// only code that talks to the preference store. Hosts (CLI, terminal UI,
// scenario harness) call its operations one at a time from a single
// goroutine:
//
//	Increment     counter+1, commit counter, append press event
//	Reset         counter=0, commit counter; logs are kept
//	HandleSensor  feed accelerometer sample, append shake event on detection
//	History       read both logs and project them into rows
//
// A Service is not safe for concurrent use.
package counter
