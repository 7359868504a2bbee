// Package eventlog encodes and decodes the delimited event logs persisted in
// the preference store.
//
// Each log is a single string value that only ever grows at the end:
//
//	press log:  "<ts>|<value>,<ts>|<value>,"
//	shake log:  "<ts>,<ts>,"
//
// Timestamps are epoch milliseconds. Encoding produces a fragment that is
// appended to the existing value, so every fragment carries its own trailing
// separator. Decoding splits on the separator and drops empty tokens, which
// covers both the empty log and the trailing separator.
//
// # Malformed Tokens
//
// A token that cannot be parsed is skipped and reported as an Issue. The
// remaining tokens are still decoded in order, so one corrupted entry never
// hides the rest of the history.
package eventlog
