// Package prefs provides the durable key-value preference store.
//
// Values are either integers or strings, addressed by key inside a
// namespace (one namespace per preference file). Every write is a single
// statement, so a reader sees either the old value of a key or the new one,
// never a partial write.
//
// Two implementations exist:
//   - SQLiteStore: file-backed, used by the CLI and TUI
//   - MemoryStore: in-process map, used by tests and dry runs
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=FULL: every commit is durable before the call returns
//   - busy_timeout=5000
//   - single connection (one writer)
package prefs
