// Package repositories implements SQLite persistence for submission history.
//
// Key Implementations:
//   - [SubmissionRepository] : settled playlist creation requests, newest first
//
// Sequence numbers provide stable, human-readable ordering (e.g., submission #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
