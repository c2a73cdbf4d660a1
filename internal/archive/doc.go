// Package archive provides SQLite-backed durable storage for tapes.
//
// An archive holds named tapes, each an ordered list of execution
// records. It is the local retention layer behind the CLI's push/pull
// commands; the JSONL file written by the tape package remains the
// interchange format.
//
// # Critical Patterns
//
// Fingerprint-Level Idempotency
//   - UNIQUE(tape_name, fingerprint) constraint
//   - Re-pushing a tape inserts only records not already archived
//
// Deterministic Ordering
//   - Record ordering uses seq INTEGER (archive position), never
//     timestamps
//   - All reads use: ORDER BY seq ASC, id ASC COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: cascade record deletion with their tape
//
// Record identity comes from tape.Fingerprint (SHA-256 over NFC
// normalized canonical JSON with domain separation).
package archive
