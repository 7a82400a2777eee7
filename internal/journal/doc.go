// Package journal keeps an append-only SQLite log of rental activity.
//
// Each rental.Event becomes one Entry stamped with a logical sequence
// number from Clock. The journal is an audit trail: nothing is ever read
// back into a rental.System.
//
// # Ordering
//
// All ordering uses seq, never wall time. Every query orders by
// seq ASC, id ASC COLLATE BINARY so repeated reads return identical
// results.
//
// # Idempotency
//
// Append ignores an entry whose id is already stored.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package journal
