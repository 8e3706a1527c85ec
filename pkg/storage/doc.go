// Package storage provides the durable keyed record store backing the
// tracking subsystem's session, identity, and consent state.
//
// Records are whole JSON values written under fixed string keys; every save
// overwrites the previous record. There is no partial update and no
// optimistic concurrency; the subsystem assumes a single active writer per
// visitor, and the last writer wins. A record that fails to decode is treated
// as absent rather than surfaced as an error, so corrupt state self-heals by
// reinitialization.
//
// Three implementations ship with the package: Memory (concurrent in-process
// map), File (one JSON file per key under a directory), and Redis
// (github.com/redis/go-redis/v9).
package storage
