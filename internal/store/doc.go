// Package store provides SQLite-backed persistence for folios.
//
// A folio row owns graph rows and session rows. Graphs are stored as
// deterministic JSON snapshots of the entity registry: one tagged
// record per entity, in creation order, so a reloaded graph translates
// to byte-identical canonical CLIF.
//
// The core graph packages never import the store; the encoder walks
// plain entity fields (ids, labels, hook maps, child lists, attachment
// lists) through the public eg API only.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - NORMAL synchronous: balance of durability and performance
//   - 5-second busy timeout for lock contention
//   - Foreign keys enforced (sessions and graphs cascade with folios)
package store
