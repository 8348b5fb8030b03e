// Package badger implements the storage repositories on BadgerDB.
//
// The durable cache lives in a single Badger database. Program records are
// stored one key per program under the "prog:" prefix, snapshot metadata
// under "meta", and raw per-locale translation documents under "loc:".
// Keeping programs as individual records lets a load skip a corrupt record
// without losing the rest of the snapshot.
package badger
