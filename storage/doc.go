// Package storage defines the persistence interfaces for ingested items.
//
// The package contains the ItemRepository abstraction consumed by the
// ingestion pipeline and the reconciliation sweep, the sentinel errors
// storage backends return, and the binary serialization used to persist
// items. Concrete backends live in sub-packages (storage/badger).
//
// Terminal state writes are idempotent by contract: a backend applies the
// same terminal outcome at most once and accepts repeats without corrupting
// the record.
package storage
