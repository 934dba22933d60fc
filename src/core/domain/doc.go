// Package domain contains the core domain model for the items service.
//
// This package defines:
//   - Entities: Item, the only persisted object
//   - Value Objects: ConnectionState, the lifecycle of the shared database handle
//   - Domain Errors: validation, lookup, configuration and storage failures
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Identifiers and timestamps of an Item are assigned by storage, never by callers
package domain
