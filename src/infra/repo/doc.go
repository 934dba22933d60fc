// Package repo contains the storage adapters behind ports.ItemRepository.
//
//   - MemoryRepository: process-local slice, used when STORE_DRIVER=memory
//   - PostgresRepository: pgx, handle obtained from a db.Source on every call
//   - MSSQLRepository: database/sql with the go-mssqldb driver
//
// The relational adapters never dial on their own. They ask the shared
// connection manager for the handle, so configuration and connection errors
// surface unchanged and only statement failures become storage errors.
package repo
