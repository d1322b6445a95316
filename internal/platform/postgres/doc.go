// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver, and owns the schema as embedded goose
// migrations.
//
// Every store accepts a store.DBTX, so the same code runs against the pool or
// inside a transaction obtained from store.RunInTransaction (see WithTx).
// Driver errors are translated to store errors by MapError; pg error codes for
// unique, foreign-key, check and not-null violations are recognized.
package postgres
