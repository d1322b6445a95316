// Package store defines interfaces for persisting accounts and tasks.
// These interfaces abstract the underlying database from the service layer;
// the PostgreSQL implementations live in internal/platform/postgres.
package store
