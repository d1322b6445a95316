// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests using it are compiled only with the integration build tag
// and are skipped when DATABASE_URL is not set.
package testdb
