// Package ciutil detects CI environments and resolves the database used by
// integration tests. It centralizes the environment variable names so test
// helpers and scripts agree on them.
package ciutil
