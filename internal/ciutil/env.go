package ciutil

import (
	"log/slog"
	"net/url"
	"os"
	"strings"
)

// Common environment variable names used across the codebase.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	// Database connection environment variables, in lookup order
	EnvTestDBURL       = "TASKAPI_TEST_DB_URL" // Preferred
	EnvDatabaseURL     = "DATABASE_URL"
	EnvTaskAPIDatabase = "TASKAPI_DATABASE_URL"
)

// IsCI returns true if the current environment is a CI environment.
func IsCI() bool {
	for _, name := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the value of the first non-empty environment
// variable in envVars, or defaultValue when none is set. Using anything but
// the first name logs a warning.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("using fallback environment variable",
					slog.String("used_var", envVar),
					slog.String("preferred_var", envVars[0]),
					slog.String("value", MaskSensitiveValue(val)))
			}
			return val
		}
	}
	return defaultValue
}

// MaskSensitiveValue hides the password in connection URLs and the middle of
// values that look like keys or tokens, so they can be logged.
func MaskSensitiveValue(value string) string {
	if u, err := url.Parse(value); err == nil && u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "****")
			// url.String escapes the mask; restore it for readability.
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return value
	}

	lower := strings.ToLower(value)
	if len(value) > 8 && (strings.Contains(lower, "key") ||
		strings.Contains(lower, "token") ||
		strings.Contains(lower, "secret")) {
		return value[:4] + "****" + value[len(value)-4:]
	}

	return value
}
