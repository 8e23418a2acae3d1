// Package timezone pins every timestamp the API formats or parses to the
// zone named by APP_TIMEZONE. The zone is loaded on first use and falls back
// to UTC when it is unset or unknown.
package timezone
