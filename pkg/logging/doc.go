// Package logging provides a thin structured-logging layer over log/slog.
//
// Every log call carries a subsystem tag so output from the auth, browser,
// cache and client layers can be told apart. All output goes to stderr;
// stdout is reserved for command results. Token values must never be
// passed to this package.
package logging
