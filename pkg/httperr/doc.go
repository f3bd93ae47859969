// Package httperr defines the closed taxonomy of HTTP faults used across
// the framework. Each kind is bound to exactly one status code and its
// canonical message; the bad-request kind additionally carries a
// field-keyed validation message map, and the internal kind wraps the
// original cause for server-side diagnostics.
//
// Faults are plain errors. Handlers and middleware return them; the
// dispatch pipeline maps anything else to the internal kind so that no
// error reaches a client unmapped.
package httperr
