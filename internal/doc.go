// Package internal contains the request dispatch core: the sealed Router,
// the Context passed to handlers, the validation middleware, and the error
// responder that folds every failure into the closed response taxonomy.
//
// The root turbo package re-exports the public surface of this package.
package internal
