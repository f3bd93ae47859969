// Package db provides PostgreSQL connection pooling on top of pgxpool:
// retrying startup connection, pool lifecycle settings, and a transaction
// helper.
//
// The dispatch pipeline understands pgx errors natively: a unique
// constraint violation surfacing from a handler maps to 409 Conflict.
package db
