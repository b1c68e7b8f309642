// Package commands implements the collection queries both API surfaces call
// into. Each query assembles a candidate sequence from storage, keeps
// unauthorized candidates out, and exposes the page through a lazily
// materialized connection.
package commands
