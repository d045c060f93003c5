// Package calendar implements the business calendar and delivery
// scheduling engine.
//
// The core is the Snapshot: an immutable view of the jurisdiction
// calendar, organization holidays, the weekly hours table, and the
// delivery rules. All evaluation (working-day classification,
// business-day arithmetic, policy resolution) runs against one
// Snapshot value, so concurrent callers with different views never
// interfere and repeated calls are deterministic.
//
// Engine binds a Snapshot to the persistent holiday store and keeps a
// current view that is rebuilt on holiday mutations and config reloads.
package calendar
