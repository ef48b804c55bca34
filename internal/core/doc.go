// Package core provides the state and behavior of the artwork selection table.
//
// This package contains all domain logic independent of any UI or transport
// layer. The web server and the terminal front end both drive it, and tests
// drive it directly.
//
// # Architecture
//
//   - Table: the state container. It holds the displayed page, the selection
//     limit, the selection, and the overlay visibility. Every user action is
//     a method call that returns a Notice instead of raising a dialog.
//   - PageFetcher: the external artwork catalog, one page per call.
//   - Emitter: receives accepted submissions. LogEmitter is always present;
//     a database-backed emitter can be added.
//   - Sessions: one Table per browser, swept when idle.
//   - Service: wires the above for front ends.
//
// # Page Loads
//
// [Table.LoadPage] requests upstream page index+1 with [PageSize] rows. Each
// load is a task keyed by a generation counter: a new load cancels the one
// still in flight, and a response that arrives for an old generation is
// dropped with [ErrStaleResponse]. Failures are logged and leave the
// displayed page unchanged.
//
// # Selection Rules
//
// With a nonzero limit L, [Table.OnSelectionChange] rejects any proposal
// longer than L and returns a blocking notice; otherwise the proposal
// replaces the selection. [Table.Submit] succeeds only when the selection
// size equals L, including L == 0 with an empty selection. Lowering L below
// the current selection size never truncates the selection.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has a code for support reference (API, REQ, SEL, SUB, SES,
// RATE); see error_messages.go.
package core
