// Package rental couples the item catalog with the active customer account.
//
// System is the facade the presentation layer talks to. It resolves
// catalog positions into items and hands them to the current account's
// reservation queue. Session layers login bookkeeping and the admin-only
// account operations on top of a System and an account.Registry.
//
// Every successful state change is reported to a Recorder as an Event.
// Recording is best effort: a failing Recorder is logged and the rental
// operation still succeeds.
//
// Not safe for concurrent use. A System serves one interactive session.
package rental
