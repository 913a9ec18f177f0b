// Package recurrence expands recurring intents into ledger entries and keeps
// generated entries reconciled with their sources.
//
// Every function here is pure given its inputs: slices passed in are never
// mutated, new ids come from the injected IDGenerator, and the current month
// is supplied by the caller through a Horizon. Functions are safe to rerun;
// running a reconciliation twice over unchanged sources yields the same ledger.
package recurrence
