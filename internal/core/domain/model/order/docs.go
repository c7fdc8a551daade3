// Package order implements the lab order aggregate and its lifecycle state
// machine. An order moves from DRAFT through review and production to a
// terminal state; every edge of the lifecycle graph is authorized for a
// specific set of actor roles, and entering a state stamps a set-once
// timestamp on the aggregate.
//
// The package provides:
//   - Order: the aggregate root guarding lifecycle invariants
//   - Status: the lifecycle state enumeration with derived predicates
//   - CanTransition: the role-gated transition table
//   - InvalidTransitionError: a denial that distinguishes state mismatch
//     from role mismatch
//
// The transition table is a single static map, so the complete permission
// matrix can be enumerated exhaustively in tests.
package order
