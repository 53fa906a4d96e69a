// Package models defines the core domain records for splitledger.
//
// The ledger owns no state of its own. Every balance is recomputed from the
// records below:
//   - User: a registered person; the stable ID is what every other record references
//   - Group: a named roster of members, each with a role
//   - Expense: a payment by one user, divided into Splits
//   - Settlement: a direct payment that pays down an existing debt
//
// # Design Principles
//
//  1. Amounts are money.Cents; no floating point inside the ledger
//  2. Relationships are ID strings, never pointers
//  3. An empty GroupID marks a personal (non-group) record
//  4. Records are validated once, at the store boundary
package models
