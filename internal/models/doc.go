// Package models defines the persisted domain models for the BillBuddy
// backend.
//
// # Models
//
//   - Receipt: a working receipt being split among friends
//   - User: a registered account
//   - Friend: an entry in a user's friend directory
//   - Reminder: a scheduled payment reminder
//   - Settlement: a recorded payment between friends
//
// Line items themselves live in the receipt package, since the parser and
// allocator operate on them directly; models.Receipt embeds them unchanged.
//
// # Design Principles
//
//  1. Relationships use ID strings, never pointers, to avoid circular
//     references.
//  2. Monetary values are decimals end to end; they are rounded only when
//     rendered.
//  3. Friends are identified by name within a receipt. Accounts exist for
//     login and ownership, not for participant identity.
package models
