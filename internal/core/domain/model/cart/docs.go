// Package cart implements the Cart aggregate: the pending line items of one
// owner, either an authenticated user or an anonymous guest session. Carts
// enforce at most one line per (product, catalog) pair, stamp every mutation,
// and carry an expiry only when guest-owned. Availability and stock checks
// against the product catalog happen in the application layer; the aggregate
// guards structure, not inventory.
package cart
