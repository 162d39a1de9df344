// Package order implements the Order aggregate of the fulfillment domain.
//
// An order is created at placement time from cart-line snapshots and then
// moves through a role-gated lifecycle governed by a single transition table:
// the store accepts or rejects, prepares, and may cancel; drivers claim
// prepared takeout orders, pick them up, and deliver; the customer confirms
// receipt or cancels before acceptance. Admins may execute any transition a
// role-specific actor could, bypassing ownership checks but never the table.
//
// Every timed stage carries an explicit NotReached | Estimated | Actual
// timestamp so derived progress never depends on nullable fields. Drivers who
// decline an order join its exclusion set and are never offered it again.
package order
