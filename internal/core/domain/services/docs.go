// Package services contains stateless domain services that operate across
// aggregates. Services hold no state of their own and perform no I/O.
package services
