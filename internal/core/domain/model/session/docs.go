// Package session contains the anonymous guest session aggregate. A session
// is a time-limited identity sufficient to hold cart state and place
// attributed orders without registration.
package session
