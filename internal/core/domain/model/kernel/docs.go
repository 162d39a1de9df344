// Package kernel contains the shared value objects of the marketplace domain:
// UUID identifiers, Money amounts, the Owner tagged union over authenticated
// users and guest sessions, and Actor/Role for authorization decisions.
//
// All types are immutable value objects created through validating
// constructors; zero values fail Validate where a zero value is meaningless.
package kernel
