package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of a marketplace order.
// The full transition graph lives in the transition table (see transition.go);
// Status itself only knows which values exist and which are terminal.
//
// Lifecycle:
//
//	Placed ──> Accepted ──> Prepared ──> AcceptedByDriver ──> PickedUp ──> Delivered ──> Received
//	   │           │            │
//	   │           │            └──> CanceledByStore
//	   │           └──> CanceledByStore
//	   ├──> Rejected
//	   └──> CanceledByCustomer
//
// Received, Rejected, and every canceled status are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Placed is the initial status after successful order placement.
	Placed

	// Accepted means the store confirmed the order.
	Accepted

	// Prepared means the store finished preparation; takeout orders become
	// offerable to drivers in this status.
	Prepared

	// AcceptedByDriver means a driver claimed the order for delivery.
	AcceptedByDriver

	// PickedUp means the assigned driver collected the order from the store.
	PickedUp

	// Delivered means the assigned driver handed the order to the customer.
	Delivered

	// Received means the customer confirmed receipt. Terminal.
	Received

	// Rejected means the store declined the placed order. Terminal.
	Rejected

	// CanceledByCustomer means the customer withdrew a placed order. Terminal.
	CanceledByCustomer

	// CanceledByStore means the store canceled after acceptance. Terminal.
	CanceledByStore

	// CanceledByDriver is kept for restoring historical rows; the current
	// transition table never produces it — a claimed driver backing out is
	// modeled through the exclusion set instead. Terminal.
	CanceledByDriver
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Placed:             "Placed",
		Accepted:           "Accepted",
		Prepared:           "Prepared",
		AcceptedByDriver:   "AcceptedByDriver",
		PickedUp:           "PickedUp",
		Delivered:          "Delivered",
		Received:           "Received",
		Rejected:           "Rejected",
		CanceledByCustomer: "CanceledByCustomer",
		CanceledByStore:    "CanceledByStore",
		CanceledByDriver:   "CanceledByDriver",
	}
}

// AllStatuses returns every valid status value. Used by exhaustive
// state-machine tests and by query filters.
func AllStatuses() []Status {
	return []Status{
		Placed, Accepted, Prepared, AcceptedByDriver, PickedUp,
		Delivered, Received, Rejected, CanceledByCustomer, CanceledByStore, CanceledByDriver,
	}
}

// StatusFromString parses a status name as used on the wire and in persistence.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined non-zero values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transition.
// Terminal orders accept no further stage timestamps.
func (s Status) IsTerminal() bool {
	switch s {
	case Received, Rejected, CanceledByCustomer, CanceledByStore, CanceledByDriver:
		return true
	default:
		return false
	}
}

// ReachedStage reports whether an order in this status has reached or passed
// the given fulfillment stage. Used by the progress calculator to pin passed
// stages at 100%.
func (s Status) ReachedStage(stage Stage) bool {
	var threshold Status
	switch stage {
	case StagePreparation:
		threshold = Prepared
	case StagePickup:
		threshold = PickedUp
	case StageDelivery:
		threshold = Delivered
	default:
		return false
	}

	// Terminal cancellation statuses sit numerically after Received but do
	// not represent forward progress.
	if s.IsTerminal() && s != Received {
		return false
	}

	return s >= threshold
}
