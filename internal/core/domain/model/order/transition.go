package order

import "marketplace/internal/core/domain/model/kernel"

// party identifies which of the order's parties the acting identity must
// match for a transition. Admin actors bypass the party check, never the
// transition table itself.
type party int

const (
	// partyCustomer is the order's customer: the authenticated user or the
	// guest session that placed it.
	partyCustomer party = iota + 1

	// partyStore is the order's selling store.
	partyStore

	// partyAssignedDriver is the driver currently assigned to the order.
	partyAssignedDriver

	// partyAnyDriver is any driver not in the order's exclusion set;
	// used only for the claim transition.
	partyAnyDriver
)

// transitionRule describes one legal edge of the fulfillment graph.
type transitionRule struct {
	role        kernel.Role
	party       party
	takeoutOnly bool
}

// transitionTable is the single source of truth for order lifecycle legality:
// (current status, target status) -> (required role, required party). Any
// combination absent from the table is an invalid transition regardless of
// who asks.
func transitionTable() map[Status]map[Status]transitionRule {
	return map[Status]map[Status]transitionRule{
		Placed: {
			Accepted:           {role: kernel.RoleStore, party: partyStore},
			Rejected:           {role: kernel.RoleStore, party: partyStore},
			CanceledByCustomer: {role: kernel.RoleCustomer, party: partyCustomer},
		},
		Accepted: {
			Prepared:        {role: kernel.RoleStore, party: partyStore},
			CanceledByStore: {role: kernel.RoleStore, party: partyStore},
		},
		Prepared: {
			AcceptedByDriver: {role: kernel.RoleDriver, party: partyAnyDriver, takeoutOnly: true},
			CanceledByStore:  {role: kernel.RoleStore, party: partyStore},
		},
		AcceptedByDriver: {
			PickedUp: {role: kernel.RoleDriver, party: partyAssignedDriver, takeoutOnly: true},
		},
		PickedUp: {
			Delivered: {role: kernel.RoleDriver, party: partyAssignedDriver},
		},
		Delivered: {
			Received: {role: kernel.RoleCustomer, party: partyCustomer},
		},
	}
}

// ruleFor looks up the rule governing a from->to move.
func ruleFor(from, to Status) (transitionRule, bool) {
	targets, ok := transitionTable()[from]
	if !ok {
		return transitionRule{}, false
	}
	rule, ok := targets[to]
	return rule, ok
}

// roleSatisfies reports whether an actor role satisfies a rule's defining
// role. Guest sessions act as the customer on their own orders, so RoleGuest
// is accepted wherever RoleCustomer is required; ownership is still enforced
// separately through the party check.
func roleSatisfies(actorRole, required kernel.Role) bool {
	if actorRole == required {
		return true
	}
	return required == kernel.RoleCustomer && actorRole == kernel.RoleGuest
}
