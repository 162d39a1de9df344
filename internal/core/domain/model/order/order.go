package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// defaultStageEstimate is the projection seeded for the next stage whenever
// an order enters Accepted, AcceptedByDriver, or PickedUp. Adjustable
// afterwards through AdjustEstimate.
const defaultStageEstimate = 10 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrItemsAreRequired is returned when creating an order with no lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("order items")
)

// Order is the aggregate root of the fulfillment domain. It owns the order's
// snapshotted lines, monetary amount, the role-gated lifecycle status, the
// driver assignment with its exclusion set, and the per-stage timestamps the
// progress calculator derives from.
//
// Invariants:
//   - customer is exactly one of authenticated user or guest session
//   - items are placement-time snapshots, never live product references
//   - status only changes through Transition, which consults the transition
//     table; an illegal request leaves the aggregate untouched
//   - terminal statuses deactivate the order and admit no further stamps
//   - a driver in the exclusion set can never claim this order
type Order struct {
	id               kernel.UUID
	customer         kernel.Owner
	storeID          kernel.UUID
	assignedDriverID *kernel.UUID
	excludedDrivers  []kernel.UUID
	items            []Item
	deliveryFee      kernel.Money
	amount           kernel.Money
	isTakeout        bool
	isPaid           bool
	isActive         bool
	status           Status

	placedAt    time.Time
	acceptedAt  StageTime
	preparedAt  StageTime
	claimedAt   StageTime
	pickedUpAt  StageTime
	deliveredAt StageTime
	receivedAt  StageTime

	guard guard.ConstructorGuard
}

// NewOrder creates an order at placement time in Placed status.
// The amount is computed from the item snapshots plus the delivery fee.
//
// Parameters:
//   - id: unique order identifier
//   - customer: the placing identity (user or guest session)
//   - storeID: the selling store
//   - items: placement-time snapshots, at least one
//   - deliveryFee: flat fee added to the item total
//   - isTakeout: whether the order is delivered by a driver
//   - placedAt: placement timestamp
func NewOrder(
	id kernel.UUID,
	customer kernel.Owner,
	storeID kernel.UUID,
	items []Item,
	deliveryFee kernel.Money,
	isTakeout bool,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:      Placed,
		isActive:    true,
		isTakeout:   isTakeout,
		deliveryFee: deliveryFee,
		acceptedAt:  NotReachedStageTime(),
		preparedAt:  NotReachedStageTime(),
		claimedAt:   NotReachedStageTime(),
		pickedUpAt:  NotReachedStageTime(),
		deliveredAt: NotReachedStageTime(),
		receivedAt:  NotReachedStageTime(),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setStoreID(storeID),
		o.setItems(items),
		o.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}

	amount, err := totalAmount(items, deliveryFee)
	if err != nil {
		return nil, err
	}
	o.amount = amount

	return o, nil
}

// RestoreOrderParams carries the persisted state of an order back into the
// domain. Used only by repositories.
type RestoreOrderParams struct {
	ID               kernel.UUID
	Customer         kernel.Owner
	StoreID          kernel.UUID
	AssignedDriverID *kernel.UUID
	ExcludedDrivers  []kernel.UUID
	Items            []Item
	DeliveryFee      kernel.Money
	Amount           kernel.Money
	IsTakeout        bool
	IsPaid           bool
	IsActive         bool
	Status           Status
	PlacedAt         time.Time
	AcceptedAt       StageTime
	PreparedAt       StageTime
	ClaimedAt        StageTime
	PickedUpAt       StageTime
	DeliveredAt      StageTime
	ReceivedAt       StageTime
}

// RestoreOrder reconstructs an order aggregate from persistent storage.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		assignedDriverID: p.AssignedDriverID,
		excludedDrivers:  append([]kernel.UUID(nil), p.ExcludedDrivers...),
		deliveryFee:      p.DeliveryFee,
		amount:           p.Amount,
		isTakeout:        p.IsTakeout,
		isPaid:           p.IsPaid,
		isActive:         p.IsActive,
		acceptedAt:       p.AcceptedAt,
		preparedAt:       p.PreparedAt,
		claimedAt:        p.ClaimedAt,
		pickedUpAt:       p.PickedUpAt,
		deliveredAt:      p.DeliveredAt,
		receivedAt:       p.ReceivedAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomer(p.Customer),
		o.setStoreID(p.StoreID),
		o.setItems(p.Items),
		o.setPlacedAt(p.PlacedAt),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = p.Status

	if o.assignedDriverID != nil {
		if err := o.assignedDriverID.Validate(); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Customer returns the placing identity (user or guest session).
func (o *Order) Customer() kernel.Owner { return o.customer }

// StoreID returns the selling store.
func (o *Order) StoreID() kernel.UUID { return o.storeID }

// AssignedDriver returns the claiming driver's id, or nil before a claim.
func (o *Order) AssignedDriver() *kernel.UUID { return o.assignedDriverID }

// ExcludedDrivers returns a copy of the exclusion set.
func (o *Order) ExcludedDrivers() []kernel.UUID {
	return append([]kernel.UUID(nil), o.excludedDrivers...)
}

// Items returns a copy of the snapshotted lines.
func (o *Order) Items() []Item { return append([]Item(nil), o.items...) }

// DeliveryFee returns the flat fee included in the amount.
func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }

// Amount returns the total: item subtotals plus delivery fee.
func (o *Order) Amount() kernel.Money { return o.amount }

// IsTakeout reports whether the order is delivered by a driver.
func (o *Order) IsTakeout() bool { return o.isTakeout }

// IsPaid reports whether payment completed.
func (o *Order) IsPaid() bool { return o.isPaid }

// IsActive reports whether the order is still in flight.
// Terminal transitions deactivate the order; orders are never deleted.
func (o *Order) IsActive() bool { return o.isActive }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PlacedAt returns the placement timestamp.
func (o *Order) PlacedAt() time.Time { return o.placedAt }

// AcceptedAt returns the acceptance stage timestamp.
func (o *Order) AcceptedAt() StageTime { return o.acceptedAt }

// PreparedAt returns the preparation stage timestamp.
func (o *Order) PreparedAt() StageTime { return o.preparedAt }

// ClaimedAt returns the driver-claim stage timestamp.
func (o *Order) ClaimedAt() StageTime { return o.claimedAt }

// PickedUpAt returns the pickup stage timestamp.
func (o *Order) PickedUpAt() StageTime { return o.pickedUpAt }

// DeliveredAt returns the delivery stage timestamp.
func (o *Order) DeliveredAt() StageTime { return o.deliveredAt }

// ReceivedAt returns the receipt stage timestamp.
func (o *Order) ReceivedAt() StageTime { return o.receivedAt }

// IsExcluded reports whether a driver was declined or removed from this
// order and must never be re-offered it.
func (o *Order) IsExcluded(driverID kernel.UUID) bool {
	for _, id := range o.excludedDrivers {
		if id.IsEqual(driverID) {
			return true
		}
	}
	return false
}

// MarkPaid records completed payment. Payment processing itself happens
// outside this module; only the flag is tracked.
func (o *Order) MarkPaid() {
	o.isPaid = true
}

// Transition requests a lifecycle move to target on behalf of actor.
//
// The move must be licensed by the transition table for the order's current
// status; otherwise InvalidTransitionError is returned and nothing changes.
// Non-admin actors must additionally carry the transition's defining role and
// match the order's corresponding party (store, customer, or assigned
// driver); a role mismatch is an invalid transition, an ownership mismatch is
// Forbidden. Admin actors bypass the party check but never the table.
//
// Side effects on success:
//   - entering Accepted stamps the acceptance actual and seeds the
//     preparation estimate at now+10min
//   - entering Prepared stamps the preparation actual
//   - entering AcceptedByDriver records the claiming driver, stamps the claim
//     actual, and seeds the pickup estimate
//   - entering PickedUp stamps the pickup actual and seeds the delivery estimate
//   - entering Delivered / Received stamps the respective actual
//   - entering any terminal status deactivates the order
func (o *Order) Transition(actor kernel.Actor, target Status, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	rule, ok := ruleFor(o.status, target)
	if !ok {
		return errs.NewInvalidTransitionError(o.status.String(), target.String(), actor.Role().String())
	}

	if rule.takeoutOnly && !o.isTakeout {
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), target.String(), actor.Role().String(),
			errors.New("order is not a takeout order"))
	}

	if !actor.IsAdmin() {
		if !roleSatisfies(actor.Role(), rule.role) {
			return errs.NewInvalidTransitionError(o.status.String(), target.String(), actor.Role().String())
		}
		if err := o.checkParty(rule.party, actor.ID(), target); err != nil {
			return err
		}
	}

	// Exclusion binds admins too: a removed driver is never re-offered the
	// order, regardless of who executes the claim.
	if rule.party == partyAnyDriver && o.IsExcluded(actor.ID()) {
		return errs.NewForbiddenError(actor.ID().String(), "claim order "+o.id.String())
	}

	o.apply(target, actor.ID(), now)
	return nil
}

// checkParty enforces the ownership half of the authorization rule.
func (o *Order) checkParty(p party, actorID kernel.UUID, target Status) error {
	operation := "transition order " + o.id.String() + " to " + target.String()

	switch p {
	case partyCustomer:
		if !o.customer.ID().IsEqual(actorID) {
			return errs.NewForbiddenError(actorID.String(), operation)
		}
	case partyStore:
		if !o.storeID.IsEqual(actorID) {
			return errs.NewForbiddenError(actorID.String(), operation)
		}
	case partyAssignedDriver:
		if o.assignedDriverID == nil || !o.assignedDriverID.IsEqual(actorID) {
			return errs.NewForbiddenError(actorID.String(), operation)
		}
	case partyAnyDriver:
		// Exclusion is checked by the caller; any other driver qualifies.
	}

	return nil
}

// apply mutates the aggregate for an already-validated transition.
func (o *Order) apply(target Status, actorID kernel.UUID, now time.Time) {
	o.status = target

	switch target {
	case Accepted:
		o.acceptedAt, _ = ActualStageTime(now)
		o.preparedAt, _ = EstimatedStageTime(now.Add(defaultStageEstimate))
	case Prepared:
		o.preparedAt, _ = ActualStageTime(now)
	case AcceptedByDriver:
		driverID := actorID
		o.assignedDriverID = &driverID
		o.claimedAt, _ = ActualStageTime(now)
		o.pickedUpAt, _ = EstimatedStageTime(now.Add(defaultStageEstimate))
	case PickedUp:
		o.pickedUpAt, _ = ActualStageTime(now)
		o.deliveredAt, _ = EstimatedStageTime(now.Add(defaultStageEstimate))
	case Delivered:
		o.deliveredAt, _ = ActualStageTime(now)
	case Received:
		o.receivedAt, _ = ActualStageTime(now)
	}

	if target.IsTerminal() {
		o.isActive = false
	}
}

// Decline removes a driver from this order permanently.
//
// On a Prepared takeout order any driver may decline the offer: the driver
// joins the exclusion set and the order stays offerable to others. On a
// claimed order the assigned driver may back out: the order reverts to
// Prepared, the assignment and claim-stage timestamps are cleared, and the
// driver joins the exclusion set. Declining twice is a no-op.
func (o *Order) Decline(driverID kernel.UUID, _ time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := driverID.Validate(); err != nil {
		return err
	}

	switch {
	case o.status == Prepared && o.isTakeout:
		o.addExcludedDriver(driverID)
		return nil

	case o.status == AcceptedByDriver && o.assignedDriverID != nil && o.assignedDriverID.IsEqual(driverID):
		o.status = Prepared
		o.assignedDriverID = nil
		o.claimedAt = NotReachedStageTime()
		o.pickedUpAt = NotReachedStageTime()
		o.addExcludedDriver(driverID)
		return nil

	default:
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), Prepared.String(), kernel.RoleDriver.String(),
			errors.New("order is not offerable to drivers"))
	}
}

// AdjustEstimate moves a stage's projected completion time.
//
// The preparation estimate is adjustable by the order's store while the order
// is Accepted; the pickup estimate by the assigned driver while
// AcceptedByDriver; the delivery estimate by the assigned driver while
// PickedUp. Admins may adjust any of them. The estimate is clamped so it
// never precedes now.
func (o *Order) AdjustEstimate(actor kernel.Actor, stage Stage, at time.Time, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := stage.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("estimate time")
	}

	if at.Before(now) {
		at = now
	}

	operation := "adjust " + stage.String() + " estimate of order " + o.id.String()

	switch stage {
	case StagePreparation:
		if o.status != Accepted {
			return errs.NewInvalidTransitionErrorWithCause(
				o.status.String(), Accepted.String(), actor.Role().String(),
				errors.New("preparation estimate is adjustable only while accepted"))
		}
		if !actor.IsAdmin() {
			if actor.Role() != kernel.RoleStore || !o.storeID.IsEqual(actor.ID()) {
				return errs.NewForbiddenError(actor.ID().String(), operation)
			}
		}
		o.preparedAt, _ = EstimatedStageTime(at)

	case StagePickup:
		if o.status != AcceptedByDriver {
			return errs.NewInvalidTransitionErrorWithCause(
				o.status.String(), AcceptedByDriver.String(), actor.Role().String(),
				errors.New("pickup estimate is adjustable only while claimed"))
		}
		if err := o.checkDriverAdjust(actor, operation); err != nil {
			return err
		}
		o.pickedUpAt, _ = EstimatedStageTime(at)

	case StageDelivery:
		if o.status != PickedUp {
			return errs.NewInvalidTransitionErrorWithCause(
				o.status.String(), PickedUp.String(), actor.Role().String(),
				errors.New("delivery estimate is adjustable only while picked up"))
		}
		if err := o.checkDriverAdjust(actor, operation); err != nil {
			return err
		}
		o.deliveredAt, _ = EstimatedStageTime(at)
	}

	return nil
}

func (o *Order) checkDriverAdjust(actor kernel.Actor, operation string) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role() != kernel.RoleDriver ||
		o.assignedDriverID == nil || !o.assignedDriverID.IsEqual(actor.ID()) {
		return errs.NewForbiddenError(actor.ID().String(), operation)
	}
	return nil
}

func (o *Order) addExcludedDriver(driverID kernel.UUID) {
	if o.IsExcluded(driverID) {
		return
	}
	o.excludedDrivers = append(o.excludedDrivers, driverID)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer kernel.Owner) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setPlacedAt(placedAt time.Time) error {
	if placedAt.IsZero() {
		return errs.NewValueIsRequiredError("placedAt")
	}
	o.placedAt = placedAt
	return nil
}

// totalAmount sums item subtotals and the delivery fee.
func totalAmount(items []Item, deliveryFee kernel.Money) (kernel.Money, error) {
	total := deliveryFee
	for _, item := range items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return kernel.Money{}, err
		}
		total = total.Add(subtotal)
	}
	return total, nil
}
