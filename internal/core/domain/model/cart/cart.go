package cart

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart was not created
	// through NewCart or RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")

	// ErrLineNotFound is returned when mutating a line absent from the cart.
	ErrLineNotFound = errs.NewObjectNotFoundError("cart line", "no line for product")
)

// Cart holds the pending line items of one owner: an authenticated user or
// an anonymous guest session. Carts are created lazily on first add and hold
// at most one line per (product, catalog) pair.
//
// Guest carts carry an expiry that moves only on explicit session extension,
// not on every write, so abandonment is predictable for the sweeper.
type Cart struct {
	id        kernel.UUID
	owner     kernel.Owner
	lines     []Line
	createdAt time.Time
	updatedAt time.Time
	expiresAt *time.Time

	guard guard.ConstructorGuard
}

// NewCart creates an empty cart for an owner. Guest carts expire at
// now+guestTTL; user carts never expire.
func NewCart(id kernel.UUID, owner kernel.Owner, now time.Time, guestTTL time.Duration) (*Cart, error) {
	c := &Cart{
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setOwner(owner),
	); err != nil {
		return nil, err
	}

	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	if owner.IsGuest() {
		if guestTTL <= 0 {
			return nil, errs.NewValueIsInvalidError("guestTTL must be positive for guest carts")
		}
		expiry := now.Add(guestTTL)
		c.expiresAt = &expiry
	}

	return c, nil
}

// RestoreCartParams carries persisted cart state back into the domain.
type RestoreCartParams struct {
	ID        kernel.UUID
	Owner     kernel.Owner
	Lines     []Line
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt *time.Time
}

// RestoreCart reconstructs a cart aggregate from persistent storage.
func RestoreCart(p RestoreCartParams) (*Cart, error) {
	c := &Cart{
		createdAt: p.CreatedAt,
		updatedAt: p.UpdatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(p.ID),
		c.setOwner(p.Owner),
	); err != nil {
		return nil, err
	}

	for _, line := range p.Lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}
	c.lines = append([]Line(nil), p.Lines...)

	if p.ExpiresAt != nil {
		expiry := *p.ExpiresAt
		c.expiresAt = &expiry
	}

	return c, nil
}

// Validate ensures the Cart was constructed through NewCart or RestoreCart.
func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() kernel.UUID { return c.id }

// Owner returns the identity the cart's lines belong to.
func (c *Cart) Owner() kernel.Owner { return c.owner }

// Lines returns a copy of the cart's lines.
func (c *Cart) Lines() []Line { return append([]Line(nil), c.lines...) }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// CreatedAt returns the creation timestamp.
func (c *Cart) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }

// ExpiresAt returns the guest-cart expiry, nil for user carts.
func (c *Cart) ExpiresAt() *time.Time {
	if c.expiresAt == nil {
		return nil
	}
	expiry := *c.expiresAt
	return &expiry
}

// IsExpired reports whether a guest cart passed its expiry.
// User carts never expire.
func (c *Cart) IsExpired(now time.Time) bool {
	return c.expiresAt != nil && now.After(*c.expiresAt)
}

// QuantityOf returns the reserved quantity in the (product, catalog) slot,
// zero if no such line exists.
func (c *Cart) QuantityOf(productID kernel.UUID, catalogID *kernel.UUID) int {
	for _, line := range c.lines {
		if line.MatchesKey(productID, catalogID) {
			return line.Quantity()
		}
	}
	return 0
}

// FindExactLine returns the line matching product, store, and quantity
// exactly. Order placement uses it to require that checkout items match a
// previously reserved line, blocking quantity inflation at checkout.
func (c *Cart) FindExactLine(productID, storeID kernel.UUID, quantity int) (Line, bool) {
	for _, line := range c.lines {
		if line.ProductID().IsEqual(productID) &&
			line.StoreID().IsEqual(storeID) &&
			line.Quantity() == quantity {
			return line, true
		}
	}
	return Line{}, false
}

// AddLine merges quantity into an existing (product, catalog) line or
// appends a new one, and stamps updatedAt. Availability and stock are the
// caller's concern; the cart only enforces its structural invariants.
func (c *Cart) AddLine(
	productID kernel.UUID,
	storeID kernel.UUID,
	catalogID *kernel.UUID,
	quantity int,
	now time.Time,
) error {
	if err := c.Validate(); err != nil {
		return err
	}

	for i, line := range c.lines {
		if line.MatchesKey(productID, catalogID) {
			merged, err := NewLine(productID, line.StoreID(), catalogID, line.Quantity()+quantity, line.AddedAt())
			if err != nil {
				return err
			}
			c.lines[i] = merged
			c.updatedAt = now
			return nil
		}
	}

	line, err := NewLine(productID, storeID, catalogID, quantity, now)
	if err != nil {
		return err
	}

	c.lines = append(c.lines, line)
	c.updatedAt = now
	return nil
}

// UpdateLineQuantity replaces the quantity of an existing line.
// Quantities below 1 are rejected; use RemoveLine instead.
func (c *Cart) UpdateLineQuantity(
	productID kernel.UUID,
	catalogID *kernel.UUID,
	quantity int,
	now time.Time,
) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineQuantity)
	}

	for i, line := range c.lines {
		if line.MatchesKey(productID, catalogID) {
			updated, err := NewLine(productID, line.StoreID(), catalogID, quantity, line.AddedAt())
			if err != nil {
				return err
			}
			c.lines[i] = updated
			c.updatedAt = now
			return nil
		}
	}

	return ErrLineNotFound
}

// RemoveLine removes every line of the given product, regardless of catalog.
func (c *Cart) RemoveLine(productID kernel.UUID, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}

	kept := c.lines[:0]
	removed := false
	for _, line := range c.lines {
		if line.ProductID().IsEqual(productID) {
			removed = true
			continue
		}
		kept = append(kept, line)
	}

	if !removed {
		return ErrLineNotFound
	}

	c.lines = kept
	c.updatedAt = now
	return nil
}

// RemoveLineByKey removes the single line in the (product, catalog) slot.
// Used by placement to trim exactly the consumed lines.
func (c *Cart) RemoveLineByKey(productID kernel.UUID, catalogID *kernel.UUID, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}

	for i, line := range c.lines {
		if line.MatchesKey(productID, catalogID) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.updatedAt = now
			return nil
		}
	}

	return ErrLineNotFound
}

// Clear removes every line.
func (c *Cart) Clear(now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.lines = nil
	c.updatedAt = now
	return nil
}

// RemoveLinesForStore removes every line sold by the given store, leaving
// lines for other stores untouched.
func (c *Cart) RemoveLinesForStore(storeID kernel.UUID, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}

	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.StoreID().IsEqual(storeID) {
			continue
		}
		kept = append(kept, line)
	}

	c.lines = kept
	c.updatedAt = now
	return nil
}

// AbsorbLines folds another cart's lines into this one: quantities sum on a
// matching (product, catalog) pair, other lines append. Guest migration uses
// it to merge an anonymous cart into the user's cart.
func (c *Cart) AbsorbLines(lines []Line, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}

	for _, incoming := range lines {
		if err := incoming.Validate(); err != nil {
			return err
		}
		if err := c.AddLine(
			incoming.ProductID(), incoming.StoreID(), incoming.CatalogID(),
			incoming.Quantity(), now,
		); err != nil {
			return err
		}
	}

	return nil
}

// ExtendExpiry pushes a guest cart's expiry forward. Called only on explicit
// session extension so that expiry stays predictable.
func (c *Cart) ExtendExpiry(until time.Time, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.expiresAt == nil {
		return errs.NewValueIsInvalidError("user carts have no expiry")
	}
	if until.Before(now) {
		return errs.NewValueIsInvalidError("expiry must not precede now")
	}

	c.expiresAt = &until
	c.updatedAt = now
	return nil
}

func (c *Cart) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cart) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	c.owner = owner
	return nil
}
