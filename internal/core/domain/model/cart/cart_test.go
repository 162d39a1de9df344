package cart_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newUserCart(t *testing.T) *cart.Cart {
	t.Helper()
	owner, err := kernel.NewUserOwner(kernel.NewUUID())
	require.NoError(t, err)
	c, err := cart.NewCart(kernel.NewUUID(), owner, testNow, 0)
	require.NoError(t, err)
	return c
}

func newGuestCart(t *testing.T, ttl time.Duration) *cart.Cart {
	t.Helper()
	owner, err := kernel.NewGuestOwner(kernel.NewUUID())
	require.NoError(t, err)
	c, err := cart.NewCart(kernel.NewUUID(), owner, testNow, ttl)
	require.NoError(t, err)
	return c
}

func TestNewCart(t *testing.T) {
	t.Run("user_cart_has_no_expiry", func(t *testing.T) {
		c := newUserCart(t)

		assert.Nil(t, c.ExpiresAt())
		assert.False(t, c.IsExpired(testNow.Add(1000*time.Hour)))
		assert.True(t, c.IsEmpty())
	})

	t.Run("guest_cart_expires_after_ttl", func(t *testing.T) {
		c := newGuestCart(t, 24*time.Hour)

		require.NotNil(t, c.ExpiresAt())
		assert.Equal(t, testNow.Add(24*time.Hour), *c.ExpiresAt())
		assert.False(t, c.IsExpired(testNow.Add(23*time.Hour)))
		assert.True(t, c.IsExpired(testNow.Add(25*time.Hour)))
	})

	t.Run("guest_cart_requires_positive_ttl", func(t *testing.T) {
		owner, _ := kernel.NewGuestOwner(kernel.NewUUID())
		_, err := cart.NewCart(kernel.NewUUID(), owner, testNow, 0)
		require.Error(t, err)
	})
}

func TestCart_AddLine(t *testing.T) {
	productID := kernel.NewUUID()
	storeID := kernel.NewUUID()

	t.Run("appends_new_line", func(t *testing.T) {
		c := newUserCart(t)

		require.NoError(t, c.AddLine(productID, storeID, nil, 2, testNow))

		require.Len(t, c.Lines(), 1)
		assert.Equal(t, 2, c.QuantityOf(productID, nil))
	})

	t.Run("merges_into_matching_line", func(t *testing.T) {
		c := newUserCart(t)
		require.NoError(t, c.AddLine(productID, storeID, nil, 2, testNow))

		later := testNow.Add(time.Minute)
		require.NoError(t, c.AddLine(productID, storeID, nil, 3, later))

		require.Len(t, c.Lines(), 1)
		assert.Equal(t, 5, c.QuantityOf(productID, nil))
		assert.Equal(t, later, c.UpdatedAt())
		// addedAt stays from the first add.
		assert.Equal(t, testNow, c.Lines()[0].AddedAt())
	})

	t.Run("catalog_scoped_lines_are_distinct", func(t *testing.T) {
		c := newUserCart(t)
		catalogID := kernel.NewUUID()

		require.NoError(t, c.AddLine(productID, storeID, nil, 1, testNow))
		require.NoError(t, c.AddLine(productID, storeID, &catalogID, 1, testNow))

		assert.Len(t, c.Lines(), 2)
		assert.Equal(t, 1, c.QuantityOf(productID, nil))
		assert.Equal(t, 1, c.QuantityOf(productID, &catalogID))
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		c := newUserCart(t)
		err := c.AddLine(productID, storeID, nil, 0, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCart_UpdateLineQuantity(t *testing.T) {
	productID := kernel.NewUUID()
	storeID := kernel.NewUUID()

	t.Run("updates_existing_line", func(t *testing.T) {
		c := newUserCart(t)
		require.NoError(t, c.AddLine(productID, storeID, nil, 2, testNow))

		require.NoError(t, c.UpdateLineQuantity(productID, nil, 7, testNow))
		assert.Equal(t, 7, c.QuantityOf(productID, nil))
	})

	t.Run("quantity_below_one_rejected", func(t *testing.T) {
		c := newUserCart(t)
		require.NoError(t, c.AddLine(productID, storeID, nil, 2, testNow))

		err := c.UpdateLineQuantity(productID, nil, 0, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("missing_line_not_found", func(t *testing.T) {
		c := newUserCart(t)
		err := c.UpdateLineQuantity(productID, nil, 3, testNow)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestCart_RemoveLine(t *testing.T) {
	productID := kernel.NewUUID()
	storeID := kernel.NewUUID()
	catalogID := kernel.NewUUID()

	t.Run("removes_all_lines_of_product", func(t *testing.T) {
		c := newUserCart(t)
		require.NoError(t, c.AddLine(productID, storeID, nil, 1, testNow))
		require.NoError(t, c.AddLine(productID, storeID, &catalogID, 2, testNow))
		require.NoError(t, c.AddLine(kernel.NewUUID(), storeID, nil, 1, testNow))

		require.NoError(t, c.RemoveLine(productID, testNow))
		assert.Len(t, c.Lines(), 1)
	})

	t.Run("missing_product_not_found", func(t *testing.T) {
		c := newUserCart(t)
		err := c.RemoveLine(productID, testNow)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestCart_RemoveLinesForStore(t *testing.T) {
	c := newUserCart(t)
	storeA := kernel.NewUUID()
	storeB := kernel.NewUUID()
	require.NoError(t, c.AddLine(kernel.NewUUID(), storeA, nil, 1, testNow))
	require.NoError(t, c.AddLine(kernel.NewUUID(), storeA, nil, 2, testNow))
	require.NoError(t, c.AddLine(kernel.NewUUID(), storeB, nil, 3, testNow))

	require.NoError(t, c.RemoveLinesForStore(storeA, testNow))

	require.Len(t, c.Lines(), 1)
	assert.True(t, c.Lines()[0].StoreID().IsEqual(storeB))
}

func TestCart_FindExactLine(t *testing.T) {
	c := newUserCart(t)
	productID := kernel.NewUUID()
	storeID := kernel.NewUUID()
	require.NoError(t, c.AddLine(productID, storeID, nil, 2, testNow))

	t.Run("match_requires_identical_quantity", func(t *testing.T) {
		_, found := c.FindExactLine(productID, storeID, 2)
		assert.True(t, found)

		_, found = c.FindExactLine(productID, storeID, 3)
		assert.False(t, found)
	})

	t.Run("match_requires_same_store", func(t *testing.T) {
		_, found := c.FindExactLine(productID, kernel.NewUUID(), 2)
		assert.False(t, found)
	})
}

func TestCart_AbsorbLines(t *testing.T) {
	productID := kernel.NewUUID()
	storeID := kernel.NewUUID()

	userCart := newUserCart(t)
	require.NoError(t, userCart.AddLine(productID, storeID, nil, 2, testNow))

	guestCart := newGuestCart(t, time.Hour)
	require.NoError(t, guestCart.AddLine(productID, storeID, nil, 3, testNow))
	require.NoError(t, guestCart.AddLine(kernel.NewUUID(), storeID, nil, 1, testNow))

	require.NoError(t, userCart.AbsorbLines(guestCart.Lines(), testNow))

	assert.Len(t, userCart.Lines(), 2)
	assert.Equal(t, 5, userCart.QuantityOf(productID, nil))
}

func TestCart_ExtendExpiry(t *testing.T) {
	t.Run("guest_cart_expiry_moves_forward", func(t *testing.T) {
		c := newGuestCart(t, time.Hour)
		until := testNow.Add(48 * time.Hour)

		require.NoError(t, c.ExtendExpiry(until, testNow))
		assert.Equal(t, until, *c.ExpiresAt())
	})

	t.Run("user_cart_rejects_extension", func(t *testing.T) {
		c := newUserCart(t)
		err := c.ExtendExpiry(testNow.Add(time.Hour), testNow)
		require.Error(t, err)
	})

	t.Run("cart_writes_do_not_move_expiry", func(t *testing.T) {
		c := newGuestCart(t, time.Hour)
		expiry := *c.ExpiresAt()

		require.NoError(t, c.AddLine(kernel.NewUUID(), kernel.NewUUID(), nil, 1, testNow.Add(30*time.Minute)))

		assert.Equal(t, expiry, *c.ExpiresAt())
	})
}

func TestRestoreCart_RoundTrip(t *testing.T) {
	c := newGuestCart(t, 24*time.Hour)
	require.NoError(t, c.AddLine(kernel.NewUUID(), kernel.NewUUID(), nil, 2, testNow))

	restored, err := cart.RestoreCart(cart.RestoreCartParams{
		ID:        c.ID(),
		Owner:     c.Owner(),
		Lines:     c.Lines(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
		ExpiresAt: c.ExpiresAt(),
	})

	require.NoError(t, err)
	assert.True(t, restored.ID().IsEqual(c.ID()))
	assert.Equal(t, c.Lines(), restored.Lines())
	assert.Equal(t, *c.ExpiresAt(), *restored.ExpiresAt())
}

func TestCart_Validate(t *testing.T) {
	var c cart.Cart
	require.ErrorIs(t, c.Validate(), cart.ErrCartIsNotConstructed)
}
