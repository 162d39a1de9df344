package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromCents(t *testing.T) {
	t.Run("valid_amount", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(1050)

		require.NoError(t, err)
		assert.Equal(t, int64(1050), m.Cents())
	})

	t.Run("zero_is_valid", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("negative_is_invalid", func(t *testing.T) {
		_, err := kernel.NewMoneyFromCents(-1)
		require.ErrorIs(t, err, kernel.ErrAmountIsNegative)
	})
}

func TestMoney_Add(t *testing.T) {
	a, _ := kernel.NewMoneyFromCents(1000)
	b, _ := kernel.NewMoneyFromCents(250)

	assert.Equal(t, int64(1250), a.Add(b).Cents())
}

func TestMoney_MulQuantity(t *testing.T) {
	t.Run("multiplies_by_item_count", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromCents(1000)

		total, err := price.MulQuantity(2)

		require.NoError(t, err)
		assert.Equal(t, int64(2000), total.Cents())
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromCents(1000)

		_, err := price.MulQuantity(0)
		require.Error(t, err)
	})
}

func TestMoney_String(t *testing.T) {
	m, _ := kernel.NewMoneyFromCents(2005)
	assert.Equal(t, "20.05", m.String())
}
