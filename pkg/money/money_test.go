package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "lankaconnect/pkg/domain-errors"
)

func TestNew(t *testing.T) {
	t.Run("normalizes currency", func(t *testing.T) {
		m, err := New(2500, " lkr ")
		require.NoError(t, err)
		assert.Equal(t, Money{Amount: 2500, Currency: "LKR"}, m)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := New(-1, "LKR")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects bad currency code", func(t *testing.T) {
		for _, currency := range []string{"", "LK", "RUPEES"} {
			_, err := New(100, currency)
			require.Error(t, err, "currency %q", currency)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("zero amount is valid", func(t *testing.T) {
		m, err := New(0, "USD")
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})
}

func TestAdd(t *testing.T) {
	a, _ := New(1500, "LKR")
	b, _ := New(2500, "LKR")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), sum.Amount)
	assert.Equal(t, "LKR", sum.Currency)

	t.Run("currency mismatch fails", func(t *testing.T) {
		usd, _ := New(100, "USD")
		_, err := a.Add(usd)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestMultiplyQuantity(t *testing.T) {
	price, _ := New(2500, "LKR")

	total, err := price.MultiplyQuantity(4)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), total.Amount)

	t.Run("zero quantity is zero total", func(t *testing.T) {
		total, err := price.MultiplyQuantity(0)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("negative quantity fails", func(t *testing.T) {
		_, err := price.MultiplyQuantity(-1)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestString(t *testing.T) {
	m, _ := New(123456, "LKR")
	assert.Equal(t, "1234.56 LKR", m.String())

	assert.Equal(t, "0.05 USD", Money{Amount: 5, Currency: "USD"}.String())
}
