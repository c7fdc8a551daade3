package kernel_test

import (
	"strings"
	"testing"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumber(t *testing.T) {
	t.Run("valid number", func(t *testing.T) {
		number, err := kernel.NewOrderNumber("DL-20260901-GAR-7F3K")

		require.NoError(t, err)
		assert.Equal(t, "DL-20260901-GAR-7F3K", number.String())
		require.NoError(t, number.Validate())
	})

	t.Run("empty number is rejected", func(t *testing.T) {
		_, err := kernel.NewOrderNumber("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("too long number is rejected", func(t *testing.T) {
		_, err := kernel.NewOrderNumber(strings.Repeat("A", kernel.MaxOrderNumberLength+1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("lowercase and spaces are rejected", func(t *testing.T) {
		for _, candidate := range []string{"dl-1234", "DL 1234", "DL_1234", "DL#1234"} {
			_, err := kernel.NewOrderNumber(candidate)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "candidate %q", candidate)
		}
	})
}

func TestOrderNumber_IsEqual(t *testing.T) {
	first, err := kernel.NewOrderNumber("DL-20260901-GAR-7F3K")
	require.NoError(t, err)
	second, err := kernel.NewOrderNumber("DL-20260901-GAR-9B2M")
	require.NoError(t, err)
	copied := first

	assert.True(t, first.IsEqual(copied))
	assert.False(t, first.IsEqual(second))
}

func TestOrderNumber_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var number kernel.OrderNumber
		require.ErrorIs(t, number.Validate(), kernel.ErrOrderNumberIsNotConstructed)
	})
}
