package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProduct(t *testing.T) {
	t.Run("Price_EncodesAsNumber", func(t *testing.T) {
		p := Product{ID: 1, ProductName: "Boot", Price: decimal.RequireFromString("19.90")}

		raw, err := json.Marshal(p)
		require.NoError(t, err)
		require.Contains(t, string(raw), `"price":19.9`)
	})

	t.Run("Price_DecodesStringOrNumber", func(t *testing.T) {
		var a, b Product
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"price":"12.50"}`), &a))
		require.NoError(t, json.Unmarshal([]byte(`{"id":2,"price":12.5}`), &b))
		require.True(t, a.Price.Equal(b.Price))
	})

	t.Run("StockToggle_FlipsBothWays", func(t *testing.T) {
		p := Product{StockStatus: StockAvailable}
		require.Equal(t, StockUnavailable, p.WithToggledStock().StockStatus)
		require.Equal(t, StockAvailable, p.WithToggledStock().WithToggledStock().StockStatus)
		require.Equal(t, StockAvailable, p.StockStatus)
	})

	t.Run("DisplayName_FallsBackToName", func(t *testing.T) {
		require.Equal(t, "Sneaker", Product{Name: "Sneaker"}.DisplayName())
		require.Equal(t, "Boot", Product{ProductName: "Boot", Name: "x"}.DisplayName())
	})

	t.Run("UserStatus_Toggle", func(t *testing.T) {
		u := AdminUser{Status: UserActive}
		require.Equal(t, UserInactive, u.WithToggledStatus().Status)
		require.Equal(t, "inactive", UserInactive.String())
	})
}
