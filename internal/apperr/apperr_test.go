package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("Network_CarriesOperationAndEntity", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Network("list", EntityProduct, 0, cause)

		require.Equal(t, KindNetwork, err.Kind)
		require.Equal(t, "list", err.Op)
		require.Equal(t, EntityProduct, err.Entity)
		require.ErrorIs(t, err, cause)
		require.Equal(t, "Failed to list product", PublicMessage(err))
	})

	t.Run("Is_FindsKindThroughWrapping", func(t *testing.T) {
		err := fmt.Errorf("submit: %w", Upload(errors.New("boom")))

		require.True(t, Is(err, KindUpload))
		require.False(t, Is(err, KindNetwork))
	})

	t.Run("PublicMessage_FallsBackForPlainErrors", func(t *testing.T) {
		require.Equal(t, "Unexpected error", PublicMessage(errors.New("x")))
	})

	t.Run("Error_FormatsStatus", func(t *testing.T) {
		err := Network("update", EntityCategory, 500, errors.New("internal"))
		require.Equal(t, "network_or_server_failure (update category) status=500: internal", err.Error())
	})

	t.Run("NotFound_UsesEntityName", func(t *testing.T) {
		err := NotFound("get", EntityCategory, nil)
		require.Equal(t, "Category not found", err.PublicMsg)
		require.True(t, Is(err, KindNotFound))
	})

	t.Run("MissingIdentifier_HasNoCause", func(t *testing.T) {
		err := MissingIdentifier("remove", EntityAdminUser)
		require.Nil(t, errors.Unwrap(err))
		require.Equal(t, "No admin user ID provided", PublicMessage(err))
	})
}
