package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/lending-service/pkg/auth"
)

func TestAuthContext(t *testing.T) {
	t.Parallel()
	_, err := auth.UserName(context.Background())
	require.ErrorIs(t, err, auth.ErrUserName)

	ctx := auth.SetAuthContext(context.Background(), "alice", "user")
	name, err := auth.UserName(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", name)
	require.Equal(t, "user", auth.UserRole(ctx))

	_, err = auth.UserName(auth.SetAuthContext(context.Background(), "", ""))
	require.ErrorIs(t, err, auth.ErrUserName)
}
