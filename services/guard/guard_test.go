package guard

import (
	"context"
	"testing"
	"time"

	"decorhub/database/repository/memory"
	"decorhub/models"
	"decorhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleGuard(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, _, err := store.Users().UpsertLogin(ctx, &models.User{Email: "admin@decorhub.test", Role: models.RoleAdmin}, time.Now())
	require.NoError(t, err)
	_, _, err = store.Users().UpsertLogin(ctx, &models.User{Email: "legacy@decorhub.test", Role: "Decorator"}, time.Now())
	require.NoError(t, err)
	g := NewRoleGuard(store.Users())

	role, err := g.RoleOf(ctx, "admin@decorhub.test")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	role, err = g.RoleOf(ctx, "legacy@decorhub.test")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDecorator, role, "stored roles are case-normalised")

	role, err = g.RoleOf(ctx, "stranger@decorhub.test")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, role)

	_, err = g.RoleOf(ctx, "")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, err = g.Require(ctx, "stranger@decorhub.test", models.RoleAdmin)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	ok, err := g.IsAdmin(ctx, "admin@decorhub.test")
	require.NoError(t, err)
	assert.True(t, ok)
}
