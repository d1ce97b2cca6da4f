package booking

import (
	"context"
	"fmt"
	"testing"

	"decorhub/models"
	"decorhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuery(t *testing.T) {
	q, err := NormalizeQuery(models.BookingQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, "createdAt", q.SortBy)
	assert.Equal(t, "desc", q.SortOrder)

	q, err = NormalizeQuery(models.BookingQuery{Page: 3, Limit: 500, SortBy: "servicePrice", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 100, q.Limit)

	_, err = NormalizeQuery(models.BookingQuery{SortBy: "password"})
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = NormalizeQuery(models.BookingQuery{SortOrder: "sideways"})
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestListAll_Pagination(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 25; i++ {
		f.book(t, fmt.Sprintf("customer%d@decorhub.test", i), "svc-stage")
	}

	_, err := f.mgr.ListAll(ctx, models.BookingQuery{}, customerEmail)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	page, err := f.mgr.ListAll(ctx, models.BookingQuery{Page: 3, Limit: 10}, adminEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 5)

	beyond, err := f.mgr.ListAll(ctx, models.BookingQuery{Page: 9, Limit: 10}, adminEmail)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
}

func TestListForUserAndDecorator(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.book(t, customerEmail, "svc-stage")
	f.book(t, customerEmail, "svc-home")
	f.book(t, otherEmail, "svc-stage")

	mine, err := f.mgr.ListForUser(ctx, customerEmail, customerEmail)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = f.mgr.ListForUser(ctx, customerEmail, otherEmail)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = f.mgr.AssignDecorator(ctx, b.ID, "dec-1", adminEmail)
	require.NoError(t, err)
	projects, err := f.mgr.ListForDecorator(ctx, decoratorEmail)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, b.ID, projects[0].ID)

	_, err = f.mgr.ListForDecorator(ctx, customerEmail)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
