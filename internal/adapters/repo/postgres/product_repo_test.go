package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/kiddocorner/internal/domain"
)

func TestProductListFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepo(db)
	seedProduct(t, db, "baby-romper", 20)
	seedProduct(t, db, "soft-blanket", 35)
	hidden := seedProduct(t, db, "old-rattle", 5)
	hidden.Active = false
	require.NoError(t, repo.Save(ctx, hidden))

	list, total, err := repo.List(ctx, domain.ProductFilter{ActiveOnly: true, Sort: "price_desc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "soft-blanket", list[0].Slug)

	list, total, err = repo.List(ctx, domain.ProductFilter{Query: "ROMP"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "baby-romper", list[0].Slug)

	list, _, err = repo.List(ctx, domain.ProductFilter{PageSize: 1, Page: 2})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	cats, err := repo.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"toys"}, cats)
}

func TestProductFindAndSlugExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepo(db)
	p := seedProduct(t, db, "bib", 4)
	require.NoError(t, repo.AddImages(ctx, p.ID, []domain.Image{{URL: "/a.jpg"}, {URL: "/b.jpg"}}))

	got, err := repo.FindBySlug(ctx, "bib")
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "/b.jpg", got.Images[1].URL)
	assert.Equal(t, 1, got.Images[1].DisplayOrder)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := repo.SlugExists(ctx, "bib", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.SlugExists(ctx, "bib", p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductDeleteFull(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepo(db)
	p := seedProduct(t, db, "stroller", 200)
	require.NoError(t, repo.AddImages(ctx, p.ID, []domain.Image{{URL: "/s.jpg"}}))
	_, err := NewAttributeRepo(db).SaveAttributes(ctx, p.ID, redBlueSM(200))
	require.NoError(t, err)
	require.NoError(t, NewFeaturedProductRepo(db).Save(ctx, p.ID, 0))

	urls, err := repo.DeleteFull(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/s.jpg"}, urls)

	for _, m := range []any{&domain.Product{}, &domain.Image{}, &domain.Color{}, &domain.Size{}, &domain.Variation{}, &domain.FeaturedProduct{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n)
	}
	_, err = repo.DeleteFull(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFeaturedProducts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewFeaturedProductRepo(db)
	a := seedProduct(t, db, "a", 1)
	b := seedProduct(t, db, "b", 2)
	c := seedProduct(t, db, "c", 3)

	require.NoError(t, repo.Replace(ctx, []uuid.UUID{c.ID, a.ID}))
	got, err := repo.GetWithProducts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Slug)
	assert.True(t, got[0].Featured)

	require.NoError(t, repo.Save(ctx, b.ID, 5))
	require.NoError(t, repo.Delete(ctx, c.ID))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ProductID)
	assert.Equal(t, b.ID, list[1].ProductID)

	pc, err := NewProductRepo(db).FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, pc.Featured)
}
