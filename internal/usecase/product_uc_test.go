package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/kiddocorner/internal/domain"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "baby-romper", Slugify("  Baby   Romper "))
	assert.Equal(t, "soft-toy-3-pack", Slugify("Soft Toy (3-Pack)!"))
	assert.Equal(t, "", Slugify("শিশু"))
}

func TestCreateMakesSlugUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Baby Romper", 20)
	b := f.product(t, "Baby Romper", 22)
	c := f.product(t, "Baby Romper", 24)
	assert.Equal(t, "baby-romper", a.Slug)
	assert.Equal(t, "baby-romper-2", b.Slug)
	assert.Equal(t, "baby-romper-3", c.Slug)

	bn := f.product(t, "শিশু", 10)
	assert.Equal(t, bn.ID.String()[:8], bn.Slug)

	err := f.products.Create(ctx, &domain.Product{Name: "Free", Price: 0})
	assert.True(t, domain.IsValidation(err))
	sale := 30.0
	err = f.products.Create(ctx, &domain.Product{Name: "Sale", Price: 30, SalePrice: &sale})
	assert.True(t, domain.IsValidation(err))
}

func TestUpdateKeepsSlugUnlessRenamed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Bib", 5)
	p.Price = 6
	require.NoError(t, f.products.Update(ctx, p))
	assert.Equal(t, "bib", p.Slug)

	p.Name = "Cotton Bib"
	require.NoError(t, f.products.Update(ctx, p))
	got, err := f.products.GetBySlug(ctx, "cotton-bib")
	require.NoError(t, err)
	assert.Equal(t, 6.0, got.Price)
}

func stockExample(t *testing.T, f *fixture) (*domain.Product, domain.ProductAttributes) {
	t.Helper()
	ctx := context.Background()
	p := f.product(t, "Romper", 25)
	form := &domain.AttributeForm{BasePrice: 25}
	form.AddColor("Red", "#f00")
	form.AddSize("S", domain.ScaleClothing)
	form.AddSize("M", domain.ScaleClothing)
	form.GenerateAll()
	form.Variations[0].Stock = 0
	form.Variations[1].Stock = 5
	_, err := f.attrs.Save(ctx, p.ID, form)
	require.NoError(t, err)
	attrs, err := f.products.Attributes(ctx, p.ID)
	require.NoError(t, err)
	return p, attrs
}

func TestOptionsDisablesOutOfStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, attrs := stockExample(t, f)
	red := attrs.Colors[0].ID
	small, medium := attrs.Sizes[0].ID, attrs.Sizes[1].ID

	opts, err := f.products.Options(ctx, p, uuid.Nil, small)
	require.NoError(t, err)
	assert.True(t, opts.Visible)
	assert.True(t, opts.Colors[0].Disabled)
	require.NotNil(t, opts.Selected)
	assert.Equal(t, "S", opts.Selected.SizeName)
	assert.False(t, opts.InStock)

	opts, err = f.products.Options(ctx, p, red, medium)
	require.NoError(t, err)
	assert.False(t, opts.Colors[0].Disabled)
	assert.True(t, opts.Colors[0].Selected)
	assert.True(t, opts.InStock)
	assert.True(t, opts.Selected.LowStock)
	assert.Equal(t, 25.0, opts.Price)

	v, err := f.products.Resolve(ctx, p.ID, red, medium)
	require.NoError(t, err)
	assert.Equal(t, attrs.Variations[1].ID, v.ID)
	_, err = f.products.Resolve(ctx, p.ID, red, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOptionsWithoutAttributes(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Plain Blanket", 40)
	opts, err := f.products.Options(context.Background(), p, uuid.Nil, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, opts.Visible)
	assert.Nil(t, opts.Selected)
	assert.True(t, opts.InStock)
	assert.Equal(t, 40.0, opts.Price)
}

func TestSetFeatured(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "A", 1)
	b := f.product(t, "B", 1)
	require.NoError(t, f.products.SetFeatured(ctx, []uuid.UUID{b.ID, a.ID}))
	list, err := f.products.FeaturedProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)

	assert.True(t, domain.IsValidation(f.products.SetFeatured(ctx, []uuid.UUID{a.ID, a.ID})))
	assert.ErrorIs(t, f.products.SetFeatured(ctx, []uuid.UUID{uuid.New()}), domain.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := stockExample(t, f)
	_, err := f.products.Delete(ctx, p.ID)
	require.NoError(t, err)
	_, err = f.products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.AttributeStats{}, f.attrs.Stats(ctx, p.ID))
}
