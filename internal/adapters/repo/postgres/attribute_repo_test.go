package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/phenrril/kiddocorner/internal/domain"
)

func redBlueSM(price float64) *domain.AttributeForm {
	f := &domain.AttributeForm{BasePrice: price}
	f.AddColor("Red", "#FF0000")
	f.AddColor("Blue", "#0000FF")
	f.AddSize("S", domain.ScaleClothing)
	f.AddSize("M", domain.ScaleClothing)
	f.GenerateAll()
	return f
}

func TestSaveAttributesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, "romper", 25)
	repo := NewAttributeRepo(db)

	f := redBlueSM(25)
	f.Variations[0].Images = []domain.ImageDraft{{Key: domain.NewDraftKey(), URL: "/uploads/a.jpg", IsPrimary: true}}
	f.Variations[1].SKU = " RS-M "
	ids, err := repo.SaveAttributes(ctx, p.ID, f)
	require.NoError(t, err)
	assert.Len(t, ids, 9)

	colors, err := repo.ListColors(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, colors, 2)
	assert.Equal(t, "Red", colors[0].Name)
	assert.Equal(t, "#FF0000", colors[0].HexCode)
	assert.Equal(t, ids[f.Colors[0].Key], colors[0].ID)

	sizes, err := repo.ListSizes(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, "S", sizes[0].Name)

	vars, err := repo.ListVariations(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, vars, 4)
	assert.True(t, vars[0].IsDefault)
	assert.Equal(t, colors[0].ID, *vars[0].ColorID)
	assert.Equal(t, sizes[0].ID, *vars[0].SizeID)
	assert.Equal(t, 25.0, vars[0].Price)
	assert.Equal(t, 0, vars[0].Stock)
	require.Len(t, vars[0].Images, 1)
	assert.Equal(t, "/uploads/a.jpg", vars[0].Images[0].ImageURL)
	assert.True(t, vars[0].Images[0].IsPrimary)
	assert.Equal(t, domain.MediaImage, vars[0].Images[0].MediaType)
	require.NotNil(t, vars[1].SKU)
	assert.Equal(t, "RS-M", *vars[1].SKU)
	assert.Nil(t, vars[2].SKU)
	for _, v := range vars[1:] {
		assert.False(t, v.IsDefault)
	}

	st, err := repo.Stats(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttributeStats{Colors: 2, Sizes: 2, Variations: 4}, st)
}

func TestSaveAttributesTwiceReplacesGraph(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, "bib", 10)
	repo := NewAttributeRepo(db)

	_, err := repo.SaveAttributes(ctx, p.ID, redBlueSM(10))
	require.NoError(t, err)
	first, err := repo.ListVariations(ctx, p.ID)
	require.NoError(t, err)

	order := &domain.Order{ID: uuid.New(), OrderNumber: "ORD-1", Status: domain.OrderStatusPending, ProductID: p.ID, VariationID: &first[0].ID, Quantity: 1}
	require.NoError(t, NewOrderRepo(db).Create(ctx, order))

	colors, err := repo.ListColors(ctx, p.ID)
	require.NoError(t, err)
	sizes, err := repo.ListSizes(ctx, p.ID)
	require.NoError(t, err)
	vars, err := repo.ListVariations(ctx, p.ID)
	require.NoError(t, err)
	form := domain.FormFromAttributes(10, domain.ProductAttributes{Colors: colors, Sizes: sizes, Variations: vars})
	require.NoError(t, form.RemoveColor(form.Colors[1].Key))
	form.Variations[1].Stock = 7

	_, err = repo.SaveAttributes(ctx, p.ID, form)
	require.NoError(t, err)

	st, err := repo.Stats(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttributeStats{Colors: 1, Sizes: 2, Variations: 2}, st)

	vars, err = repo.ListVariations(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, vars[1].Stock)
	assert.NotEqual(t, first[0].ID, vars[0].ID)

	var stored domain.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Nil(t, stored.VariationID)

	var images int64
	require.NoError(t, db.Model(&domain.VariationImage{}).Count(&images).Error)
	assert.Zero(t, images)
}

func TestSaveAttributesRejectsDanglingReference(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "hat", 5)
	f := redBlueSM(5)
	ghost := domain.NewDraftKey()
	f.Variations[0].ColorKey = &ghost

	_, err := NewAttributeRepo(db).SaveAttributes(context.Background(), p.ID, f)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func failOn(t *testing.T, db *gorm.DB, name string, register func(string, func(*gorm.DB)) error, table string) {
	t.Helper()
	require.NoError(t, register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errors.New("injected failure"))
		}
	}))
}

func TestReplaceColorsPartialWrite(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, "sock", 3)
	repo := NewAttributeRepo(db)

	_, err := repo.ReplaceColors(ctx, p.ID, []domain.ColorInput{{Name: "Red", HexCode: "#f00"}, {Name: "Blue", HexCode: "#00f"}})
	require.NoError(t, err)

	failOn(t, db, "test:fail_colors", db.Callback().Create().Before("gorm:create").Register, "product_colors")
	_, err = repo.ReplaceColors(ctx, p.ID, []domain.ColorInput{{Name: "Green", HexCode: "#0f0"}})
	require.Error(t, err)
	var perr *domain.PersistenceError
	assert.ErrorAs(t, err, &perr)

	st, err := repo.Stats(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, st.Colors)
}

func TestSaveAttributesFailureKeepsPreviousGraph(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, "blanket", 30)
	repo := NewAttributeRepo(db)

	_, err := repo.SaveAttributes(ctx, p.ID, redBlueSM(30))
	require.NoError(t, err)

	failOn(t, db, "test:fail_sizes", db.Callback().Delete().Before("gorm:delete").Register, "product_sizes")
	f := &domain.AttributeForm{BasePrice: 30}
	f.AddColor("Green", "#0f0")
	f.AddSize("L", domain.ScaleClothing)
	f.GenerateAll()
	_, err = repo.SaveAttributes(ctx, p.ID, f)
	require.Error(t, err)

	st, err := repo.Stats(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttributeStats{Colors: 2, Sizes: 2, Variations: 4}, st)
	colors, err := repo.ListColors(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Red", colors[0].Name)
}

func TestReplaceSizesNormalizesAndCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, "shoe", 40)
	repo := NewAttributeRepo(db)

	_, err := repo.SaveAttributes(ctx, p.ID, redBlueSM(40))
	require.NoError(t, err)

	sizes, err := repo.ReplaceSizes(ctx, p.ID, []domain.SizeInput{{Name: "  "}, {Name: "6", Scale: domain.ScaleShoes}})
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, domain.UnnamedSize, sizes[0].Name)
	assert.Equal(t, domain.ScaleCustom, sizes[0].Scale)
	assert.Equal(t, 1, sizes[1].DisplayOrder)

	st, err := repo.Stats(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Variations)
	assert.Equal(t, int64(2), st.Colors)
}

func TestReplaceColorsCoercesHex(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "cap", 8)
	colors, err := NewAttributeRepo(db).ReplaceColors(context.Background(), p.ID, []domain.ColorInput{{Name: "", HexCode: "red"}})
	require.NoError(t, err)
	assert.Equal(t, domain.UnnamedColor, colors[0].Name)
	assert.Equal(t, domain.DefaultHex, colors[0].HexCode)
}

func TestFindVariation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := seedProduct(t, db, "toy", 12)
	repo := NewAttributeRepo(db)
	_, err := repo.SaveAttributes(ctx, p.ID, redBlueSM(12))
	require.NoError(t, err)

	_, err = repo.FindVariation(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	vars, err := repo.ListVariations(ctx, p.ID)
	require.NoError(t, err)
	v, err := repo.FindVariation(ctx, vars[2].ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, v.ProductID)
}
