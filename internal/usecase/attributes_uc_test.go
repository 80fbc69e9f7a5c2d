package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/kiddocorner/internal/domain"
)

func TestAttributesGenerateSaveReload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Baby Romper", 25)
	saved := 0
	f.attrs.OnSaved = func(id uuid.UUID) {
		assert.Equal(t, p.ID, id)
		saved++
	}

	s, err := f.attrs.Open(ctx, p.ID)
	require.NoError(t, err)
	st, _ := s.State()
	assert.Equal(t, FormReady, st)
	assert.Equal(t, 25.0, s.Form.BasePrice)
	assert.Empty(t, s.Form.Variations)

	s.Form.AddColor("Red", "#FF0000")
	s.Form.AddColor("Blue", "#0000FF")
	s.Form.AddSize("S", domain.ScaleClothing)
	s.Form.AddSize("M", domain.ScaleClothing)
	s.Form.GenerateAll()
	require.Len(t, s.Form.Variations, 4)

	v := &s.Form.Variations[0]
	v.AddImage(domain.ImageDraft{Upload: &domain.Upload{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte{1}}})
	v.AddImage(domain.ImageDraft{URL: "https://cdn.example.com/b.jpg"})
	v.AddImage(domain.ImageDraft{Upload: &domain.Upload{Filename: "c.mp4", ContentType: "video/mp4", Data: []byte{2}}})
	for i := range s.Form.Variations {
		s.Form.Variations[i].Stock = 3
	}

	ids, err := s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	st, _ = s.State()
	assert.Equal(t, FormReady, st)
	assert.Len(t, ids, 2+2+4+3)
	assert.ElementsMatch(t, []string{"a.jpg", "c.mp4"}, f.storage.saved)
	persisted := map[domain.DraftKey]bool{}
	for _, id := range ids {
		persisted[domain.KeyOf(id)] = true
	}
	assert.True(t, persisted[s.Form.Colors[0].Key])
	assert.True(t, persisted[*s.Form.Variations[3].SizeKey])

	again, err := f.attrs.Open(ctx, p.ID)
	require.NoError(t, err)
	form := again.Form
	require.Len(t, form.Colors, 2)
	require.Len(t, form.Sizes, 2)
	require.Len(t, form.Variations, 4)
	want := [][2]string{{"Red", "S"}, {"Red", "M"}, {"Blue", "S"}, {"Blue", "M"}}
	name := func(k *domain.DraftKey, colors bool) string {
		if colors {
			for _, c := range form.Colors {
				if c.Key == *k {
					return c.Name
				}
			}
		}
		for _, z := range form.Sizes {
			if z.Key == *k {
				return z.Name
			}
		}
		return ""
	}
	for i, v := range form.Variations {
		assert.Equal(t, want[i][0], name(v.ColorKey, true))
		assert.Equal(t, want[i][1], name(v.SizeKey, false))
		assert.Equal(t, 25.0, v.Price)
		assert.Equal(t, i == 0, v.IsDefault)
		_, err := uuid.Parse(string(v.Key))
		assert.NoError(t, err)
	}
	imgs := form.Variations[0].Images
	require.Len(t, imgs, 3)
	assert.Equal(t, "/uploads/a.jpg", imgs[0].URL)
	assert.True(t, imgs[0].IsPrimary)
	assert.Equal(t, "https://cdn.example.com/b.jpg", imgs[1].URL)
	assert.Equal(t, "/uploads/c.mp4", imgs[2].URL)
	assert.Equal(t, domain.MediaVideo, imgs[2].MediaType)

	assert.Equal(t, domain.AttributeStats{Colors: 2, Sizes: 2, Variations: 4}, f.attrs.Stats(ctx, p.ID))
}

func TestAttributesValidationErrorThenRetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Bib", 5)
	s, err := f.attrs.Open(ctx, p.ID)
	require.NoError(t, err)

	k := s.Form.AddColor("", "#zzz")
	s.Form.GenerateAll()
	_, err = s.Save(ctx)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.EqualError(t, err, "Color #1 needs a name")
	st, serr := s.State()
	assert.Equal(t, FormError, st)
	assert.Equal(t, err, serr)

	require.NoError(t, s.Form.UpdateColor(k, "Pink", "#zzz"))
	_, err = s.Save(ctx)
	assert.EqualError(t, err, "Color #1 (Pink) needs a valid hex color code")

	require.NoError(t, s.Form.UpdateColor(k, "Pink", "#f9c"))
	_, err = s.Save(ctx)
	require.NoError(t, err)
	st, serr = s.State()
	assert.Equal(t, FormReady, st)
	assert.NoError(t, serr)
}

func TestAttributesUploadFailureKeepsStoredGraph(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Hat", 9)

	first := &domain.AttributeForm{BasePrice: 9}
	first.AddColor("Red", "#f00")
	first.GenerateAll()
	_, err := f.attrs.Save(ctx, p.ID, first)
	require.NoError(t, err)

	s, err := f.attrs.Open(ctx, p.ID)
	require.NoError(t, err)
	s.Form.AddColor("Blue", "#00f")
	s.Form.GenerateAll()
	s.Form.Variations[1].AddImage(domain.ImageDraft{Upload: &domain.Upload{Filename: "x.jpg", Data: []byte{1}}})

	f.storage.fail = errors.New("bucket unreachable")
	_, err = s.Save(ctx)
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	st, _ := s.State()
	assert.Equal(t, FormError, st)
	assert.Equal(t, domain.AttributeStats{Colors: 1, Sizes: 0, Variations: 1}, f.attrs.Stats(ctx, p.ID))

	f.storage.fail = nil
	_, err = s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AttributeStats{Colors: 2, Sizes: 0, Variations: 2}, f.attrs.Stats(ctx, p.ID))
}

func TestAttributesSaveUnknownProduct(t *testing.T) {
	f := newFixture(t)
	_, err := f.attrs.Save(context.Background(), uuid.New(), &domain.AttributeForm{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s, err := f.attrs.Open(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	st, _ := s.State()
	assert.Equal(t, FormError, st)
}

func TestAttributesStatsDegradeToZero(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Sock", 2)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	assert.Equal(t, domain.AttributeStats{}, f.attrs.Stats(context.Background(), p.ID))
}

func TestReplaceColorsThroughUsecase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Cap", 4)
	colors, err := f.attrs.ReplaceColors(ctx, p.ID, []domain.ColorInput{{Name: "Red", HexCode: "FF0000"}})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHex, colors[0].HexCode)

	_, err = f.attrs.ReplaceSizes(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImportStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, attrs := stockExample(t, f)

	n, err := f.attrs.ImportStock(ctx, p.ID, map[uuid.UUID]int{attrs.Variations[0].ID: 9, uuid.New(): 1})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	after, err := f.products.Attributes(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, after.Variations[0].Stock)
	assert.Equal(t, 5, after.Variations[1].Stock)

	_, err = f.attrs.ImportStock(ctx, p.ID, map[uuid.UUID]int{uuid.New(): 1})
	assert.True(t, domain.IsValidation(err))
}
