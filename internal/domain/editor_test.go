package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveVariationPassesDefault(t *testing.T) {
	f := &AttributeForm{BasePrice: 10}
	f.AddColor("Red", "#f00")
	f.AddColor("Blue", "#00f")
	f.GenerateAll()
	require.True(t, f.Variations[0].IsDefault)

	require.NoError(t, f.RemoveVariation(f.Variations[0].Key))
	require.Len(t, f.Variations, 1)
	assert.True(t, f.Variations[0].IsDefault)

	assert.ErrorIs(t, f.RemoveVariation("missing"), ErrNotFound)
}

func TestSetDefaultClearsOthers(t *testing.T) {
	f := &AttributeForm{BasePrice: 10}
	f.AddSize("S", ScaleClothing)
	f.AddSize("M", ScaleClothing)
	f.AddSize("L", ScaleClothing)
	f.GenerateAll()

	require.NoError(t, f.SetDefault(f.Variations[2].Key))
	assert.Equal(t, 1, defaults(f.Variations))
	assert.True(t, f.Variations[2].IsDefault)
}

func TestRemoveColorDropsItsVariations(t *testing.T) {
	f := &AttributeForm{BasePrice: 10}
	red := f.AddColor("Red", "#f00")
	f.AddColor("Blue", "#00f")
	f.AddSize("S", ScaleClothing)
	f.GenerateAll()
	require.Len(t, f.Variations, 2)

	require.NoError(t, f.RemoveColor(red))
	require.Len(t, f.Colors, 1)
	require.Len(t, f.Variations, 1)
	assert.True(t, f.Variations[0].IsDefault)
	assert.NoError(t, f.Validate())
}

func TestMoveColor(t *testing.T) {
	f := &AttributeForm{}
	f.AddColor("A", "#000")
	f.AddColor("B", "#000")
	f.AddColor("C", "#000")

	require.NoError(t, f.MoveColor(0, 2))
	assert.Equal(t, []string{"B", "C", "A"}, colorNames(f))
	require.NoError(t, f.MoveColor(2, 0))
	assert.Equal(t, []string{"A", "B", "C"}, colorNames(f))
	assert.Error(t, f.MoveColor(0, 3))
}

func colorNames(f *AttributeForm) []string {
	out := []string{}
	for _, c := range f.Colors {
		out = append(out, c.Name)
	}
	return out
}

func TestAddCommonSizesSkipsExisting(t *testing.T) {
	f := &AttributeForm{}
	f.AddSize("m", ScaleClothing)
	n := f.AddCommonSizes(ScaleClothing)
	assert.Equal(t, 5, n)
	assert.Len(t, f.Sizes, 6)
	assert.Equal(t, 0, f.AddCommonSizes(ScaleClothing))
	assert.Equal(t, 0, f.AddCommonSizes(ScaleCustom))
}

func TestImagesPrimaryAndOrder(t *testing.T) {
	v := &VariationDraft{}
	a := v.AddImage(ImageDraft{URL: "/a.jpg"})
	b := v.AddImage(ImageDraft{Upload: &Upload{Filename: "b.mp4", ContentType: "video/mp4", Data: []byte{1}}})
	c := v.AddImage(ImageDraft{URL: "/c.jpg"})

	assert.True(t, v.Images[0].IsPrimary)
	assert.False(t, v.Images[1].IsPrimary)
	assert.Equal(t, MediaVideo, v.Images[1].MediaType)

	require.NoError(t, v.RemoveImage(a))
	assert.True(t, v.Images[0].IsPrimary)
	assert.Equal(t, b, v.Images[0].Key)

	require.NoError(t, v.SetPrimary(c))
	assert.False(t, v.Images[0].IsPrimary)
	assert.True(t, v.Images[1].IsPrimary)

	require.NoError(t, v.MoveImage(1, 0))
	assert.Equal(t, c, v.Images[0].Key)
}

func TestNormalize(t *testing.T) {
	f := &AttributeForm{BasePrice: 5}
	f.AddColor("A", "#000")
	f.AddColor("B", "#000")
	f.GenerateAll()
	f.Variations[0].IsDefault = false
	f.Variations[1].IsDefault = false
	f.Variations[1].Images = []ImageDraft{{URL: "/a"}, {URL: "/b", IsPrimary: true}, {URL: "/c", IsPrimary: true}}

	f.Normalize()
	assert.True(t, f.Variations[0].IsDefault)
	assert.Equal(t, 1, defaults(f.Variations))
	assert.False(t, f.Variations[1].Images[0].IsPrimary)
	assert.True(t, f.Variations[1].Images[1].IsPrimary)
	assert.False(t, f.Variations[1].Images[2].IsPrimary)
	assert.Equal(t, MediaImage, f.Variations[1].Images[2].MediaType)
	assert.NotEmpty(t, f.Variations[1].Images[0].Key)
}

func TestTabsAndFilter(t *testing.T) {
	f := &AttributeForm{BasePrice: 5}
	red := f.AddColor("Red", "#f00")
	f.AddColor("Blue", "#00f")
	f.AddSize("S", ScaleClothing)
	f.AddSize("M", ScaleClothing)
	f.GenerateAll()

	tabs := f.Tabs()
	require.Len(t, tabs, 4)
	assert.Equal(t, TabAll, tabs[0].Kind)
	assert.Equal(t, TabDefault, tabs[1].Kind)
	assert.Equal(t, "Red", tabs[2].Label)

	assert.Len(t, f.Filter(tabs[0]), 4)
	assert.Len(t, f.Filter(tabs[1]), 1)
	redOnly := f.Filter(VariationTab{Kind: TabColor, Key: red})
	assert.Len(t, redOnly, 2)

	f.AddCommonSizes(ScaleClothing)
	assert.Len(t, f.Tabs(), 2+2+len(f.Sizes))
}
