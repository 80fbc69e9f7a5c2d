package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colors(names ...string) []ColorDraft {
	out := []ColorDraft{}
	for _, n := range names {
		out = append(out, ColorDraft{Key: NewDraftKey(), Name: n, HexCode: "#000"})
	}
	return out
}

func sizes(names ...string) []SizeDraft {
	out := []SizeDraft{}
	for _, n := range names {
		out = append(out, SizeDraft{Key: NewDraftKey(), Name: n, Scale: ScaleClothing})
	}
	return out
}

func defaults(vs []VariationDraft) int {
	n := 0
	for _, v := range vs {
		if v.IsDefault {
			n++
		}
	}
	return n
}

func TestGenerateAllCrossProduct(t *testing.T) {
	for _, tc := range []struct{ n, m int }{{1, 1}, {2, 3}, {4, 2}, {5, 5}} {
		cs := colors(make([]string, tc.n)...)
		ss := sizes(make([]string, tc.m)...)
		got := GenerateAll(cs, ss, 250)
		require.Len(t, got, tc.n*tc.m)
		seen := map[[2]DraftKey]bool{}
		for _, v := range got {
			require.NotNil(t, v.ColorKey)
			require.NotNil(t, v.SizeKey)
			assert.False(t, seen[v.pair()], "duplicate pair")
			seen[v.pair()] = true
			assert.Equal(t, 250.0, v.Price)
			assert.Zero(t, v.Stock)
		}
		assert.Equal(t, 1, defaults(got))
		assert.True(t, got[0].IsDefault)
	}
}

func TestGenerateAllSingleDimension(t *testing.T) {
	cs := colors("Red", "Blue", "Green")
	got := GenerateAll(cs, nil, 100)
	require.Len(t, got, 3)
	for i, v := range got {
		assert.Nil(t, v.SizeKey)
		assert.Equal(t, cs[i].Key, *v.ColorKey)
	}
	assert.Equal(t, 1, defaults(got))

	ss := sizes("S", "M")
	got = GenerateAll(nil, ss, 100)
	require.Len(t, got, 2)
	for _, v := range got {
		assert.Nil(t, v.ColorKey)
		assert.NotNil(t, v.SizeKey)
	}
	assert.True(t, got[0].IsDefault)
}

func TestGenerateAllEmpty(t *testing.T) {
	got := GenerateAll(nil, nil, 99)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].ColorKey)
	assert.Nil(t, got[0].SizeKey)
	assert.True(t, got[0].IsDefault)
	assert.Equal(t, 99.0, got[0].Price)
}

func TestGenerateAllOrderFollowsInput(t *testing.T) {
	cs := colors("Red", "Blue")
	ss := sizes("S", "M")
	got := GenerateAll(cs, ss, 10)
	want := [][2]DraftKey{
		{cs[0].Key, ss[0].Key}, {cs[0].Key, ss[1].Key},
		{cs[1].Key, ss[0].Key}, {cs[1].Key, ss[1].Key},
	}
	for i, v := range got {
		assert.Equal(t, want[i], v.pair())
	}
}

func TestAddOne(t *testing.T) {
	cs := colors("Red", "Blue")
	ss := sizes("S")

	first := AddOne(cs, ss, 40, nil)
	assert.True(t, first.IsDefault)
	assert.Equal(t, cs[0].Key, *first.ColorKey)
	assert.Equal(t, ss[0].Key, *first.SizeKey)

	second := AddOne(cs, ss, 40, []VariationDraft{first})
	assert.False(t, second.IsDefault)
	assert.NotEqual(t, first.Key, second.Key)

	bare := AddOne(nil, nil, 40, nil)
	assert.Nil(t, bare.ColorKey)
	assert.Nil(t, bare.SizeKey)
}
