package domain

import (
	"strings"
)

func (f *AttributeForm) AddColor(name, hex string) DraftKey {
	k := NewDraftKey()
	if strings.TrimSpace(hex) == "" {
		hex = DefaultHex
	}
	f.Colors = append(f.Colors, ColorDraft{Key: k, Name: name, HexCode: hex})
	return k
}

func (f *AttributeForm) UpdateColor(k DraftKey, name, hex string) error {
	i := f.colorIndex(k)
	if i < 0 {
		return ErrNotFound
	}
	f.Colors[i].Name = name
	f.Colors[i].HexCode = hex
	return nil
}

// RemoveColor drops the color and every variation built on it.
func (f *AttributeForm) RemoveColor(k DraftKey) error {
	i := f.colorIndex(k)
	if i < 0 {
		return ErrNotFound
	}
	f.Colors = append(f.Colors[:i], f.Colors[i+1:]...)
	f.dropVariations(func(v VariationDraft) bool { return v.ColorKey != nil && *v.ColorKey == k })
	return nil
}

func (f *AttributeForm) MoveColor(from, to int) error {
	return move(f.Colors, from, to)
}

func (f *AttributeForm) AddSize(name string, scale SizeScale) DraftKey {
	k := NewDraftKey()
	if scale == "" {
		scale = ScaleCustom
	}
	f.Sizes = append(f.Sizes, SizeDraft{Key: k, Name: name, Scale: scale})
	return k
}

func (f *AttributeForm) UpdateSize(k DraftKey, name string, scale SizeScale) error {
	i := f.sizeIndex(k)
	if i < 0 {
		return ErrNotFound
	}
	f.Sizes[i].Name = name
	f.Sizes[i].Scale = scale
	return nil
}

func (f *AttributeForm) RemoveSize(k DraftKey) error {
	i := f.sizeIndex(k)
	if i < 0 {
		return ErrNotFound
	}
	f.Sizes = append(f.Sizes[:i], f.Sizes[i+1:]...)
	f.dropVariations(func(v VariationDraft) bool { return v.SizeKey != nil && *v.SizeKey == k })
	return nil
}

func (f *AttributeForm) MoveSize(from, to int) error {
	return move(f.Sizes, from, to)
}

// AddCommonSizes appends the preset sizes of a scale that are not already
// present (case-insensitive) and returns how many were added.
func (f *AttributeForm) AddCommonSizes(scale SizeScale) int {
	have := map[string]bool{}
	for _, s := range f.Sizes {
		have[strings.ToLower(strings.TrimSpace(s.Name))] = true
	}
	n := 0
	for _, name := range CommonSizes(scale) {
		if have[strings.ToLower(name)] {
			continue
		}
		f.AddSize(name, scale)
		n++
	}
	return n
}

// GenerateAll replaces the variation list with the full combination set.
func (f *AttributeForm) GenerateAll() {
	f.Variations = GenerateAll(f.Colors, f.Sizes, f.BasePrice)
}

func (f *AttributeForm) AddVariation() VariationDraft {
	d := AddOne(f.Colors, f.Sizes, f.BasePrice, f.Variations)
	f.Variations = append(f.Variations, d)
	return d
}

// RemoveVariation hands the default flag to the first remaining variation
// when the removed one held it.
func (f *AttributeForm) RemoveVariation(k DraftKey) error {
	i := f.variationIndex(k)
	if i < 0 {
		return ErrNotFound
	}
	wasDefault := f.Variations[i].IsDefault
	f.Variations = append(f.Variations[:i], f.Variations[i+1:]...)
	if wasDefault && len(f.Variations) > 0 {
		f.Variations[0].IsDefault = true
	}
	return nil
}

func (f *AttributeForm) SetDefault(k DraftKey) error {
	i := f.variationIndex(k)
	if i < 0 {
		return ErrNotFound
	}
	for j := range f.Variations {
		f.Variations[j].IsDefault = j == i
	}
	return nil
}

func (f *AttributeForm) Variation(k DraftKey) *VariationDraft {
	i := f.variationIndex(k)
	if i < 0 {
		return nil
	}
	return &f.Variations[i]
}

// Normalize leaves exactly one default variation and one primary image per
// variation, keeping the first flagged entry. Images without a key get one.
func (f *AttributeForm) Normalize() {
	if len(f.Variations) > 0 {
		def := 0
		for i, v := range f.Variations {
			if v.IsDefault {
				def = i
				break
			}
		}
		for i := range f.Variations {
			f.Variations[i].IsDefault = i == def
		}
	}
	for i := range f.Variations {
		f.Variations[i].normalizeImages()
	}
}

func (f *AttributeForm) dropVariations(match func(VariationDraft) bool) {
	kept := f.Variations[:0]
	hadDefault := false
	for _, v := range f.Variations {
		if match(v) {
			continue
		}
		hadDefault = hadDefault || v.IsDefault
		kept = append(kept, v)
	}
	f.Variations = kept
	if !hadDefault && len(f.Variations) > 0 {
		f.Variations[0].IsDefault = true
	}
}

func (f *AttributeForm) colorIndex(k DraftKey) int {
	for i, c := range f.Colors {
		if c.Key == k {
			return i
		}
	}
	return -1
}

func (f *AttributeForm) sizeIndex(k DraftKey) int {
	for i, s := range f.Sizes {
		if s.Key == k {
			return i
		}
	}
	return -1
}

func (f *AttributeForm) variationIndex(k DraftKey) int {
	for i, v := range f.Variations {
		if v.Key == k {
			return i
		}
	}
	return -1
}

// --- images ---

// AddImage appends media; the first image of a variation becomes primary.
func (v *VariationDraft) AddImage(im ImageDraft) DraftKey {
	if im.Key == "" {
		im.Key = NewDraftKey()
	}
	if im.MediaType == "" {
		im.MediaType = MediaImage
		if im.Upload != nil {
			im.MediaType = MediaTypeFor(im.Upload.ContentType)
		}
	}
	im.IsPrimary = len(v.Images) == 0
	v.Images = append(v.Images, im)
	return im.Key
}

func (v *VariationDraft) RemoveImage(k DraftKey) error {
	i := v.imageIndex(k)
	if i < 0 {
		return ErrNotFound
	}
	wasPrimary := v.Images[i].IsPrimary
	v.Images = append(v.Images[:i], v.Images[i+1:]...)
	if wasPrimary && len(v.Images) > 0 {
		v.Images[0].IsPrimary = true
	}
	return nil
}

func (v *VariationDraft) SetPrimary(k DraftKey) error {
	i := v.imageIndex(k)
	if i < 0 {
		return ErrNotFound
	}
	for j := range v.Images {
		v.Images[j].IsPrimary = j == i
	}
	return nil
}

func (v *VariationDraft) MoveImage(from, to int) error {
	return move(v.Images, from, to)
}

func (v *VariationDraft) normalizeImages() {
	if len(v.Images) == 0 {
		return
	}
	p := 0
	for i, im := range v.Images {
		if im.IsPrimary {
			p = i
			break
		}
	}
	for i := range v.Images {
		v.Images[i].IsPrimary = i == p
		if v.Images[i].Key == "" {
			v.Images[i].Key = NewDraftKey()
		}
		if v.Images[i].MediaType == "" {
			v.Images[i].MediaType = MediaImage
		}
	}
}

func (v *VariationDraft) imageIndex(k DraftKey) int {
	for i, im := range v.Images {
		if im.Key == k {
			return i
		}
	}
	return -1
}

// move relocates s[from] to index to, shifting the entries in between.
func move[T any](s []T, from, to int) error {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) {
		return Invalid("position out of range")
	}
	if from == to {
		return nil
	}
	it := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = it
	return nil
}

// --- tabs ---

type TabKind string

const (
	TabAll     TabKind = "all"
	TabDefault TabKind = "default"
	TabColor   TabKind = "color"
	TabSize    TabKind = "size"
)

type VariationTab struct {
	Kind  TabKind  `json:"kind"`
	Key   DraftKey `json:"key,omitempty"`
	Label string   `json:"label"`
}

// Tabs lists the variation filters: all, default, one per color, and one per
// size once there are more than three sizes.
func (f *AttributeForm) Tabs() []VariationTab {
	tabs := []VariationTab{
		{Kind: TabAll, Label: "All Variations"},
		{Kind: TabDefault, Label: "Default Variation"},
	}
	for _, c := range f.Colors {
		tabs = append(tabs, VariationTab{Kind: TabColor, Key: c.Key, Label: c.Name})
	}
	if len(f.Sizes) > 3 {
		for _, s := range f.Sizes {
			tabs = append(tabs, VariationTab{Kind: TabSize, Key: s.Key, Label: s.Name})
		}
	}
	return tabs
}

func (f *AttributeForm) Filter(t VariationTab) []VariationDraft {
	out := []VariationDraft{}
	for _, v := range f.Variations {
		switch t.Kind {
		case TabDefault:
			if !v.IsDefault {
				continue
			}
		case TabColor:
			if v.ColorKey == nil || *v.ColorKey != t.Key {
				continue
			}
		case TabSize:
			if v.SizeKey == nil || *v.SizeKey != t.Key {
				continue
			}
		}
		out = append(out, v)
	}
	return out
}
