package domain

// GenerateAll expands colors x sizes into drafts. An empty dimension is left
// nil, both empty yields one attribute-less draft. The first draft in input
// order is the default.
func GenerateAll(colors []ColorDraft, sizes []SizeDraft, basePrice float64) []VariationDraft {
	out := []VariationDraft{}
	switch {
	case len(colors) == 0 && len(sizes) == 0:
		out = append(out, newDraft(nil, nil, basePrice))
	case len(sizes) == 0:
		for _, c := range colors {
			out = append(out, newDraft(keyPtr(c.Key), nil, basePrice))
		}
	case len(colors) == 0:
		for _, s := range sizes {
			out = append(out, newDraft(nil, keyPtr(s.Key), basePrice))
		}
	default:
		for _, c := range colors {
			for _, s := range sizes {
				out = append(out, newDraft(keyPtr(c.Key), keyPtr(s.Key), basePrice))
			}
		}
	}
	out[0].IsDefault = true
	return out
}

// AddOne builds a draft on the first color and size. It is the default only
// when existing is empty.
func AddOne(colors []ColorDraft, sizes []SizeDraft, basePrice float64, existing []VariationDraft) VariationDraft {
	var ck, sk *DraftKey
	if len(colors) > 0 {
		ck = keyPtr(colors[0].Key)
	}
	if len(sizes) > 0 {
		sk = keyPtr(sizes[0].Key)
	}
	d := newDraft(ck, sk, basePrice)
	d.IsDefault = len(existing) == 0
	return d
}

func newDraft(color, size *DraftKey, basePrice float64) VariationDraft {
	return VariationDraft{
		Key:      NewDraftKey(),
		ColorKey: color,
		SizeKey:  size,
		Price:    basePrice,
		Stock:    0,
		Images:   []ImageDraft{},
	}
}

func keyPtr(k DraftKey) *DraftKey { return &k }
