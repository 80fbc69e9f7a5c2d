package domain

import (
	"github.com/google/uuid"
)

// SelectedVariation is a variation enriched with the display data of its
// color and size.
type SelectedVariation struct {
	Variation
	ColorName string `json:"color_name,omitempty"`
	ColorHex  string `json:"color_hex,omitempty"`
	SizeName  string `json:"size_name,omitempty"`
	LowStock  bool   `json:"low_stock"`
	OutStock  bool   `json:"out_of_stock"`
}

type AttributeOption struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	HexCode  string    `json:"hex_code,omitempty"`
	Selected bool      `json:"selected"`
	Disabled bool      `json:"disabled"`
}

// Selector tracks a shopper's color/size choice for one product and resolves
// it to a variation. OnChange fires whenever the resolved variation changes.
type Selector struct {
	attrs    ProductAttributes
	colorID  *uuid.UUID
	sizeID   *uuid.UUID
	resolved *SelectedVariation
	onChange func(*SelectedVariation)
}

// NewSelector preselects the default variation, or the first one.
func NewSelector(attrs ProductAttributes, onChange func(*SelectedVariation)) *Selector {
	s := &Selector{attrs: attrs, onChange: onChange}
	if len(attrs.Variations) > 0 {
		pick := attrs.Variations[0]
		for _, v := range attrs.Variations {
			if v.IsDefault {
				pick = v
				break
			}
		}
		s.colorID = pick.ColorID
		s.sizeID = pick.SizeID
	}
	s.resolve()
	return s
}

// Visible is false when there is nothing to choose.
func (s *Selector) Visible() bool {
	return len(s.attrs.Colors) > 0 && len(s.attrs.Sizes) > 0 && len(s.attrs.Variations) > 0
}

// SelectColor picks a color; uuid.Nil clears the choice.
func (s *Selector) SelectColor(id uuid.UUID) {
	s.colorID = optionalID(id)
	s.resolve()
}

func (s *Selector) SelectSize(id uuid.UUID) {
	s.sizeID = optionalID(id)
	s.resolve()
}

func (s *Selector) Selection() (color, size *uuid.UUID) { return s.colorID, s.sizeID }

func (s *Selector) Resolved() *SelectedVariation { return s.resolved }

func (s *Selector) ColorOptions() []AttributeOption {
	out := make([]AttributeOption, 0, len(s.attrs.Colors))
	for _, c := range s.attrs.Colors {
		id := c.ID
		out = append(out, AttributeOption{
			ID:       c.ID,
			Name:     c.Name,
			HexCode:  c.HexCode,
			Selected: s.colorID != nil && *s.colorID == c.ID,
			Disabled: s.sizeID != nil && !s.hasStock(&id, s.sizeID),
		})
	}
	return out
}

func (s *Selector) SizeOptions() []AttributeOption {
	out := make([]AttributeOption, 0, len(s.attrs.Sizes))
	for _, z := range s.attrs.Sizes {
		id := z.ID
		out = append(out, AttributeOption{
			ID:       z.ID,
			Name:     z.Name,
			Selected: s.sizeID != nil && *s.sizeID == z.ID,
			Disabled: s.colorID != nil && !s.hasStock(s.colorID, &id),
		})
	}
	return out
}

// hasStock reports an in-stock variation for the pair. Options are only
// checked against a choice made in the other dimension.
func (s *Selector) hasStock(colorID, sizeID *uuid.UUID) bool {
	for _, v := range s.attrs.Variations {
		if v.Stock <= 0 {
			continue
		}
		if colorID != nil && !sameID(v.ColorID, colorID) {
			continue
		}
		if sizeID != nil && !sameID(v.SizeID, sizeID) {
			continue
		}
		return true
	}
	return false
}

func (s *Selector) resolve() {
	next := ResolveVariation(s.attrs, s.colorID, s.sizeID)
	changed := (next == nil) != (s.resolved == nil) || (next != nil && next.ID != s.resolved.ID)
	s.resolved = next
	if changed && s.onChange != nil {
		s.onChange(next)
	}
}

// ResolveVariation finds the variation matching both selections exactly. A
// dimension the product does not have is satisfied by any value.
func ResolveVariation(a ProductAttributes, colorID, sizeID *uuid.UUID) *SelectedVariation {
	needColor := len(a.Colors) > 0
	needSize := len(a.Sizes) > 0
	if (needColor && colorID == nil) || (needSize && sizeID == nil) {
		return nil
	}
	for _, v := range a.Variations {
		if needColor && !sameID(v.ColorID, colorID) {
			continue
		}
		if needSize && !sameID(v.SizeID, sizeID) {
			continue
		}
		return enrich(a, v)
	}
	return nil
}

func enrich(a ProductAttributes, v Variation) *SelectedVariation {
	sv := &SelectedVariation{Variation: v, LowStock: v.LowStock(), OutStock: !v.InStock()}
	if v.ColorID != nil {
		for _, c := range a.Colors {
			if c.ID == *v.ColorID {
				sv.ColorName = c.Name
				sv.ColorHex = c.HexCode
				break
			}
		}
	}
	if v.SizeID != nil {
		for _, z := range a.Sizes {
			if z.ID == *v.SizeID {
				sv.SizeName = z.Name
				break
			}
		}
	}
	return sv
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
