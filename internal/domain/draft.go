package domain

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// DraftKey identifies a color, size, variation or image inside an editing
// session. Rows loaded from storage reuse their id as key; rows created in the
// session get a fresh one. Keys never reach storage: the save maps every key
// to a newly assigned id.
type DraftKey string

func NewDraftKey() DraftKey { return DraftKey(uuid.NewString()) }

func KeyOf(id uuid.UUID) DraftKey { return DraftKey(id.String()) }

type ColorDraft struct {
	Key     DraftKey `json:"key"`
	Name    string   `json:"name"`
	HexCode string   `json:"hex_code"`
}

type SizeDraft struct {
	Key   DraftKey  `json:"key"`
	Name  string    `json:"name"`
	Scale SizeScale `json:"scale"`
}

// Upload is raw media waiting for the blob store.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageDraft carries either a direct URL or an Upload. FileField names the
// multipart part an HTTP client attached the file under.
type ImageDraft struct {
	Key       DraftKey  `json:"key"`
	URL       string    `json:"url,omitempty"`
	FileField string    `json:"file_field,omitempty"`
	Upload    *Upload   `json:"-"`
	IsPrimary bool      `json:"is_primary"`
	MediaType MediaType `json:"media_type"`
}

func (d ImageDraft) HasSource() bool {
	return d.Upload != nil || strings.TrimSpace(d.URL) != ""
}

type VariationDraft struct {
	Key       DraftKey     `json:"key"`
	ColorKey  *DraftKey    `json:"color_key"`
	SizeKey   *DraftKey    `json:"size_key"`
	SKU       string       `json:"sku"`
	Price     float64      `json:"price"`
	SalePrice *float64     `json:"sale_price"`
	Stock     int          `json:"stock"`
	IsDefault bool         `json:"is_default"`
	Images    []ImageDraft `json:"images"`
}

func (v VariationDraft) pair() [2]DraftKey {
	var p [2]DraftKey
	if v.ColorKey != nil {
		p[0] = *v.ColorKey
	}
	if v.SizeKey != nil {
		p[1] = *v.SizeKey
	}
	return p
}

// AttributeForm is the in-memory editing model for a product's colors, sizes
// and variations. Slice order is display order.
type AttributeForm struct {
	BasePrice  float64          `json:"base_price"`
	Colors     []ColorDraft     `json:"colors"`
	Sizes      []SizeDraft      `json:"sizes"`
	Variations []VariationDraft `json:"variations"`
}

// FormFromAttributes maps a persisted attribute graph into drafts.
func FormFromAttributes(basePrice float64, a ProductAttributes) *AttributeForm {
	f := &AttributeForm{BasePrice: basePrice}
	for _, c := range a.Colors {
		f.Colors = append(f.Colors, ColorDraft{Key: KeyOf(c.ID), Name: c.Name, HexCode: c.HexCode})
	}
	for _, s := range a.Sizes {
		f.Sizes = append(f.Sizes, SizeDraft{Key: KeyOf(s.ID), Name: s.Name, Scale: s.Scale})
	}
	for _, v := range a.Variations {
		d := VariationDraft{
			Key:       KeyOf(v.ID),
			Price:     v.Price,
			SalePrice: v.SalePrice,
			Stock:     v.Stock,
			IsDefault: v.IsDefault,
		}
		if v.ColorID != nil {
			k := KeyOf(*v.ColorID)
			d.ColorKey = &k
		}
		if v.SizeID != nil {
			k := KeyOf(*v.SizeID)
			d.SizeKey = &k
		}
		if v.SKU != nil {
			d.SKU = *v.SKU
		}
		for _, im := range v.Images {
			d.Images = append(d.Images, ImageDraft{
				Key:       KeyOf(im.ID),
				URL:       im.ImageURL,
				IsPrimary: im.IsPrimary,
				MediaType: im.MediaType,
			})
		}
		f.Variations = append(f.Variations, d)
	}
	return f
}

// Validate returns the first violation, checking names, hex codes, presence
// of variations, prices and stock in that order.
func (f *AttributeForm) Validate() error {
	for i, c := range f.Colors {
		if strings.TrimSpace(c.Name) == "" {
			return Invalid("Color #%d needs a name", i+1)
		}
	}
	for i, c := range f.Colors {
		if !ValidHex(strings.TrimSpace(c.HexCode)) {
			return Invalid("Color #%d (%s) needs a valid hex color code", i+1, c.Name)
		}
	}
	for i, s := range f.Sizes {
		if strings.TrimSpace(s.Name) == "" {
			return Invalid("Size #%d needs a name", i+1)
		}
	}
	if (len(f.Colors) > 0 || len(f.Sizes) > 0) && len(f.Variations) == 0 {
		return Invalid("You need to create at least one variation for your product")
	}
	for i, v := range f.Variations {
		if v.Price <= 0 {
			return Invalid("Variation #%d needs a valid price", i+1)
		}
	}
	for i, v := range f.Variations {
		if v.Stock < 0 {
			return Invalid("Variation #%d cannot have negative stock", i+1)
		}
	}
	return f.validateRefs()
}

func (f *AttributeForm) validateRefs() error {
	keys := map[DraftKey]bool{}
	unique := func(k DraftKey) error {
		if k == "" || keys[k] {
			return Invalid("duplicate or empty key %q", k)
		}
		keys[k] = true
		return nil
	}
	colors := map[DraftKey]bool{}
	for _, c := range f.Colors {
		if err := unique(c.Key); err != nil {
			return err
		}
		colors[c.Key] = true
	}
	sizes := map[DraftKey]bool{}
	for _, s := range f.Sizes {
		if s.Scale != "" && !s.Scale.Valid() {
			return Invalid("Size %s has an unknown scale %q", s.Name, s.Scale)
		}
		if err := unique(s.Key); err != nil {
			return err
		}
		sizes[s.Key] = true
	}
	seen := map[[2]DraftKey]int{}
	for i, v := range f.Variations {
		if err := unique(v.Key); err != nil {
			return err
		}
		if v.SalePrice != nil && *v.SalePrice >= v.Price {
			return Invalid("Variation #%d sale price must be lower than its price", i+1)
		}
		if v.ColorKey != nil && !colors[*v.ColorKey] {
			return Invalid("Variation #%d references a color that no longer exists", i+1)
		}
		if v.SizeKey != nil && !sizes[*v.SizeKey] {
			return Invalid("Variation #%d references a size that no longer exists", i+1)
		}
		if j, dup := seen[v.pair()]; dup {
			return Invalid("Variations #%d and #%d have the same color and size", j+1, i+1)
		}
		seen[v.pair()] = i
		for k, im := range v.Images {
			if err := unique(im.Key); err != nil {
				return err
			}
			if !im.HasSource() {
				return Invalid("Variation #%d image #%d needs a file or a URL", i+1, k+1)
			}
			if im.Upload == nil && !ValidMediaURL(im.URL) {
				return Invalid("Variation #%d image #%d has an invalid URL", i+1, k+1)
			}
		}
	}
	return nil
}

// ValidMediaURL accepts absolute http(s) URLs and site-relative paths.
func ValidMediaURL(raw string) bool {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return true
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
