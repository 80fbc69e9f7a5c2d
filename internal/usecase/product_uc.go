package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/kiddocorner/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
	Featured domain.FeaturedProductRepo
	Attrs    domain.AttributeRepo
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Products.List(ctx, f)
}

func (uc *ProductUC) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if slug == "" {
		return nil, errors.New("empty slug")
	}
	return uc.Products.FindBySlug(ctx, slug)
}

func (uc *ProductUC) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, errors.New("product id")
	}
	return uc.Products.FindByID(ctx, id)
}

func validateProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Invalid("Product needs a name")
	}
	if p.Price <= 0 {
		return domain.Invalid("Product needs a valid price")
	}
	if p.SalePrice != nil && *p.SalePrice >= p.Price {
		return domain.Invalid("Sale price must be lower than the price")
	}
	return nil
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	slug, err := uc.uniqueSlug(ctx, p.Name, p.ID)
	if err != nil {
		return err
	}
	p.Slug = slug
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	return uc.Products.Save(ctx, p)
}

// Update conserva el slug guardado salvo que cambie el nombre
func (uc *ProductUC) Update(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	cur, err := uc.Products.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Slug = cur.Slug
	if cur.Name != p.Name {
		if p.Slug, err = uc.uniqueSlug(ctx, p.Name, p.ID); err != nil {
			return err
		}
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = time.Now()
	return uc.Products.Save(ctx, p)
}

func (uc *ProductUC) AddImages(ctx context.Context, productID uuid.UUID, imgs []domain.Image) error {
	return uc.Products.AddImages(ctx, productID, imgs)
}

// Delete elimina el producto y todo lo que cuelga de él; devuelve las URLs
// de imágenes que tenía.
func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	if id == uuid.Nil {
		return nil, errors.New("product id")
	}
	return uc.Products.DeleteFull(ctx, id)
}

func (uc *ProductUC) Categories(ctx context.Context) ([]string, error) {
	if repo, ok := uc.Products.(interface {
		DistinctCategories(context.Context) ([]string, error)
	}); ok {
		return repo.DistinctCategories(ctx)
	}
	return []string{}, nil
}

func (uc *ProductUC) Count(ctx context.Context) (int64, error) {
	return uc.Products.Count(ctx)
}

// --- Destacados ---

func (uc *ProductUC) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return uc.Featured.GetWithProducts(ctx)
}

func (uc *ProductUC) FeaturedEntries(ctx context.Context) ([]domain.FeaturedProduct, error) {
	return uc.Featured.List(ctx)
}

func (uc *ProductUC) SetFeatured(ctx context.Context, ids []uuid.UUID) error {
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		if seen[id] {
			return domain.Invalid("product %s listed twice", id)
		}
		seen[id] = true
		if _, err := uc.Products.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return uc.Featured.Replace(ctx, ids)
}

// --- Atributos en la tienda ---

func (uc *ProductUC) Attributes(ctx context.Context, productID uuid.UUID) (domain.ProductAttributes, error) {
	var a domain.ProductAttributes
	var err error
	if a.Colors, err = uc.Attrs.ListColors(ctx, productID); err != nil {
		return a, err
	}
	if a.Sizes, err = uc.Attrs.ListSizes(ctx, productID); err != nil {
		return a, err
	}
	if a.Variations, err = uc.Attrs.ListVariations(ctx, productID); err != nil {
		return a, err
	}
	return a, nil
}

// AttributeStats nunca falla: si la lectura da error, los contadores quedan en cero.
func (uc *ProductUC) AttributeStats(ctx context.Context, productID uuid.UUID) domain.AttributeStats {
	st, err := uc.Attrs.Stats(ctx, productID)
	if err != nil {
		return domain.AttributeStats{}
	}
	return st
}

// ProductOptions es el estado del selector que se sirve a la página de producto.
type ProductOptions struct {
	Visible    bool                      `json:"visible"`
	Colors     []domain.AttributeOption  `json:"colors"`
	Sizes      []domain.AttributeOption  `json:"sizes"`
	Variations []domain.Variation        `json:"variations"`
	Selected   *domain.SelectedVariation `json:"selected"`
	Price      float64                   `json:"price"`
	InStock    bool                      `json:"in_stock"`
}

// Options corre el selector para un producto. Un id en cero conserva el
// valor preseleccionado de esa dimensión.
func (uc *ProductUC) Options(ctx context.Context, p *domain.Product, colorID, sizeID uuid.UUID) (*ProductOptions, error) {
	attrs, err := uc.Attributes(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	sel := domain.NewSelector(attrs, nil)
	if colorID != uuid.Nil {
		sel.SelectColor(colorID)
	}
	if sizeID != uuid.Nil {
		sel.SelectSize(sizeID)
	}
	out := &ProductOptions{
		Visible:    sel.Visible(),
		Colors:     sel.ColorOptions(),
		Sizes:      sel.SizeOptions(),
		Variations: attrs.Variations,
		Selected:   sel.Resolved(),
		Price:      p.EffectivePrice(),
		InStock:    len(attrs.Variations) == 0,
	}
	if out.Selected != nil {
		out.Price = out.Selected.EffectivePrice()
		out.InStock = out.Selected.InStock()
	}
	return out, nil
}

// Resolve devuelve la variante del producto que coincide exacto con el par,
// o ErrNotFound.
func (uc *ProductUC) Resolve(ctx context.Context, productID uuid.UUID, colorID, sizeID uuid.UUID) (*domain.SelectedVariation, error) {
	attrs, err := uc.Attributes(ctx, productID)
	if err != nil {
		return nil, err
	}
	v := domain.ResolveVariation(attrs, optional(colorID), optional(sizeID))
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func optional(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]+`)

func Slugify(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), "-"))
	s = slugStrip.ReplaceAllString(s, "")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

func (uc *ProductUC) uniqueSlug(ctx context.Context, name string, id uuid.UUID) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = id.String()[:8]
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := uc.Products.SlugExists(ctx, slug, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
