package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/kiddocorner/internal/domain"
)

type AttributeRepo struct{ db *gorm.DB }

func NewAttributeRepo(db *gorm.DB) *AttributeRepo { return &AttributeRepo{db: db} }

func (r *AttributeRepo) ListColors(ctx context.Context, productID uuid.UUID) ([]domain.Color, error) {
	list := []domain.Color{}
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("display_order asc").Find(&list).Error; err != nil {
		return nil, domain.Persistence("list colors", err)
	}
	return list, nil
}

func (r *AttributeRepo) ListSizes(ctx context.Context, productID uuid.UUID) ([]domain.Size, error) {
	list := []domain.Size{}
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("display_order asc").Find(&list).Error; err != nil {
		return nil, domain.Persistence("list sizes", err)
	}
	return list, nil
}

func (r *AttributeRepo) ListVariations(ctx context.Context, productID uuid.UUID) ([]domain.Variation, error) {
	list := []domain.Variation{}
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order asc").
		Preload("Images", orderedImages).
		Find(&list).Error
	if err != nil {
		return nil, domain.Persistence("list variations", err)
	}
	return list, nil
}

func (r *AttributeRepo) FindVariation(ctx context.Context, id uuid.UUID) (*domain.Variation, error) {
	var v domain.Variation
	if err := r.db.WithContext(ctx).Preload("Images", orderedImages).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Persistence("find variation", err)
	}
	return &v, nil
}

func (r *AttributeRepo) Stats(ctx context.Context, productID uuid.UUID) (domain.AttributeStats, error) {
	var st domain.AttributeStats
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Color{}).Where("product_id = ?", productID).Count(&st.Colors).Error; err != nil {
		return st, domain.Persistence("count colors", err)
	}
	if err := db.Model(&domain.Size{}).Where("product_id = ?", productID).Count(&st.Sizes).Error; err != nil {
		return st, domain.Persistence("count sizes", err)
	}
	if err := db.Model(&domain.Variation{}).Where("product_id = ?", productID).Count(&st.Variations).Error; err != nil {
		return st, domain.Persistence("count variations", err)
	}
	return st, nil
}

// ReplaceColors borra los colores del producto (y las variantes que los usan)
// e inserta el nuevo set en orden. Los pasos corren fuera de una transacción.
func (r *AttributeRepo) ReplaceColors(ctx context.Context, productID uuid.UUID, in []domain.ColorInput) ([]domain.Color, error) {
	db := r.db.WithContext(ctx)
	var old []uuid.UUID
	if err := db.Model(&domain.Color{}).Where("product_id = ?", productID).Pluck("id", &old).Error; err != nil {
		return nil, domain.Persistence("replace colors", err)
	}
	if len(old) > 0 {
		if err := dropVariationsWhere(db, "product_id = ? AND color_id IN ?", productID, old); err != nil {
			return nil, domain.Persistence("replace colors", err)
		}
		if err := db.Where("product_id = ?", productID).Delete(&domain.Color{}).Error; err != nil {
			return nil, domain.Persistence("replace colors", err)
		}
	}
	out := make([]domain.Color, 0, len(in))
	now := time.Now()
	for i, c := range in {
		n := c.Normalized()
		out = append(out, domain.Color{
			ID: uuid.New(), ProductID: productID, Name: n.Name, HexCode: n.HexCode,
			DisplayOrder: i, CreatedAt: now, UpdatedAt: now,
		})
	}
	if len(out) > 0 {
		if err := db.Create(&out).Error; err != nil {
			return nil, domain.Persistence("replace colors", err)
		}
	}
	return out, nil
}

func (r *AttributeRepo) ReplaceSizes(ctx context.Context, productID uuid.UUID, in []domain.SizeInput) ([]domain.Size, error) {
	db := r.db.WithContext(ctx)
	var old []uuid.UUID
	if err := db.Model(&domain.Size{}).Where("product_id = ?", productID).Pluck("id", &old).Error; err != nil {
		return nil, domain.Persistence("replace sizes", err)
	}
	if len(old) > 0 {
		if err := dropVariationsWhere(db, "product_id = ? AND size_id IN ?", productID, old); err != nil {
			return nil, domain.Persistence("replace sizes", err)
		}
		if err := db.Where("product_id = ?", productID).Delete(&domain.Size{}).Error; err != nil {
			return nil, domain.Persistence("replace sizes", err)
		}
	}
	out := make([]domain.Size, 0, len(in))
	now := time.Now()
	for i, s := range in {
		n := s.Normalized()
		out = append(out, domain.Size{
			ID: uuid.New(), ProductID: productID, Name: n.Name, Scale: n.Scale,
			DisplayOrder: i, CreatedAt: now, UpdatedAt: now,
		})
	}
	if len(out) > 0 {
		if err := db.Create(&out).Error; err != nil {
			return nil, domain.Persistence("replace sizes", err)
		}
	}
	return out, nil
}

// SaveAttributes guarda el formulario como el nuevo grafo de atributos del
// producto. Cada color, talle, variante e imagen recibe un id nuevo; el mapa
// devuelto indica qué draft key pasó a qué id. El grafo anterior se borra
// recién cuando el nuevo ya está insertado, y las órdenes que apuntaban a
// variantes borradas quedan desvinculadas.
func (r *AttributeRepo) SaveAttributes(ctx context.Context, productID uuid.UUID, f *domain.AttributeForm) (map[domain.DraftKey]uuid.UUID, error) {
	ids := map[domain.DraftKey]uuid.UUID{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var oldColors, oldSizes, oldVariations []uuid.UUID
		if err := tx.Model(&domain.Color{}).Where("product_id = ?", productID).Pluck("id", &oldColors).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Size{}).Where("product_id = ?", productID).Pluck("id", &oldSizes).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Variation{}).Where("product_id = ?", productID).Pluck("id", &oldVariations).Error; err != nil {
			return err
		}

		now := time.Now()
		colors := make([]domain.Color, 0, len(f.Colors))
		for i, c := range f.Colors {
			n := domain.ColorInput{Name: c.Name, HexCode: c.HexCode}.Normalized()
			id := uuid.New()
			ids[c.Key] = id
			colors = append(colors, domain.Color{
				ID: id, ProductID: productID, Name: n.Name, HexCode: n.HexCode,
				DisplayOrder: i, CreatedAt: now, UpdatedAt: now,
			})
		}
		sizes := make([]domain.Size, 0, len(f.Sizes))
		for i, s := range f.Sizes {
			n := domain.SizeInput{Name: s.Name, Scale: s.Scale}.Normalized()
			id := uuid.New()
			ids[s.Key] = id
			sizes = append(sizes, domain.Size{
				ID: id, ProductID: productID, Name: n.Name, Scale: n.Scale,
				DisplayOrder: i, CreatedAt: now, UpdatedAt: now,
			})
		}

		variations := make([]domain.Variation, 0, len(f.Variations))
		images := []domain.VariationImage{}
		for i, v := range f.Variations {
			id := uuid.New()
			ids[v.Key] = id
			row := domain.Variation{
				ID: id, ProductID: productID, Price: v.Price, SalePrice: v.SalePrice,
				Stock: v.Stock, IsDefault: v.IsDefault, DisplayOrder: i,
				CreatedAt: now, UpdatedAt: now,
			}
			if v.ColorKey != nil {
				cid, ok := ids[*v.ColorKey]
				if !ok {
					return domain.Invalid("Variation #%d references a color that no longer exists", i+1)
				}
				row.ColorID = &cid
			}
			if v.SizeKey != nil {
				sid, ok := ids[*v.SizeKey]
				if !ok {
					return domain.Invalid("Variation #%d references a size that no longer exists", i+1)
				}
				row.SizeID = &sid
			}
			if sku := strings.TrimSpace(v.SKU); sku != "" {
				row.SKU = &sku
			}
			variations = append(variations, row)
			for j, im := range v.Images {
				if strings.TrimSpace(im.URL) == "" {
					return domain.Invalid("Variation #%d image #%d was not uploaded", i+1, j+1)
				}
				imgID := uuid.New()
				if im.Key != "" {
					ids[im.Key] = imgID
				}
				mt := im.MediaType
				if mt == "" {
					mt = domain.MediaImage
				}
				images = append(images, domain.VariationImage{
					ID: imgID, VariationID: id, ImageURL: strings.TrimSpace(im.URL),
					IsPrimary: im.IsPrimary, MediaType: mt, DisplayOrder: j, CreatedAt: now,
				})
			}
		}

		if len(colors) > 0 {
			if err := tx.Create(&colors).Error; err != nil {
				return err
			}
		}
		if len(sizes) > 0 {
			if err := tx.Create(&sizes).Error; err != nil {
				return err
			}
		}
		if len(variations) > 0 {
			if err := tx.Omit("Images").Create(&variations).Error; err != nil {
				return err
			}
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}

		if err := dropVariations(tx, oldVariations); err != nil {
			return err
		}
		if len(oldSizes) > 0 {
			if err := tx.Where("id IN ?", oldSizes).Delete(&domain.Size{}).Error; err != nil {
				return err
			}
		}
		if len(oldColors) > 0 {
			if err := tx.Where("id IN ?", oldColors).Delete(&domain.Color{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if domain.IsValidation(err) {
			return nil, err
		}
		return nil, domain.Persistence("save attributes", err)
	}
	return ids, nil
}

func dropVariationsWhere(db *gorm.DB, where string, args ...any) error {
	var ids []uuid.UUID
	if err := db.Model(&domain.Variation{}).Where(where, args...).Pluck("id", &ids).Error; err != nil {
		return err
	}
	return dropVariations(db, ids)
}

// dropVariations borra variantes con sus imágenes y desvincula las órdenes
// que las referenciaban.
func dropVariations(db *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := db.Model(&domain.Order{}).Where("variation_id IN ?", ids).Update("variation_id", nil).Error; err != nil {
		return err
	}
	if err := db.Where("variation_id IN ?", ids).Delete(&domain.VariationImage{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", ids).Delete(&domain.Variation{}).Error
}
