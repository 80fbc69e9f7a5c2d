package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/kiddocorner/internal/domain"
)

type FeaturedProductRepo struct{ db *gorm.DB }

func NewFeaturedProductRepo(db *gorm.DB) *FeaturedProductRepo {
	return &FeaturedProductRepo{db: db}
}

func (r *FeaturedProductRepo) List(ctx context.Context) ([]domain.FeaturedProduct, error) {
	var list []domain.FeaturedProduct
	if err := r.db.WithContext(ctx).Order("display_order asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Save agrega el producto a destacados o actualiza su DisplayOrder
func (r *FeaturedProductRepo) Save(ctx context.Context, productID uuid.UUID, order int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.FeaturedProduct
		err := tx.Where("product_id = ?", productID).First(&existing).Error
		if err == nil {
			return tx.Model(&existing).Update("display_order", order).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Model(&domain.Product{}).Where("id = ?", productID).Update("featured", true).Error; err != nil {
			return err
		}
		return tx.Create(&domain.FeaturedProduct{
			ID:           uuid.New(),
			ProductID:    productID,
			DisplayOrder: order,
			CreatedAt:    time.Now(),
		}).Error
	})
}

func (r *FeaturedProductRepo) Delete(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.FeaturedProduct{}, "product_id = ?", productID).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Product{}).Where("id = ?", productID).Update("featured", false).Error
	})
}

// Replace deja como destacados exactamente productIDs, en ese orden
func (r *FeaturedProductRepo) Replace(ctx context.Context, productIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.FeaturedProduct{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Product{}).Where("featured = ?", true).Update("featured", false).Error; err != nil {
			return err
		}
		if len(productIDs) == 0 {
			return nil
		}
		rows := make([]domain.FeaturedProduct, 0, len(productIDs))
		now := time.Now()
		for i, id := range productIDs {
			rows = append(rows, domain.FeaturedProduct{ID: uuid.New(), ProductID: id, DisplayOrder: i, CreatedAt: now})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Product{}).Where("id IN ?", productIDs).Update("featured", true).Error
	})
}

// GetWithProducts devuelve los productos destacados activos, ordenados por DisplayOrder
func (r *FeaturedProductRepo) GetWithProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.*").
		Joins("INNER JOIN featured_products ON products.id = featured_products.product_id").
		Where("products.active = ?", true).
		Order("featured_products.display_order asc").
		Preload("Images", orderedImages).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
