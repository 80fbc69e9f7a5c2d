package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/kiddocorner/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

const orderDetailsSelect = `orders.*,
	products.name AS product_name,
	products.slug AS product_slug,
	product_colors.name AS color_name,
	product_sizes.name AS size_name`

func (r *OrderRepo) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders").
		Select(orderDetailsSelect).
		Joins("LEFT JOIN products ON products.id = orders.product_id").
		Joins("LEFT JOIN product_variations ON product_variations.id = orders.variation_id").
		Joins("LEFT JOIN product_colors ON product_colors.id = product_variations.color_id").
		Joins("LEFT JOIN product_sizes ON product_sizes.id = product_variations.size_id")
}

type orderRow struct {
	domain.Order
	ProductName *string
	ProductSlug *string
	ColorName   *string
	SizeName    *string
}

func (row orderRow) details() domain.OrderDetails {
	d := domain.OrderDetails{Order: row.Order}
	if row.ProductName != nil {
		d.ProductName = *row.ProductName
	}
	if row.ProductSlug != nil {
		d.ProductSlug = *row.ProductSlug
	}
	if row.ColorName != nil {
		d.ColorName = *row.ColorName
	}
	if row.SizeName != nil {
		d.SizeName = *row.SizeName
	}
	return d
}

func (r *OrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.OrderDetails, error) {
	var row orderRow
	res := r.details(ctx).Where("orders.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	d := row.details()
	if err := r.attachPayment(ctx, []*domain.OrderDetails{&d}); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.OrderDetails, int64, error) {
	count := r.db.WithContext(ctx).Model(&domain.Order{})
	q := r.details(ctx)
	if f.Status != "" {
		count = count.Where("status = ?", f.Status)
		q = q.Where("orders.status = ?", f.Status)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 50
	}
	var rows []orderRow
	if err := q.Order("orders.created_at desc").Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.OrderDetails, len(rows))
	ptrs := make([]*domain.OrderDetails, len(rows))
	for i := range rows {
		out[i] = rows[i].details()
		ptrs[i] = &out[i]
	}
	if err := r.attachPayment(ctx, ptrs); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *OrderRepo) attachPayment(ctx context.Context, list []*domain.OrderDetails) error {
	ids := []uuid.UUID{}
	for _, d := range list {
		if d.PaymentMethodID != nil {
			ids = append(ids, *d.PaymentMethodID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	var methods []domain.PaymentMethod
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&methods).Error; err != nil {
		return err
	}
	byID := map[uuid.UUID]*domain.PaymentMethod{}
	for i := range methods {
		byID[methods[i].ID] = &methods[i]
	}
	for _, d := range list {
		if d.PaymentMethodID != nil {
			d.PaymentMethod = byID[*d.PaymentMethodID]
		}
	}
	return nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, s domain.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	var rows []struct {
		Status domain.OrderStatus
		N      int64
	}
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := map[domain.OrderStatus]int64{}
	for _, s := range []domain.OrderStatus{domain.OrderStatusPending, domain.OrderStatusApproved, domain.OrderStatusDeclined, domain.OrderStatusCompleted} {
		out[s] = 0
	}
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

type ShippingRepo struct{ db *gorm.DB }

func NewShippingRepo(db *gorm.DB) *ShippingRepo { return &ShippingRepo{db: db} }

func (r *ShippingRepo) List(ctx context.Context) ([]domain.ShippingCost, error) {
	list := []domain.ShippingCost{}
	if err := r.db.WithContext(ctx).Order("display_order asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ShippingRepo) FindByKey(ctx context.Context, key string) (*domain.ShippingCost, error) {
	var s domain.ShippingCost
	if err := r.db.WithContext(ctx).First(&s, "location_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Seed inserta los costos por defecto cuya location_key no existe
func (r *ShippingRepo) Seed(ctx context.Context, defaults []domain.ShippingCost) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range defaults {
			var n int64
			if err := tx.Model(&domain.ShippingCost{}).Where("location_key = ?", d.LocationKey).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				continue
			}
			if d.ID == uuid.Nil {
				d.ID = uuid.New()
			}
			if err := tx.Create(&d).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ShippingRepo) UpdateCost(ctx context.Context, key string, cost float64) error {
	res := r.db.WithContext(ctx).Model(&domain.ShippingCost{}).Where("location_key = ?", key).Update("cost", cost)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type PaymentMethodRepo struct{ db *gorm.DB }

func NewPaymentMethodRepo(db *gorm.DB) *PaymentMethodRepo { return &PaymentMethodRepo{db: db} }

func (r *PaymentMethodRepo) List(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	list := []domain.PaymentMethod{}
	q := r.db.WithContext(ctx).Order("display_order asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PaymentMethodRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.PaymentMethod, error) {
	var m domain.PaymentMethod
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PaymentMethodRepo) Save(ctx context.Context, m *domain.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *PaymentMethodRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Order{}).Where("payment_method_id = ?", id).Update("payment_method_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.PaymentMethod{}, "id = ?", id).Error
	})
}
