package domain

import (
	"context"

	"github.com/google/uuid"
)

type ProductRepo interface {
	Save(ctx context.Context, p *Product) error
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	SlugExists(ctx context.Context, slug string, except uuid.UUID) (bool, error)
	AddImages(ctx context.Context, productID uuid.UUID, imgs []Image) error
	DeleteFull(ctx context.Context, id uuid.UUID) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type FeaturedProductRepo interface {
	List(ctx context.Context) ([]FeaturedProduct, error)
	Save(ctx context.Context, productID uuid.UUID, order int) error
	Delete(ctx context.Context, productID uuid.UUID) error
	Replace(ctx context.Context, productIDs []uuid.UUID) error
	GetWithProducts(ctx context.Context) ([]Product, error)
}

// AttributeRepo stores the colors, sizes and variations of a product.
type AttributeRepo interface {
	ListColors(ctx context.Context, productID uuid.UUID) ([]Color, error)
	ListSizes(ctx context.Context, productID uuid.UUID) ([]Size, error)
	ListVariations(ctx context.Context, productID uuid.UUID) ([]Variation, error)
	// ReplaceColors deletes then inserts without a transaction; a failure
	// part way can leave the product with fewer colors than either set.
	ReplaceColors(ctx context.Context, productID uuid.UUID, in []ColorInput) ([]Color, error)
	ReplaceSizes(ctx context.Context, productID uuid.UUID, in []SizeInput) ([]Size, error)
	// SaveAttributes swaps the whole graph in one transaction: new rows are
	// inserted first, old rows are deleted last.
	SaveAttributes(ctx context.Context, productID uuid.UUID, f *AttributeForm) (map[DraftKey]uuid.UUID, error)
	Stats(ctx context.Context, productID uuid.UUID) (AttributeStats, error)
	FindVariation(ctx context.Context, id uuid.UUID) (*Variation, error)
}

type OrderRepo interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*OrderDetails, error)
	List(ctx context.Context, f OrderFilter) ([]OrderDetails, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, s OrderStatus) error
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)
}

type ShippingRepo interface {
	List(ctx context.Context) ([]ShippingCost, error)
	FindByKey(ctx context.Context, key string) (*ShippingCost, error)
	Seed(ctx context.Context, defaults []ShippingCost) error
	UpdateCost(ctx context.Context, key string, cost float64) error
}

type PaymentMethodRepo interface {
	List(ctx context.Context, activeOnly bool) ([]PaymentMethod, error)
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentMethod, error)
	Save(ctx context.Context, m *PaymentMethod) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContentRepo interface {
	ListReviews(ctx context.Context, approvedOnly, featuredOnly bool) ([]Review, error)
	SaveReview(ctx context.Context, r *Review) error
	FindReview(ctx context.Context, id uuid.UUID) (*Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
	CountPendingReviews(ctx context.Context) (int64, error)

	ListTestimonials(ctx context.Context, featuredOnly bool) ([]Testimonial, error)
	FindTestimonial(ctx context.Context, id uuid.UUID) (*Testimonial, error)
	SaveTestimonial(ctx context.Context, t *Testimonial) error
	DeleteTestimonial(ctx context.Context, id uuid.UUID) error

	ListFooter(ctx context.Context, activeOnly bool) ([]FooterSection, error)
	FindFooter(ctx context.Context, id uuid.UUID) (*FooterSection, error)
	SaveFooter(ctx context.Context, s *FooterSection) error
	DeleteFooter(ctx context.Context, id uuid.UUID) error
	ReorderFooter(ctx context.Context, ids []uuid.UUID) error

	ListMessages(ctx context.Context) ([]SystemMessage, error)
	UpsertMessage(ctx context.Context, key, content string) error
}

type SettingsRepo interface {
	All(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, values map[string]string) error
	Translations(ctx context.Context) ([]Translation, error)
	UpsertTranslation(ctx context.Context, t *Translation) error
}

type AdminRepo interface {
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	Save(ctx context.Context, u *AdminUser) error
}

// FileStorage keeps uploaded media and returns the public URL.
type FileStorage interface {
	SaveImage(ctx context.Context, filename string, data []byte) (string, error)
}
